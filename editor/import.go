package editor

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"bookforge/common"
	"bookforge/document"
	"bookforge/importer"
)

// ImportPlacement tells where and how imported pages are added.
type ImportPlacement struct {
	// AfterSelected inserts pages after selected page, otherwise they are
	// appended.
	AfterSelected bool
	// SectionPerFile creates section named after every imported file.
	SectionPerFile bool
	// MasterID is applied to imported pages and created sections, empty
	// means master of the target section.
	MasterID string
	// StyleID overrides paragraph style of imported text frames.
	StyleID string
}

// ImportPages splices imported pages into the document keeping batch and
// page order, records an asset per batch and selects last imported page.
// Returns ids of created pages.
func (s *Session) ImportPages(batches []importer.Batch, placement ImportPlacement) ([]string, error) {
	var created []string
	err := s.commit("multi-import", commitOptions{history: true}, func(doc *document.Document, view *View) error {
		created = created[:0]
		var frames int
		if placement.MasterID != "" && doc.FindMaster(placement.MasterID) == nil {
			placement.MasterID = ""
		}

		active := doc.PageIndex(view.SelectedPageID)
		cursor := len(doc.Pages)
		if placement.AfterSelected {
			cursor = max(0, active+1)
		}

		for _, b := range batches {
			target := doc.Sections[0].ID
			if active >= 0 {
				target = doc.Pages[active].SectionID
			}
			if placement.SectionPerFile {
				master := placement.MasterID
				if master == "" {
					master = doc.Masters[0].ID
				}
				sec := importSection(b.FileName, master)
				doc.Sections = append(doc.Sections, sec)
				target = sec.ID
			}
			master := placement.MasterID
			if master == "" {
				master = doc.FindSection(target).MasterID
			}

			for _, ip := range b.Pages {
				page := importedPage(doc, ip, b.FileName, target, master, placement.StyleID)
				doc.Pages = append(doc.Pages[:cursor], append([]document.Page{page}, doc.Pages[cursor:]...)...)
				cursor++
				created = append(created, page.ID)
				frames += len(page.Frames)
			}
			doc.Assets = append(doc.Assets, b.Asset)
		}
		if len(created) == 0 {
			return ErrNothingToImport
		}

		last := created[len(created)-1]
		view.SelectedPageID, view.PageSelection = last, []string{last}
		s.log.Info("Pages imported", zap.Int("files", len(batches)), zap.Int("pages", len(created)), zap.Int("frames", frames))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func importSection(fileName, masterID string) document.Section {
	name := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	sec := document.NewSection(name, masterID)
	sec.Pagination = document.Pagination{Style: common.PaginationStyleArabic, StartAt: 1, Independent: true}
	return sec
}

func importedPage(doc *document.Document, ip importer.Page, fileName, sectionID, masterID, styleID string) document.Page {
	frames := make([]document.Frame, 0, len(ip.Frames))
	for _, f := range ip.Frames {
		f.Imported = true
		f.ImportedFrom = string(ip.Source)
		if styleID != "" && f.Type == common.FrameTypeText {
			f.StyleID = styleID
		}
		document.NormalizeFrame(&f)
		frames = append(frames, f)
	}
	if len(frames) == 0 {
		frames = append(frames, document.DefaultTextFrame())
	}

	page := document.NewPage(sectionID, masterID, len(doc.Pages)+1, frames)
	if ip.Background != nil {
		bg := *ip.Background
		page.BackgroundReference = &bg
	}
	mode := ip.Mode
	if mode == "" {
		mode = "structured"
	}
	page.Imported = &document.ImportInfo{
		Source:     ip.Source,
		FileName:   fileName,
		SourcePage: ip.PageNumber,
		Mode:       mode,
		Zoom:       1,
	}
	return page
}
