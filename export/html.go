package export

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"bookforge/assets"
	"bookforge/common"
	"bookforge/css"
	"bookforge/document"
	"bookforge/layout"
)

const styleTemplate = `
@page { size: %[1]smm %[2]smm; margin: %[3]s; }
body { font-family: Palatino Linotype, serif; color: #222; margin: 0; padding: 0; }
.meta { margin: 0 0 8mm 0; font: 12px/1.4 Avenir Next, Trebuchet MS, sans-serif; }
.bookmarks { margin: 0 0 8mm 0; padding-left: 16px; font-size: 11px; }
.sheet { break-after: page; }
.sheet.spread { display: flex; gap: 2mm; }
.slot.page { position: relative; width: %[1]smm; height: %[2]smm; border: %[4]s; background: #fff; overflow: hidden; }
.slot.empty { flex: 1 1 auto; }
.head { position: absolute; top: 2mm; left: 3mm; font: 10px Avenir Next, sans-serif; color: #666; z-index: 3; }
.inner { position: absolute; inset: 0; }
.guides { position: absolute; border: 1px dashed #2f7de1; }
.grid { position: absolute; inset: 0; pointer-events: none;
  background-image: repeating-linear-gradient(90deg, rgba(47,125,225,.12) 0 var(--grid-gutter-size), transparent var(--grid-gutter-size) var(--grid-col-size)),
    repeating-linear-gradient(0deg, rgba(0,0,0,.06) 0 .2mm, transparent .2mm var(--grid-baseline-size)); }
.blank-note { position: absolute; inset: 0; display: grid; place-items: center; color: #888; font: 12px Avenir Next, sans-serif; }
.f { position: absolute; border: 1px solid #888; padding: 4px; overflow: hidden; font-size: 11px; white-space: pre-wrap; }
.f img { width: 100%%; height: 100%%; object-fit: cover; }
`

func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// BuildHTML renders printable sequence of the document as single HTML page.
// In spread mode sheets hold slot pairs, partner missing at the end renders
// as empty slot. Virtual front blank renders as a blank note.
func BuildHTML(doc *document.Document, opts Options) *etree.Document {
	opts = opts.Effective()
	doc, _ = layout.Recalculate(doc)
	size := doc.PageSizeMm()

	out := etree.NewDocument()
	out.CreateDirective("DOCTYPE html")

	html := out.CreateElement("html")
	html.CreateAttr("lang", "en")

	head := html.CreateElement("head")
	head.CreateElement("meta").CreateAttr("charset", "utf-8")
	head.CreateElement("title").SetText(doc.Title)

	margin, border := "8mm", "none"
	if opts.Bleed {
		margin = "0"
	}
	if opts.CropMarks {
		border = "1px dashed #555"
	}
	head.CreateElement("style").SetText(fmt.Sprintf(styleTemplate, num(size.Width), num(size.Height), margin, border) +
		css.FromStyles(doc.Styles).String())

	body := html.CreateElement("body")
	writeMeta(body, doc, opts)

	// sections are anchored on their first page
	anchors := make(map[string]string, len(doc.Sections))
	for _, sec := range doc.Sections {
		if len(sec.PageIDs) > 0 {
			anchors[sec.PageIDs[0]] = sec.ID
		}
	}
	if opts.Bookmarks {
		writeBookmarks(body, doc)
	}

	sequence := layout.PrintableSequence(doc, opts.Spreads)
	if opts.Spreads {
		for i := 0; i < len(sequence); i += 2 {
			sheet := body.CreateElement("article")
			sheet.CreateAttr("class", "sheet spread")
			for j := i; j < i+2; j++ {
				if j >= len(sequence) {
					sheet.CreateElement("section").CreateAttr("class", "slot empty")
					continue
				}
				writeSlot(sheet, doc, sequence[j], anchors, opts)
			}
		}
	} else {
		for _, slot := range sequence {
			sheet := body.CreateElement("article")
			sheet.CreateAttr("class", "sheet single")
			writeSlot(sheet, doc, slot, anchors, opts)
		}
	}

	out.Indent(2)
	return out
}

// RenderHTML is BuildHTML serialized.
func RenderHTML(doc *document.Document, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := BuildHTML(doc, opts).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("unable to serialize html: %w", err)
	}
	return buf.Bytes(), nil
}

func writeMeta(body *etree.Element, doc *document.Document, opts Options) {
	meta := body.CreateElement("div")
	meta.CreateAttr("class", "meta")
	meta.CreateElement("strong").SetText(doc.Title)
	lines := []string{
		fmt.Sprintf("Profile: %s, color: %s, compression: %s", opts.Profile, opts.ColorMode, opts.Compression),
		fmt.Sprintf("Bleed: %s, crop marks: %s, embedded fonts: %s", yesNo(opts.Bleed), yesNo(opts.CropMarks), yesNo(opts.EmbedFonts)),
		fmt.Sprintf("Start on right: %s", yesNo(doc.Settings.StartOnRight)),
	}
	for _, l := range lines {
		meta.CreateElement("br")
		meta.CreateText(l)
	}
}

func writeBookmarks(body *etree.Element, doc *document.Document) {
	list := body.CreateElement("ul")
	list.CreateAttr("class", "bookmarks")
	n := 0
	for _, sec := range doc.Sections {
		if !sec.Bookmark {
			continue
		}
		n++
		li := list.CreateElement("li")
		if len(sec.PageIDs) == 0 {
			li.SetText(sec.Name)
			continue
		}
		a := li.CreateElement("a")
		a.CreateAttr("href", "#"+sec.ID)
		a.SetText(sec.Name)
	}
	if n == 0 {
		list.CreateElement("li").SetText("No section bookmarks")
	}
}

func writeSlot(sheet *etree.Element, doc *document.Document, slot layout.Slot, anchors map[string]string, opts Options) {
	sec := sheet.CreateElement("section")
	sec.CreateAttr("class", "slot page")

	if slot.IsVirtualBlank() {
		head := sec.CreateElement("div")
		head.CreateAttr("class", "head")
		head.SetText("Blank")
		note := sec.CreateElement("div")
		note.CreateAttr("class", "blank-note")
		note.SetText("Virtual blank page (recto)")
		return
	}

	page := doc.FindPage(slot.PageID)
	if page == nil {
		return
	}
	if id, ok := anchors[page.ID]; ok {
		sec.CreateAttr("id", id)
	}
	number := page.DisplayNumber
	if number == "" {
		number = strconv.Itoa(page.AutoNumber)
	}
	label := sec.CreateElement("div")
	label.CreateAttr("class", "head")
	label.SetText(fmt.Sprintf("%s (%s)", number, slot.Side))

	inner := sec.CreateElement("div")
	inner.CreateAttr("class", "inner")
	if opts.Guides {
		writeGuides(inner, doc, page, slot.Side)
		if doc.Grids.Guides {
			writeGrid(inner, doc)
		}
	}
	for i := range page.Frames {
		writeFrame(inner, &page.Frames[i], opts.MissingImage)
	}
}

// writeGuides draws content box bounded by margins of page placed on side.
func writeGuides(inner *etree.Element, doc *document.Document, page *document.Page, side common.Side) {
	g := layout.Geometry(doc, page, side)
	left, right := g.Mm.Inside, g.Mm.Outside
	if side == common.SideLeft {
		left, right = right, left
	}
	div := inner.CreateElement("div")
	div.CreateAttr("class", "guides")
	div.CreateAttr("style", fmt.Sprintf("top:%smm;right:%smm;bottom:%smm;left:%smm;",
		num(g.Mm.Top), num(right), num(g.Mm.Bottom), num(left)))
}

// writeGrid describes column grid through custom properties, column size is
// page width split into columns.
func writeGrid(inner *etree.Element, doc *document.Document) {
	g := doc.Grids
	div := inner.CreateElement("div")
	div.CreateAttr("class", "grid")
	div.CreateAttr("style", fmt.Sprintf("--grid-col-size:%smm;--grid-gutter-size:%smm;--grid-baseline-size:%smm;",
		num(doc.PageSizeMm().Width/float64(max(g.Columns, 1))), num(g.Gutter), num(g.Baseline)))
}

// writeFrame renders frame positioned in page percents. Image frames which
// lost their source get missing placeholder when one is available.
func writeFrame(inner *etree.Element, f *document.Frame, missing []byte) {
	if f.Hidden || f.NonPrintable {
		return
	}
	div := inner.CreateElement("div")
	class := "f f-" + string(f.Type)
	if f.StyleID != "" {
		class += " " + f.StyleID
	}
	div.CreateAttr("class", class)

	var style strings.Builder
	fmt.Fprintf(&style, "left:%s%%;top:%s%%;width:%s%%;height:%s%%;", num(f.X), num(f.Y), num(f.W), num(f.H))
	if f.Rotation != 0 {
		fmt.Fprintf(&style, "transform:rotate(%sdeg);", num(f.Rotation))
	}
	div.CreateAttr("style", style.String())

	src := f.Src
	if f.Type == common.FrameTypeImage && (src == "" || f.Missing) && len(missing) > 0 {
		src = assets.DataURL(assets.MimeType(missing), missing)
	}
	if f.Type == common.FrameTypeImage && src != "" {
		img := div.CreateElement("img")
		img.CreateAttr("src", src)
		img.CreateAttr("alt", f.Content)
		if f.Crop.Zoom > 0 && f.Crop.Zoom != 1 {
			img.CreateAttr("style", fmt.Sprintf("transform:scale(%s);", num(f.Crop.Zoom)))
		}
		return
	}
	div.SetText(f.Content)
}
