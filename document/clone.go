package document

import "maps"

// Clone and deep copy functions for document structures. Every commit works
// on a private copy of the document and history keeps copies as snapshots,
// so nothing reachable from a clone may be shared with the source.

// Clone creates a deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}

	clone := *d
	clone.Settings = cloneSettings(&d.Settings)
	clone.Grids.Presets = cloneSlice(d.Grids.Presets)
	clone.Sections = cloneSections(d.Sections)
	clone.Masters = cloneSlice(d.Masters)
	clone.Pages = clonePages(d.Pages)
	clone.Styles = Styles{
		Paragraph: cloneSlice(d.Styles.Paragraph),
		Character: cloneSlice(d.Styles.Character),
		Object:    cloneSlice(d.Styles.Object),
	}
	clone.Assets = cloneSlice(d.Assets)
	return &clone
}

// Clone creates a deep copy of the page.
func (p *Page) Clone() Page {
	clone := *p
	clone.Frames = cloneSlice(p.Frames)
	if p.BackgroundReference != nil {
		ref := *p.BackgroundReference
		clone.BackgroundReference = &ref
	}
	if p.Imported != nil {
		info := *p.Imported
		clone.Imported = &info
	}
	return clone
}

// cloneSlice copies slices of structures without reference fields.
func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	result := make([]T, len(s))
	copy(result, s)
	return result
}

func cloneSettings(s *Settings) Settings {
	result := *s
	result.Margins.Visual = cloneVisual(&s.Margins.Visual)
	return result
}

func cloneVisual(v *MarginVisual) MarginVisual {
	result := *v
	result.Opacity = clonePtr(v.Opacity)
	result.Stroke = clonePtr(v.Stroke)
	result.Legend = clonePtr(v.Legend)
	if v.Colors != nil {
		result.Colors = maps.Clone(v.Colors)
	}
	if v.Show != nil {
		result.Show = maps.Clone(v.Show)
	}
	return result
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneSections(sections []Section) []Section {
	if sections == nil {
		return nil
	}
	result := make([]Section, len(sections))
	for i := range sections {
		result[i] = sections[i]
		result[i].PageIDs = cloneSlice(sections[i].PageIDs)
	}
	return result
}

func clonePages(pages []Page) []Page {
	if pages == nil {
		return nil
	}
	result := make([]Page, len(pages))
	for i := range pages {
		result[i] = pages[i].Clone()
	}
	return result
}
