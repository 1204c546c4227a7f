package document

// PageIndex returns position of the page in reading order or -1.
func (d *Document) PageIndex(id string) int {
	for i := range d.Pages {
		if d.Pages[i].ID == id {
			return i
		}
	}
	return -1
}

// FindPage returns pointer into document page list, nil when page is absent.
func (d *Document) FindPage(id string) *Page {
	if i := d.PageIndex(id); i >= 0 {
		return &d.Pages[i]
	}
	return nil
}

func (d *Document) SectionIndex(id string) int {
	for i := range d.Sections {
		if d.Sections[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *Document) FindSection(id string) *Section {
	if i := d.SectionIndex(id); i >= 0 {
		return &d.Sections[i]
	}
	return nil
}

func (d *Document) MasterIndex(id string) int {
	for i := range d.Masters {
		if d.Masters[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *Document) FindMaster(id string) *Master {
	if i := d.MasterIndex(id); i >= 0 {
		return &d.Masters[i]
	}
	return nil
}

// SectionPages returns pages which belong to section in document order.
func (d *Document) SectionPages(sectionID string) []*Page {
	var res []*Page
	for i := range d.Pages {
		if d.Pages[i].SectionID == sectionID {
			res = append(res, &d.Pages[i])
		}
	}
	return res
}

// FindFrame returns frame on a page, nil if not found.
func (p *Page) FindFrame(id string) *Frame {
	for i := range p.Frames {
		if p.Frames[i].ID == id {
			return &p.Frames[i]
		}
	}
	return nil
}

// RemoveFrame deletes frame from the page and returns removed copy.
func (p *Page) RemoveFrame(id string) (Frame, bool) {
	for i := range p.Frames {
		if p.Frames[i].ID == id {
			f := p.Frames[i]
			p.Frames = append(p.Frames[:i], p.Frames[i+1:]...)
			return f, true
		}
	}
	return Frame{}, false
}
