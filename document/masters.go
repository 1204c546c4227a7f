package document

// MasterChain returns master with given id followed by its ancestors. Walking
// stops on missing parent or when a master is seen twice.
func (d *Document) MasterChain(id string) []*Master {
	var (
		chain []*Master
		seen  = make(map[string]bool)
	)
	for id != "" && !seen[id] {
		m := d.FindMaster(id)
		if m == nil {
			break
		}
		seen[id] = true
		chain = append(chain, m)
		id = m.ParentID
	}
	return chain
}

// CreatesCycle reports whether setting parentID as parent of master id would
// make inheritance chain loop back to id.
func (d *Document) CreatesCycle(id, parentID string) bool {
	if parentID == "" {
		return false
	}
	if parentID == id {
		return true
	}
	for _, m := range d.MasterChain(parentID) {
		if m.ID == id {
			return true
		}
	}
	return false
}

// ResolvedMaster is effective master content after inheritance.
type ResolvedMaster struct {
	ID         string
	Name       string
	Header     string
	Footer     string
	Background string
	Logo       string
}

// ResolveMaster merges master with its ancestors, nearest non empty value wins.
// Unknown id resolves to an empty result with only ID set.
func (d *Document) ResolveMaster(id string) ResolvedMaster {
	res := ResolvedMaster{ID: id}
	chain := d.MasterChain(id)
	if len(chain) == 0 {
		return res
	}
	res.Name = chain[0].Name
	for _, m := range chain {
		if res.Header == "" {
			res.Header = m.Header
		}
		if res.Footer == "" {
			res.Footer = m.Footer
		}
		if res.Background == "" || res.Background == "transparent" {
			if m.Background != "" {
				res.Background = m.Background
			}
		}
		if res.Logo == "" {
			res.Logo = m.Logo
		}
	}
	return res
}

// MasterName returns master display name, or "No master" when it is missing.
func (d *Document) MasterName(id string) string {
	if m := d.FindMaster(id); m != nil {
		return m.Name
	}
	return "No master"
}
