package cldf

// projection maps a table's declared columns onto the caller's requested
// semantic column set.
type projection struct {
	requested map[string]struct{}
	// byPropertyURL maps a declared column's property URL to the requested
	// semantic name, restricted to the requested set.
	byPropertyURL map[string]string
	// propertyByName maps raw column names to their declared property URLs.
	propertyByName map[string]string
}

func newProjection(columns []Column, requested []string) *projection {
	p := &projection{
		requested:      make(map[string]struct{}, len(requested)),
		byPropertyURL:  make(map[string]string, len(requested)),
		propertyByName: make(map[string]string, len(columns)),
	}
	for _, name := range requested {
		p.requested[name] = struct{}{}
		p.byPropertyURL[TermsNamespace+"#"+name] = name
	}
	for _, c := range columns {
		if c.PropertyURL != "" {
			p.propertyByName[c.Name] = c.PropertyURL
		}
	}
	return p
}

// headerNames renames each raw header cell to its semantic name when a
// declared column with that raw name carries a matching property URL.
// Unmapped cells keep their raw names, so directly requested raw names
// still match.
func (p *projection) headerNames(header []string) []string {
	names := make([]string, len(header))
	for i, cell := range header {
		if url, ok := p.propertyByName[cell]; ok {
			if semantic, ok := p.byPropertyURL[url]; ok {
				names[i] = semantic
				continue
			}
		}
		names[i] = cell
	}
	return names
}

// emit zips header-derived names with cell values positionally. A pair
// enters the row only when the name is non-empty, the value is non-empty
// and the name was requested: blank cells and unrequested columns are
// dropped, never defaulted.
func (p *projection) emit(names []string, cells []string) Row {
	row := make(Row)
	for i, cell := range cells {
		if i >= len(names) {
			break
		}
		name := names[i]
		if name == "" || cell == "" {
			continue
		}
		if _, ok := p.requested[name]; !ok {
			continue
		}
		row[name] = cell
	}
	return row
}
