package domain

// Languoid is one Glottolog language entry, the stable identifier space
// dataset-local language ids are merged into.
type Languoid struct {
	// ID is the glottocode, e.g. "stan1295".
	ID string

	Name string

	// ISO639P3 is the ISO 639-3 code, empty when Glottolog assigns none.
	ISO639P3 string

	Macroarea string

	// Coordinates as written in the catalog; empty when unknown.
	Latitude  string
	Longitude string
}

// LanguoidIndex resolves language-id guesses (glottocodes or ISO codes)
// to Glottolog entries.
type LanguoidIndex struct {
	byGlottocode map[string]Languoid
	byISO        map[string]Languoid
}

// NewLanguoidIndex builds the lookup index. Later duplicates win, matching
// a plain map build over the catalog.
func NewLanguoidIndex(languoids []Languoid) *LanguoidIndex {
	ix := &LanguoidIndex{
		byGlottocode: make(map[string]Languoid, len(languoids)),
		byISO:        make(map[string]Languoid),
	}
	for _, l := range languoids {
		ix.byGlottocode[l.ID] = l
		if l.ISO639P3 != "" {
			ix.byISO[l.ISO639P3] = l
		}
	}
	return ix
}

// Resolve looks a guess up as a glottocode first, then as an ISO code.
func (ix *LanguoidIndex) Resolve(guess string) (Languoid, bool) {
	if l, ok := ix.byGlottocode[guess]; ok {
		return l, true
	}
	if l, ok := ix.byISO[guess]; ok {
		return l, true
	}
	return Languoid{}, false
}

// Len returns the number of indexed languoids.
func (ix *LanguoidIndex) Len() int {
	return len(ix.byGlottocode)
}
