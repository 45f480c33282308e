package imf

// Resolver aggregates AssetLocators from one or more Asset Maps and
// resolves a TrackFileResource's UUID to the absolute URI of its
// essence file. Lookup is linear; an IMF package carries at most a
// few dozen assets, so this never warrants an index.
type Resolver struct {
	locators []AssetLocator
}

// NewResolver builds a Resolver from the concatenation of one or more
// parsed Asset Maps. A UUID that appears in more than one map keeps
// its last occurrence and logs a warning, matching the Asset Map
// de-duplication rule in §3.
func NewResolver(assetMaps ...[]AssetLocator) *Resolver {
	r := &Resolver{}
	for _, locators := range assetMaps {
		for _, loc := range locators {
			r.add(loc)
		}
	}
	return r
}

func (r *Resolver) add(loc AssetLocator) {
	for i, existing := range r.locators {
		if existing.UUID == loc.UUID {
			log.Warn().Str("uuid", loc.UUID.String()).Str("old", existing.URI).Str("new", loc.URI).
				Msg("imf: duplicate asset map entry, keeping the later one")
			r.locators[i] = loc
			return
		}
	}
	r.locators = append(r.locators, loc)
}

// Resolve returns the absolute URI bound to id, or false if no Asset
// Map carries an entry for it.
func (r *Resolver) Resolve(id UUID) (string, bool) {
	for _, loc := range r.locators {
		if loc.UUID == id {
			return loc.URI, true
		}
	}
	return "", false
}
