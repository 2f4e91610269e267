// Package profiles defines the read-only reference data the game is played
// against: profiles (the hidden subjects), the manifest describing which
// categories and locales exist, and loaders that fetch both.
package profiles

// Profile is the hidden subject of a round.
type Profile struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Clues    []string `json:"clues"`
	// ClueOrder is an optional permutation of clue positions. When present,
	// clue N as seen by players is Clues[ClueOrder[N]].
	ClueOrder []int             `json:"clueOrder,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// ClueAt returns the clue text at display position i, respecting the
// profile's shuffle permutation when one is set. Returns "" when i is out
// of range.
func (p Profile) ClueAt(i int) string {
	if i < 0 || i >= len(p.Clues) {
		return ""
	}
	if len(p.ClueOrder) == len(p.Clues) {
		mapped := p.ClueOrder[i]
		if mapped < 0 || mapped >= len(p.Clues) {
			return ""
		}
		return p.Clues[mapped]
	}
	return p.Clues[i]
}

// Manifest describes the available profile data per category and locale.
type Manifest struct {
	Version     string     `json:"version"`
	GeneratedAt string     `json:"generatedAt"`
	Categories  []Category `json:"categories"`
}

// Category is one manifest entry, keyed by slug.
type Category struct {
	Slug     string                `json:"slug"`
	IDPrefix string                `json:"idPrefix"`
	Locales  map[string]LocaleInfo `json:"locales"`
}

// LocaleInfo describes one locale's data for a category.
type LocaleInfo struct {
	Name          string   `json:"name"`
	Files         []string `json:"files"`
	ProfileAmount int      `json:"profileAmount"`
}

// Category returns the manifest entry for slug, or false when absent.
func (m Manifest) Category(slug string) (Category, bool) {
	for _, c := range m.Categories {
		if c.Slug == slug {
			return c, true
		}
	}
	return Category{}, false
}

// ProfileIDs enumerates the identifiers available for the category in the
// given locale. IDs embed the category prefix for traceability.
func (c Category) ProfileIDs(locale string) []string {
	info, ok := c.Locales[locale]
	if !ok {
		return nil
	}
	ids := make([]string, 0, info.ProfileAmount)
	for n := 1; n <= info.ProfileAmount; n++ {
		ids = append(ids, profileID(c.IDPrefix, n))
	}
	return ids
}
