// Package selection picks which profiles a session will play: drawn
// proportionally across the chosen categories, sampled without replacement
// per category, and shuffled as a whole before being returned.
package selection

import (
	"math/rand/v2"

	"github.com/Seednode/cluebox/internal/apperror"
	"github.com/Seednode/cluebox/internal/profiles"
)

// Engine selects profile identifiers against a manifest. The zero value
// uses the shared crypto-seeded source; tests inject their own for
// deterministic draws.
type Engine struct {
	rng *rand.Rand
}

// NewEngine creates an engine drawing from src. A nil src falls back to the
// runtime's shared source.
func NewEngine(src rand.Source) *Engine {
	e := &Engine{}
	if src != nil {
		e.rng = rand.New(src)
	}
	return e
}

func (e *Engine) intN(n int) int {
	if e.rng != nil {
		return e.rng.IntN(n)
	}
	return rand.IntN(n)
}

// Select returns rounds unique profile identifiers drawn across the given
// categories for the locale. Categories are walked in the order given:
// each gets floor(rounds/k) profiles, and the first rounds%k categories
// get one extra. The combined result is fully shuffled, so two calls with
// identical arguments almost never return the same order.
func (e *Engine) Select(categories []string, rounds int, manifest profiles.Manifest, locale string) ([]string, error) {
	if len(categories) == 0 {
		return nil, apperror.NewGameError(apperror.CodeSelectionNoCategories,
			"at least one category is required")
	}
	if rounds <= 0 {
		return nil, apperror.NewValidationErrorf(apperror.CodeSelectionInvalidRounds,
			"rounds", "rounds must be positive, got %d", rounds)
	}

	counts, err := allocate(categories, rounds, manifest, locale)
	if err != nil {
		return nil, err
	}

	selected := make([]string, 0, rounds)
	for _, slug := range categories {
		cat, _ := manifest.Category(slug)
		ids := cat.ProfileIDs(locale)
		selected = append(selected, e.sample(ids, counts[slug])...)
	}

	e.shuffle(selected)
	return selected, nil
}

// allocate validates every category against the manifest and computes the
// per-category draw counts.
func allocate(categories []string, rounds int, manifest profiles.Manifest, locale string) (map[string]int, error) {
	base := rounds / len(categories)
	remainder := rounds % len(categories)

	counts := make(map[string]int, len(categories))
	seen := make(map[string]bool, len(categories))
	for i, slug := range categories {
		// A repeated slug would collapse two allocations into one counts
		// entry and sample the same pool twice, so reject it outright.
		if seen[slug] {
			return nil, apperror.NewValidationErrorf(apperror.CodeSelectionDuplicateCategory,
				"categories", "category %q appears more than once", slug)
		}
		seen[slug] = true

		cat, ok := manifest.Category(slug)
		if !ok {
			return nil, apperror.NewGameErrorf(apperror.CodeSelectionCategoryNotFound,
				"category %q not found in manifest", slug)
		}
		info, ok := cat.Locales[locale]
		if !ok {
			return nil, apperror.NewGameErrorf(apperror.CodeSelectionLocaleNotFound,
				"category %q has no data for locale %q", slug, locale)
		}

		want := base
		if i < remainder {
			want++
		}
		if want > info.ProfileAmount {
			return nil, apperror.NewGameErrorf(apperror.CodeSelectionInsufficientProfiles,
				"category %q has %d profiles available for locale %q, need %d",
				slug, info.ProfileAmount, locale, want)
		}
		counts[slug] = want
	}
	return counts, nil
}

// sample draws n ids without replacement via a partial Fisher-Yates.
func (e *Engine) sample(ids []string, n int) []string {
	pool := make([]string, len(ids))
	copy(pool, ids)

	for i := 0; i < n; i++ {
		j := i + e.intN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

func (e *Engine) shuffle(ids []string) {
	for i := len(ids) - 1; i > 0; i-- {
		j := e.intN(i + 1)
		ids[i], ids[j] = ids[j], ids[i]
	}
}
