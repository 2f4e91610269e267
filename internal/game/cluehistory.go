package game

// ClueHistory is the ordered log of revealed clues, most recent first. It
// records both the display text and the clue index so the text can be
// rebuilt against a refetched clue list when the display language changes.
type ClueHistory struct {
	Clues   []string `json:"clues"`
	Indices []int    `json:"indices"`
}

// Record returns the history with a newly revealed clue prepended.
func (h ClueHistory) Record(clue string, index int) ClueHistory {
	clues := make([]string, 0, len(h.Clues)+1)
	clues = append(clues, clue)
	clues = append(clues, h.Clues...)

	indices := make([]int, 0, len(h.Indices)+1)
	indices = append(indices, index)
	indices = append(indices, h.Indices...)

	return ClueHistory{Clues: clues, Indices: indices}
}

// Len is the number of recorded clues.
func (h ClueHistory) Len() int {
	return len(h.Indices)
}

// RebuildClueHistory reconstructs a history from recorded indices and a
// profile's raw clue list, preserving order. Out-of-range indices map to
// empty text rather than failing; the indices are the durable record.
func RebuildClueHistory(indices []int, clues []string) ClueHistory {
	rebuilt := ClueHistory{
		Clues:   make([]string, len(indices)),
		Indices: make([]int, len(indices)),
	}
	for i, idx := range indices {
		rebuilt.Indices[i] = idx
		if idx >= 0 && idx < len(clues) {
			rebuilt.Clues[i] = clues[idx]
		}
	}
	return rebuilt
}
