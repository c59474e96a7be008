package domain

import "slices"

// MaxSelection is the number of cards a reading uses.
const MaxSelection = 5

// Selection is the set of card ids picked from the catalog. It never holds
// more than MaxSelection ids.
type Selection struct {
	ids map[string]struct{}
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{}, MaxSelection)}
}

// Toggle adds id when absent and room remains, or removes it when present.
// It reports whether the selection changed.
func (s *Selection) Toggle(id string) bool {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return true
	}
	if len(s.ids) >= MaxSelection {
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Has reports whether id is selected.
func (s *Selection) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected cards.
func (s *Selection) Len() int {
	return len(s.ids)
}

// Full reports whether the selection holds MaxSelection cards.
func (s *Selection) Full() bool {
	return len(s.ids) == MaxSelection
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.ids = make(map[string]struct{}, MaxSelection)
}

// IDs returns the selected ids in catalog order. Ids missing from the
// catalog are appended in lexical order.
func (s *Selection) IDs(catalog []AvailableCard) []string {
	out := make([]string, 0, len(s.ids))
	seen := make(map[string]struct{}, len(s.ids))
	for _, card := range catalog {
		if _, ok := s.ids[card.ID]; ok {
			out = append(out, card.ID)
			seen[card.ID] = struct{}{}
		}
	}

	var rest []string
	for id := range s.ids {
		if _, ok := seen[id]; !ok {
			rest = append(rest, id)
		}
	}
	slices.Sort(rest)
	return append(out, rest...)
}

// Clone returns an independent copy.
func (s *Selection) Clone() *Selection {
	c := NewSelection()
	for id := range s.ids {
		c.ids[id] = struct{}{}
	}
	return c
}
