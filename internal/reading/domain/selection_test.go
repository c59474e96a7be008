package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalog(n int) []AvailableCard {
	cards := make([]AvailableCard, n)
	for i := range cards {
		cards[i] = AvailableCard{ID: fmt.Sprintf("card-%02d", i), Name: fmt.Sprintf("Card %d", i), Category: CategoryMajorArcana}
	}
	return cards
}

func TestSelection_ToggleTwiceRestores(t *testing.T) {
	s := NewSelection()
	s.Toggle("card-01")
	s.Toggle("card-02")
	before := s.IDs(nil)

	assert.True(t, s.Toggle("card-07"))
	assert.True(t, s.Has("card-07"))
	assert.True(t, s.Toggle("card-07"))

	assert.Equal(t, before, s.IDs(nil))
	assert.Equal(t, 2, s.Len())
}

func TestSelection_NeverExceedsMax(t *testing.T) {
	s := NewSelection()
	for _, card := range catalog(12) {
		s.Toggle(card.ID)
		require.LessOrEqual(t, s.Len(), MaxSelection)
	}

	assert.True(t, s.Full())
	assert.False(t, s.Toggle("card-11"))
	assert.False(t, s.Has("card-11"))
}

func TestSelection_IDsFollowCatalogOrder(t *testing.T) {
	cards := catalog(10)
	s := NewSelection()
	s.Toggle("card-08")
	s.Toggle("card-02")
	s.Toggle("zz-unknown")
	s.Toggle("card-05")

	assert.Equal(t, []string{"card-02", "card-05", "card-08", "zz-unknown"}, s.IDs(cards))
}

func TestSelection_CloneIsIndependent(t *testing.T) {
	s := NewSelection()
	s.Toggle("a")
	c := s.Clone()
	c.Toggle("b")

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 2, c.Len())

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 2, c.Len())
}

func TestThemePayload(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		p := ThemePayload{Theme: "Amor e relacionamentos", Question: "Will I find love?"}
		assert.Equal(t, p, DecodeThemePayload(p.Encode()))
	})

	t.Run("plain string falls back to theme", func(t *testing.T) {
		assert.Equal(t, ThemePayload{Theme: "Saúde", Question: ""}, DecodeThemePayload("Saúde"))
	})

	t.Run("broken json falls back to theme", func(t *testing.T) {
		assert.Equal(t, ThemePayload{Theme: `{"theme":`}, DecodeThemePayload(`{"theme":`))
	})

	t.Run("encoded field names", func(t *testing.T) {
		assert.JSONEq(t, `{"theme":"Família","question":"?"}`, ThemePayload{Theme: "Família", Question: "?"}.Encode())
	})
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Criada", StatusCreated.Label())
	assert.Equal(t, "Cartas Escolhidas", StatusCardsDrawn.Label())
	assert.Equal(t, "Interpretada", StatusInterpreted.Label())
	assert.Equal(t, "ARCHIVED", Status("ARCHIVED").Label())
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Arcanos Maiores", CategoryMajorArcana.Label())
	assert.Equal(t, "Arcanos Menores", CategoryMinorArcana.Label())
	assert.Equal(t, "COURT", Category("COURT").Label())
}
