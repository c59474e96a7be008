package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/arcana/internal/reading/domain"
)

func TestHistory_List(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	gw := newFakeGateway()
	gw.pages = []*domain.SessionPage{{
		Sessions: []domain.Session{
			{ID: "a", Theme: `{"theme":"Família","question":"Como vai?"}`, Status: domain.StatusInterpreted, CreatedAt: created, Cards: make([]domain.DrawnCard, 5)},
			{ID: "b", Theme: "Saúde", Status: domain.StatusCardsDrawn},
			{ID: "c", Theme: "", Status: domain.StatusCreated},
		},
		Total: 3, Page: 1, Limit: 10, TotalPages: 1,
	}}

	h := NewHistory(gw, 0)
	page, err := h.List(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, [][2]int{{1, DefaultHistoryLimit}}, gw.listCalls)
	require.Len(t, page.Entries, 3)

	a := page.Entries[0]
	assert.Equal(t, "Família", a.Theme)
	assert.Equal(t, "Como vai?", a.Question)
	assert.Equal(t, "Interpretada", a.StatusLabel)
	assert.Equal(t, 5, a.CardCount)
	assert.False(t, a.Resumable)
	assert.Equal(t, created, a.CreatedAt)

	b := page.Entries[1]
	assert.Equal(t, "Saúde", b.Theme)
	assert.Empty(t, b.Question)
	assert.Equal(t, "Cartas Escolhidas", b.StatusLabel)
	assert.True(t, b.Resumable)

	c := page.Entries[2]
	assert.Equal(t, domain.UnknownTheme, c.Theme)
	assert.Equal(t, "Criada", c.StatusLabel)
}

func TestHistory_Get(t *testing.T) {
	gw := newFakeGateway()
	gw.sessions["x"] = &domain.Session{ID: "x", Theme: `{"theme":"Espiritualidade","question":"?"}`, Status: domain.StatusCreated}

	h := NewHistory(gw, 5)
	s, entry, err := h.Get(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "x", s.ID)
	assert.Equal(t, "Espiritualidade", entry.Theme)

	_, _, err = h.Get(context.Background(), "missing")
	assert.Error(t, err)
}

func TestHistory_GetKeepsRawInterpretation(t *testing.T) {
	gw := newFakeGateway()
	text := "<h2>Leitura</h2><p>Confie &amp; siga.</p><script>alert(1)</script>"
	gw.sessions["y"] = &domain.Session{ID: "y", Theme: "Saúde", Status: domain.StatusInterpreted, Interpretation: &text}

	_, entry, err := NewHistory(gw, 0).Get(context.Background(), "y")
	require.NoError(t, err)
	assert.Equal(t, text, entry.Interpretation)
	assert.Equal(t, "LeituraConfie & siga.", DisplayText(entry.Interpretation))
	assert.False(t, entry.Resumable)
}
