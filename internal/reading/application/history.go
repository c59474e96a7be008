package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/arcana/internal/reading/domain"
)

// DefaultHistoryLimit is the page size of the reading history.
const DefaultHistoryLimit = 10

// HistoryGateway lists past sessions.
type HistoryGateway interface {
	ListReadingSessions(ctx context.Context, page, limit int) (*domain.SessionPage, error)
	GetReadingSession(ctx context.Context, id string) (*domain.Session, error)
}

// HistoryEntry is one past reading, ready for display.
type HistoryEntry struct {
	ID          string
	Theme       string
	Question    string
	Status      domain.Status
	StatusLabel string
	CardCount   int
	CreatedAt   time.Time

	// Interpretation is the raw backend text, empty until interpreted.
	Interpretation string

	// Resumable is true until the reading has been interpreted.
	Resumable bool
}

// HistoryPage is one page of HistoryEntry values.
type HistoryPage struct {
	Entries    []HistoryEntry
	Page       int
	TotalPages int
	Total      int
}

// History lists the caller's readings.
type History struct {
	gw    HistoryGateway
	limit int
}

// NewHistory creates a History with the given page size.
func NewHistory(gw HistoryGateway, limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{gw: gw, limit: limit}
}

// List returns page (1-based) of the history.
func (h *History) List(ctx context.Context, page int) (*HistoryPage, error) {
	if page < 1 {
		page = 1
	}
	res, err := h.gw.ListReadingSessions(ctx, page, h.limit)
	if err != nil {
		return nil, fmt.Errorf("list reading sessions: %w", err)
	}

	out := &HistoryPage{
		Entries:    make([]HistoryEntry, 0, len(res.Sessions)),
		Page:       res.Page,
		TotalPages: res.TotalPages,
		Total:      res.Total,
	}
	for _, s := range res.Sessions {
		out.Entries = append(out.Entries, toEntry(s))
	}
	return out, nil
}

// Get returns one session with its decoded theme payload.
func (h *History) Get(ctx context.Context, id string) (*domain.Session, HistoryEntry, error) {
	s, err := h.gw.GetReadingSession(ctx, id)
	if err != nil {
		return nil, HistoryEntry{}, fmt.Errorf("get reading session: %w", err)
	}
	return s, toEntry(*s), nil
}

func toEntry(s domain.Session) HistoryEntry {
	payload := domain.DecodeThemePayload(s.Theme)
	theme := payload.Theme
	if strings.TrimSpace(theme) == "" {
		theme = domain.UnknownTheme
	}
	return HistoryEntry{
		ID:             s.ID,
		Theme:          theme,
		Question:       payload.Question,
		Status:         s.Status,
		StatusLabel:    s.Status.Label(),
		CardCount:      len(s.Cards),
		CreatedAt:      s.CreatedAt,
		Interpretation: strings.TrimSpace(s.InterpretationText()),
		Resumable:      s.Status != domain.StatusInterpreted,
	}
}
