package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/felixgeelhaar/arcana/internal/reading/domain"
)

type fakeGateway struct {
	mu sync.Mutex

	catalog      []domain.AvailableCard
	createErr    error
	createBlock  chan struct{}
	createThemes []string
	drawIDs      [][]string
	interpretErr error
	text         string
	sessions     map[string]*domain.Session
	pages        []*domain.SessionPage
	listCalls    [][2]int
}

func newFakeGateway() *fakeGateway {
	catalog := make([]domain.AvailableCard, 8)
	for i := range catalog {
		catalog[i] = domain.AvailableCard{ID: fmt.Sprintf("c%d", i), Name: fmt.Sprintf("Carta %d", i), Category: domain.CategoryMajorArcana}
	}
	return &fakeGateway{
		catalog:  catalog,
		text:     "As cartas indicam um novo começo.",
		sessions: map[string]*domain.Session{},
	}
}

func (f *fakeGateway) GetAvailableCards(ctx context.Context, limit int) ([]domain.AvailableCard, error) {
	return f.catalog, nil
}

func (f *fakeGateway) CreateReadingSession(ctx context.Context, theme string) (*domain.Session, error) {
	f.mu.Lock()
	f.createThemes = append(f.createThemes, theme)
	block := f.createBlock
	err := f.createErr
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if err != nil {
		return nil, err
	}
	return &domain.Session{ID: "s1", Theme: theme, Status: domain.StatusCreated}, nil
}

func (f *fakeGateway) DrawCards(ctx context.Context, sessionID string, cardIDs []string) (*domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.drawIDs = append(f.drawIDs, cardIDs)
	cards := make([]domain.DrawnCard, len(cardIDs))
	for i, id := range cardIDs {
		cards[i] = domain.DrawnCard{ID: id, Name: "Carta " + id, Position: i + 1, IsReversed: i%2 == 1}
	}
	return &domain.Session{ID: sessionID, Status: domain.StatusCardsDrawn, Cards: cards}, nil
}

func (f *fakeGateway) Interpret(ctx context.Context, sessionID string) (*domain.Session, error) {
	if f.interpretErr != nil {
		return nil, f.interpretErr
	}
	text := f.text
	return &domain.Session{ID: sessionID, Status: domain.StatusInterpreted, Interpretation: &text}, nil
}

func (f *fakeGateway) GetReadingSession(ctx context.Context, id string) (*domain.Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s not found", id)
	}
	return s, nil
}

func (f *fakeGateway) ListReadingSessions(ctx context.Context, page, limit int) (*domain.SessionPage, error) {
	f.listCalls = append(f.listCalls, [2]int{page, limit})
	if len(f.pages) == 0 {
		return &domain.SessionPage{Page: page, Limit: limit}, nil
	}
	p := f.pages[0]
	f.pages = f.pages[1:]
	return p, nil
}

type stubAuth struct {
	mu     sync.Mutex
	authed bool
}

func (s *stubAuth) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authed
}

func (s *stubAuth) set(v bool) {
	s.mu.Lock()
	s.authed = v
	s.mu.Unlock()
}

type recordingLogin struct {
	calls int
	onCall func()
}

func (r *recordingLogin) PromptLogin(ctx context.Context) {
	r.calls++
	if r.onCall != nil {
		r.onCall()
	}
}

type recordingUpgrade struct {
	causes []error
}

func (r *recordingUpgrade) PromptUpgrade(ctx context.Context, cause error) {
	r.causes = append(r.causes, cause)
}

// instantClock fires every timer at once and records requested durations.
type instantClock struct {
	mu        sync.Mutex
	durations []time.Duration
}

func (c *instantClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	c.durations = append(c.durations, d)
	c.mu.Unlock()
	ch := make(chan time.Time, 1)
	ch <- time.Time{}
	return ch
}

func (c *instantClock) requested() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.durations...)
}

// stalledClock never fires.
type stalledClock struct{}

func (stalledClock) After(time.Duration) <-chan time.Time { return nil }
