// Package application drives a tarot reading from card selection to
// interpretation, and lists past readings.
package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/felixgeelhaar/arcana/internal/reading/domain"
	sharedDomain "github.com/felixgeelhaar/arcana/internal/shared/domain"
)

// Gateway is the slice of the backend a reading needs.
type Gateway interface {
	GetAvailableCards(ctx context.Context, limit int) ([]domain.AvailableCard, error)
	CreateReadingSession(ctx context.Context, theme string) (*domain.Session, error)
	DrawCards(ctx context.Context, sessionID string, cardIDs []string) (*domain.Session, error)
	Interpret(ctx context.Context, sessionID string) (*domain.Session, error)
	GetReadingSession(ctx context.Context, id string) (*domain.Session, error)
}

// Authenticator tells whether a user is logged in.
type Authenticator interface {
	IsAuthenticated() bool
}

// LoginPrompter is asked to get the user logged in when a submission is
// blocked. The caller replays the submission with ResumeAfterLogin.
type LoginPrompter interface {
	PromptLogin(ctx context.Context)
}

// UpgradePrompter is shown instead of an error when the plan's quota is hit.
type UpgradePrompter interface {
	PromptUpgrade(ctx context.Context, cause error)
}

// State is the step a reading is at.
type State int

const (
	StateSelectingCards State = iota
	StateSessionCreated
	StateCardsRevealing
	StateInterpreted
)

func (s State) String() string {
	switch s {
	case StateSelectingCards:
		return "selecting_cards"
	case StateSessionCreated:
		return "session_created"
	case StateCardsRevealing:
		return "cards_revealing"
	case StateInterpreted:
		return "interpreted"
	default:
		return "unknown"
	}
}

// Config tunes a Workflow.
type Config struct {
	CatalogLimit   int
	RevealInterval time.Duration
	SettleDelay    time.Duration
}

// DefaultConfig returns the standard pacing.
func DefaultConfig() Config {
	return Config{
		CatalogLimit:   30,
		RevealInterval: 1500 * time.Millisecond,
		SettleDelay:    300 * time.Millisecond,
	}
}

// Snapshot is a read-only view of a Workflow for rendering.
type Snapshot struct {
	State          State
	Theme          string
	Question       string
	Catalog        []domain.AvailableCard
	Selected       []string
	SessionID      string
	Cards          []domain.DrawnCard
	Revealed       int
	// Interpretation is the text as the backend sent it. Render it with
	// DisplayText.
	Interpretation string
	Creating       bool
	Drawing        bool
	Interpreting   bool
	PendingLogin   bool
}

// RevealComplete reports whether every drawn card is visible.
func (s Snapshot) RevealComplete() bool {
	return len(s.Cards) > 0 && s.Revealed >= len(s.Cards)
}

// CanSubmit mirrors the enabled state of the submit control.
func (s Snapshot) CanSubmit() bool {
	switch s.State {
	case StateSelectingCards:
		return !s.Creating && len(s.Selected) == domain.MaxSelection && strings.TrimSpace(s.Question) != ""
	case StateSessionCreated:
		return !s.Drawing && len(s.Selected) == domain.MaxSelection && len(s.Cards) == 0
	default:
		return false
	}
}

type pendingSubmit struct {
	theme     string
	question  string
	selection *domain.Selection
}

// Workflow is the state machine for one reading.
type Workflow struct {
	gw      Gateway
	auth    Authenticator
	login   LoginPrompter
	upgrade UpgradePrompter
	clock   Clock
	cfg     Config
	logger  *slog.Logger

	mu             sync.Mutex
	state          State
	theme          string
	question       string
	catalog        []domain.AvailableCard
	selection      *domain.Selection
	sessionID      string
	cards          []domain.DrawnCard
	revealed       int
	interpretation string
	creating       bool
	drawing        bool
	interpreting   bool
	pending        *pendingSubmit
	revealer       *Revealer
	observers      []func(Snapshot)
}

// Option customises a Workflow.
type Option func(*Workflow)

// WithClock replaces the reveal clock.
func WithClock(c Clock) Option {
	return func(w *Workflow) { w.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Workflow) { w.logger = l }
}

// NewWorkflow creates a Workflow at the card selection step.
func NewWorkflow(gw Gateway, auth Authenticator, login LoginPrompter, upgrade UpgradePrompter, cfg Config, opts ...Option) *Workflow {
	w := &Workflow{
		gw:        gw,
		auth:      auth,
		login:     login,
		upgrade:   upgrade,
		clock:     SystemClock{},
		cfg:       cfg,
		logger:    slog.Default(),
		theme:     domain.DefaultTheme,
		selection: domain.NewSelection(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// OnChange registers fn to receive a snapshot after every change.
func (w *Workflow) OnChange(fn func(Snapshot)) {
	w.mu.Lock()
	w.observers = append(w.observers, fn)
	w.mu.Unlock()
}

// Snapshot returns the current view.
func (w *Workflow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

func (w *Workflow) snapshotLocked() Snapshot {
	return Snapshot{
		State:          w.state,
		Theme:          w.theme,
		Question:       w.question,
		Catalog:        append([]domain.AvailableCard(nil), w.catalog...),
		Selected:       w.selection.IDs(w.catalog),
		SessionID:      w.sessionID,
		Cards:          append([]domain.DrawnCard(nil), w.cards...),
		Revealed:       w.revealed,
		Interpretation: w.interpretation,
		Creating:       w.creating,
		Drawing:        w.drawing,
		Interpreting:   w.interpreting,
		PendingLogin:   w.pending != nil,
	}
}

// unlockAndNotify releases the lock and publishes the new state.
func (w *Workflow) unlockAndNotify() {
	snap := w.snapshotLocked()
	observers := append([]func(Snapshot){}, w.observers...)
	w.mu.Unlock()
	for _, fn := range observers {
		fn(snap)
	}
}

// LoadCatalog fetches the selectable cards.
func (w *Workflow) LoadCatalog(ctx context.Context) error {
	cards, err := w.gw.GetAvailableCards(ctx, w.cfg.CatalogLimit)
	if err != nil {
		return fmt.Errorf("load card catalog: %w", err)
	}
	w.mu.Lock()
	w.catalog = cards
	w.unlockAndNotify()
	return nil
}

// Toggle selects or deselects a card. Cards are fixed once drawn, and ids
// outside a loaded catalog are ignored. It reports whether anything changed.
func (w *Workflow) Toggle(id string) bool {
	w.mu.Lock()
	if w.state != StateSelectingCards && w.state != StateSessionCreated {
		w.mu.Unlock()
		return false
	}
	if len(w.catalog) > 0 && !inCatalog(w.catalog, id) {
		w.mu.Unlock()
		return false
	}
	if !w.selection.Toggle(id) {
		w.mu.Unlock()
		return false
	}
	w.unlockAndNotify()
	return true
}

func inCatalog(catalog []domain.AvailableCard, id string) bool {
	for _, c := range catalog {
		if c.ID == id {
			return true
		}
	}
	return false
}

// SetTheme sets the reading theme.
func (w *Workflow) SetTheme(theme string) {
	w.mu.Lock()
	w.theme = theme
	w.unlockAndNotify()
}

// SetQuestion sets the question asked of the cards.
func (w *Workflow) SetQuestion(question string) {
	w.mu.Lock()
	w.question = question
	w.unlockAndNotify()
}

// Submit advances the reading: it creates the session at the selection step
// and draws the cards once the session exists.
func (w *Workflow) Submit(ctx context.Context) error {
	w.mu.Lock()
	if w.creating || w.drawing {
		w.mu.Unlock()
		return ErrBusy
	}
	if w.auth != nil && !w.auth.IsAuthenticated() {
		w.pending = &pendingSubmit{
			theme:     w.theme,
			question:  w.question,
			selection: w.selection.Clone(),
		}
		w.unlockAndNotify()
		if w.login != nil {
			w.login.PromptLogin(ctx)
		}
		return ErrAuthRequired
	}

	switch w.state {
	case StateSelectingCards:
		return w.createLocked(ctx)
	case StateSessionCreated:
		return w.drawLocked(ctx)
	default:
		w.mu.Unlock()
		return ErrInvalidState
	}
}

// ResumeAfterLogin replays the submission blocked by ErrAuthRequired with
// the same theme, question and selection.
func (w *Workflow) ResumeAfterLogin(ctx context.Context) error {
	w.mu.Lock()
	p := w.pending
	if p == nil {
		w.mu.Unlock()
		return ErrNothingPending
	}
	w.pending = nil
	w.theme = p.theme
	w.question = p.question
	w.selection = p.selection
	w.unlockAndNotify()

	return w.Submit(ctx)
}

// createLocked is called with w.mu held and releases it.
func (w *Workflow) createLocked(ctx context.Context) error {
	if !w.selection.Full() {
		w.mu.Unlock()
		return sharedDomain.NewValidationError("cards", fmt.Sprintf("select exactly %d cards", domain.MaxSelection))
	}
	if strings.TrimSpace(w.question) == "" {
		w.mu.Unlock()
		return sharedDomain.NewValidationError("question", "is required")
	}
	payload := domain.ThemePayload{Theme: w.theme, Question: strings.TrimSpace(w.question)}
	w.creating = true
	w.unlockAndNotify()

	session, err := w.gw.CreateReadingSession(ctx, payload.Encode())
	if err != nil {
		w.mu.Lock()
		w.creating = false
		w.unlockAndNotify()

		if IsQuotaError(err) {
			w.logger.InfoContext(ctx, "reading quota reached", "error", err)
			if w.upgrade != nil {
				w.upgrade.PromptUpgrade(ctx, err)
			}
			return fmt.Errorf("%w: %w", ErrQuotaExceeded, err)
		}
		return fmt.Errorf("create reading session: %w", err)
	}

	if w.cfg.SettleDelay > 0 {
		select {
		case <-w.clock.After(w.cfg.SettleDelay):
		case <-ctx.Done():
		}
	}

	w.mu.Lock()
	w.creating = false
	w.sessionID = session.ID
	w.state = StateSessionCreated
	w.unlockAndNotify()

	w.logger.DebugContext(ctx, "reading session created", "session_id", session.ID)
	return nil
}

// drawLocked is called with w.mu held and releases it.
func (w *Workflow) drawLocked(ctx context.Context) error {
	if w.sessionID == "" {
		w.mu.Unlock()
		return ErrInvalidState
	}
	if !w.selection.Full() {
		w.mu.Unlock()
		return sharedDomain.NewValidationError("cards", fmt.Sprintf("select exactly %d cards", domain.MaxSelection))
	}
	sessionID := w.sessionID
	ids := w.selection.IDs(w.catalog)
	w.drawing = true
	w.unlockAndNotify()

	session, err := w.gw.DrawCards(ctx, sessionID, ids)

	w.mu.Lock()
	w.drawing = false
	if err != nil {
		w.unlockAndNotify()
		return fmt.Errorf("draw cards: %w", err)
	}
	w.cards = append([]domain.DrawnCard(nil), session.Cards...)
	w.revealed = 0
	w.state = StateCardsRevealing
	w.startRevealLocked()
	w.unlockAndNotify()
	return nil
}

func (w *Workflow) startRevealLocked() {
	if w.revealer != nil {
		w.revealer.Cancel()
	}
	var r *Revealer
	r = NewRevealer(w.clock, w.cfg.RevealInterval, len(w.cards), func(i int) {
		w.mu.Lock()
		if w.revealer != r || i+1 <= w.revealed {
			w.mu.Unlock()
			return
		}
		w.revealed = i + 1
		w.unlockAndNotify()
	})
	w.revealer = r
	r.Start()
}

// RevealDone returns a channel closed once the current reveal sequence ends.
// It is already closed when no reveal is running.
func (w *Workflow) RevealDone() <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.revealer == nil {
		done := make(chan struct{})
		close(done)
		return done
	}
	return w.revealer.Done()
}

// RevealAll stops the reveal timer and shows every drawn card.
func (w *Workflow) RevealAll() {
	w.mu.Lock()
	if w.revealer != nil {
		w.revealer.Cancel()
		w.revealer = nil
	}
	w.revealed = len(w.cards)
	w.unlockAndNotify()
}

// Interpret requests the interpretation once all cards are revealed.
func (w *Workflow) Interpret(ctx context.Context) error {
	w.mu.Lock()
	if w.sessionID == "" || len(w.cards) == 0 {
		w.mu.Unlock()
		return ErrInvalidState
	}
	if w.interpreting {
		w.mu.Unlock()
		return ErrBusy
	}
	if w.revealed < len(w.cards) {
		w.mu.Unlock()
		return ErrRevealInProgress
	}
	sessionID := w.sessionID
	w.interpreting = true
	w.unlockAndNotify()

	session, err := w.gw.Interpret(ctx, sessionID)

	w.mu.Lock()
	w.interpreting = false
	if err != nil {
		w.unlockAndNotify()
		return fmt.Errorf("interpret reading: %w", err)
	}
	text := strings.TrimSpace(session.InterpretationText())
	if DisplayText(text) == "" {
		w.unlockAndNotify()
		return ErrEmptyInterpretation
	}
	w.interpretation = text
	w.state = StateInterpreted
	w.unlockAndNotify()
	return nil
}

// Resume loads an existing session and jumps to the step its status implies.
// Drawn cards are shown at once.
func (w *Workflow) Resume(ctx context.Context, sessionID string) error {
	session, err := w.gw.GetReadingSession(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("load reading session: %w", err)
	}
	payload := domain.DecodeThemePayload(session.Theme)

	w.mu.Lock()
	if w.revealer != nil {
		w.revealer.Cancel()
		w.revealer = nil
	}
	w.sessionID = session.ID
	w.theme = payload.Theme
	w.question = payload.Question
	w.selection = domain.NewSelection()
	w.cards = append([]domain.DrawnCard(nil), session.Cards...)
	w.revealed = len(w.cards)
	w.interpretation = ""
	w.pending = nil

	switch session.Status {
	case domain.StatusInterpreted:
		w.interpretation = strings.TrimSpace(session.InterpretationText())
		w.state = StateInterpreted
	case domain.StatusCardsDrawn:
		w.state = StateCardsRevealing
	default:
		w.state = StateSessionCreated
	}
	w.unlockAndNotify()
	return nil
}

// Reset cancels pending reveals and returns to card selection. The catalog
// is kept.
func (w *Workflow) Reset() {
	w.mu.Lock()
	if w.revealer != nil {
		w.revealer.Cancel()
		w.revealer = nil
	}
	w.state = StateSelectingCards
	w.theme = domain.DefaultTheme
	w.question = ""
	w.selection = domain.NewSelection()
	w.sessionID = ""
	w.cards = nil
	w.revealed = 0
	w.interpretation = ""
	w.pending = nil
	w.unlockAndNotify()
}

// Close cancels pending reveal callbacks.
func (w *Workflow) Close() {
	w.mu.Lock()
	if w.revealer != nil {
		w.revealer.Cancel()
		w.revealer = nil
	}
	w.mu.Unlock()
}
