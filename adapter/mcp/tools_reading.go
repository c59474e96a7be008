package mcp

import (
	"context"
	"strings"

	"github.com/felixgeelhaar/mcp-go"

	readingApp "github.com/felixgeelhaar/arcana/internal/reading/application"
	readingDomain "github.com/felixgeelhaar/arcana/internal/reading/domain"
)

type cardsInput struct {
	Limit int `json:"limit,omitempty"`
}

type readingCreateInput struct {
	Theme    string   `json:"theme,omitempty"`
	Question string   `json:"question" jsonschema:"required"`
	CardIDs  []string `json:"card_ids" jsonschema:"required"`
}

type readingDrawInput struct {
	SessionID string   `json:"session_id" jsonschema:"required"`
	CardIDs   []string `json:"card_ids" jsonschema:"required"`
}

type readingInterpretInput struct {
	SessionID string `json:"session_id" jsonschema:"required"`
}

func registerReadingTools(srv *mcp.Server, deps ToolDependencies) error {
	app := deps.App

	srv.Tool("cards.available").
		Description("List the cards that can be chosen for a reading").
		Handler(func(ctx context.Context, input cardsInput) (map[string]any, error) {
			wf, err := newWorkflow(app)
			if err != nil {
				return nil, err
			}
			defer wf.Close()

			if err := wf.LoadCatalog(ctx); err != nil {
				return nil, err
			}
			cards := wf.Snapshot().Catalog
			if input.Limit > 0 && input.Limit < len(cards) {
				cards = cards[:input.Limit]
			}
			return map[string]any{"cards": cards, "count": len(cards)}, nil
		})

	srv.Tool("reading.create").
		Description("Start a reading with a theme, a question and exactly five card ids from cards.available").
		Handler(func(ctx context.Context, input readingCreateInput) (map[string]any, error) {
			wf, err := newWorkflow(app)
			if err != nil {
				return nil, err
			}
			defer wf.Close()

			if err := wf.LoadCatalog(ctx); err != nil {
				return nil, err
			}
			theme := strings.TrimSpace(input.Theme)
			if theme == "" {
				theme = readingDomain.DefaultTheme
			}
			wf.SetTheme(theme)
			wf.SetQuestion(input.Question)
			if err := selectCards(wf, input.CardIDs); err != nil {
				return nil, err
			}
			if err := wf.Submit(ctx); err != nil {
				return nil, explain(err)
			}

			snap := wf.Snapshot()
			return map[string]any{
				"session_id": snap.SessionID,
				"theme":      snap.Theme,
				"question":   snap.Question,
				"card_ids":   snap.Selected,
				"next":       "reading.draw",
			}, nil
		})

	srv.Tool("reading.draw").
		Description("Draw the five chosen cards for a created reading").
		Handler(func(ctx context.Context, input readingDrawInput) (map[string]any, error) {
			id, err := requireID(input.SessionID, "session_id")
			if err != nil {
				return nil, err
			}
			wf, err := newWorkflow(app)
			if err != nil {
				return nil, err
			}
			defer wf.Close()

			if err := wf.LoadCatalog(ctx); err != nil {
				return nil, err
			}
			if err := wf.Resume(ctx, id); err != nil {
				return nil, err
			}
			if wf.Snapshot().State != readingApp.StateSessionCreated {
				return nil, readingApp.ErrInvalidState
			}
			if err := selectCards(wf, input.CardIDs); err != nil {
				return nil, err
			}
			if err := wf.Submit(ctx); err != nil {
				return nil, explain(err)
			}
			wf.RevealAll()

			snap := wf.Snapshot()
			return map[string]any{
				"session_id": snap.SessionID,
				"cards":      cardViews(snap.Cards),
				"next":       "reading.interpret",
			}, nil
		})

	srv.Tool("reading.interpret").
		Description("Get the interpretation of a reading whose cards were drawn").
		Handler(func(ctx context.Context, input readingInterpretInput) (map[string]any, error) {
			id, err := requireID(input.SessionID, "session_id")
			if err != nil {
				return nil, err
			}
			wf, err := newWorkflow(app)
			if err != nil {
				return nil, err
			}
			defer wf.Close()

			if err := wf.Resume(ctx, id); err != nil {
				return nil, err
			}
			if wf.Snapshot().State != readingApp.StateInterpreted {
				if err := wf.Interpret(ctx); err != nil {
					return nil, explain(err)
				}
			}

			snap := wf.Snapshot()
			return map[string]any{
				"session_id":     snap.SessionID,
				"theme":          snap.Theme,
				"question":       snap.Question,
				"cards":          cardViews(snap.Cards),
				"interpretation": readingApp.DisplayText(snap.Interpretation),
			}, nil
		})

	return nil
}
