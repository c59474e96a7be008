package mcp

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/mcp-go"

	readingApp "github.com/felixgeelhaar/arcana/internal/reading/application"
)

type sessionsListInput struct {
	Page int `json:"page,omitempty"`
}

type sessionsGetInput struct {
	SessionID string `json:"session_id" jsonschema:"required"`
}

func registerSessionTools(srv *mcp.Server, deps ToolDependencies) error {
	app := deps.App

	srv.Tool("sessions.list").
		Description("List past readings, newest first, ten per page").
		Handler(func(ctx context.Context, input sessionsListInput) (any, error) {
			if app == nil || app.History == nil {
				return nil, errors.New("history service not configured")
			}
			return app.History.List(ctx, input.Page)
		})

	srv.Tool("sessions.get").
		Description("Get one past reading with its cards and interpretation").
		Handler(func(ctx context.Context, input sessionsGetInput) (map[string]any, error) {
			if app == nil || app.History == nil {
				return nil, errors.New("history service not configured")
			}
			id, err := requireID(input.SessionID, "session_id")
			if err != nil {
				return nil, err
			}
			session, entry, err := app.History.Get(ctx, id)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"session_id":     entry.ID,
				"theme":          entry.Theme,
				"question":       entry.Question,
				"status":         entry.Status,
				"status_label":   entry.StatusLabel,
				"created_at":     entry.CreatedAt,
				"cards":          cardViews(session.Cards),
				"interpretation": readingApp.DisplayText(entry.Interpretation),
				"resumable":      entry.Resumable,
			}, nil
		})

	return nil
}
