package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/felixgeelhaar/mcp-go"
)

func registerAuthTools(srv *mcp.Server, deps ToolDependencies) error {
	app := deps.App

	srv.Tool("auth.whoami").
		Description("Show the logged in user of this Arcana installation").
		Handler(func(ctx context.Context, input struct{}) (map[string]any, error) {
			if app == nil || app.Session == nil {
				return nil, errors.New("session service not configured")
			}
			if !app.Session.IsAuthenticated() {
				return map[string]any{"authenticated": false}, nil
			}
			result := map[string]any{
				"authenticated": true,
				"user":          app.Session.Current(),
			}
			if exp, ok := app.Session.CredentialExpiry(); ok {
				result["expires_at"] = exp.UTC().Format(time.RFC3339)
			}
			return result, nil
		})

	return nil
}
