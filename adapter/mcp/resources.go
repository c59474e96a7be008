package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"

	readingDomain "github.com/felixgeelhaar/arcana/internal/reading/domain"
)

// RegisterResources registers MCP resources that expose Arcana data.
func RegisterResources(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}
	app := deps.App

	srv.Resource("arcana://themes").
		Name("Themes").
		Description("Reading themes and the default one").
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			return jsonResource(uri, map[string]any{
				"themes":  readingDomain.Themes,
				"default": readingDomain.DefaultTheme,
			})
		})

	srv.Resource("arcana://cards").
		Name("Cards").
		Description("Cards that can be chosen for a reading").
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			wf, err := newWorkflow(app)
			if err != nil {
				return nil, err
			}
			defer wf.Close()

			if err := wf.LoadCatalog(ctx); err != nil {
				return nil, err
			}
			return jsonResource(uri, wf.Snapshot().Catalog)
		})

	srv.Resource("arcana://plans").
		Name("Plans").
		Description("Subscription plans with the current one marked").
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			if app == nil || app.Billing == nil {
				return nil, fmt.Errorf("billing service not configured")
			}
			overview, err := app.Billing.Overview(ctx)
			if err != nil {
				return nil, err
			}
			return jsonResource(uri, overview)
		})

	return nil
}

func jsonResource(uri string, v any) (*mcp.ResourceContent, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return &mcp.ResourceContent{
		URI:      uri,
		MimeType: "application/json",
		Text:     string(data),
	}, nil
}
