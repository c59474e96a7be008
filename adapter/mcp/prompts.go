package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/mcp-go"

	readingDomain "github.com/felixgeelhaar/arcana/internal/reading/domain"
)

// RegisterPrompts registers MCP prompts for common Arcana workflows.
func RegisterPrompts(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}

	srv.Prompt("tarot_reading").
		Description("Walk through a five card tarot reading: choose cards, draw them and read the interpretation.").
		Argument("question", "What the reading should answer", true).
		Argument("theme", "One of the reading themes", false).
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return &mcp.PromptResult{
				Description: "Tarot Reading",
				Messages: []mcp.PromptMessage{
					{
						Role: string(mcp.RoleUser),
						Content: mcp.TextContent{
							Type: "text",
							Text: readingPrompt(args["question"], args["theme"]),
						},
					},
				},
			}, nil
		})

	srv.Prompt("reading_history").
		Description("Review past readings and pick up any that were left unfinished.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return &mcp.PromptResult{
				Description: "Reading History",
				Messages: []mcp.PromptMessage{
					{
						Role: string(mcp.RoleUser),
						Content: mcp.TextContent{
							Type: "text",
							Text: `Look through my past tarot readings with sessions.list.

For each reading that is not interpreted yet, tell me its theme and question and offer to finish it:
- created readings still need reading.draw with five cards
- readings with drawn cards only need reading.interpret

Summarise the interpreted ones in a sentence each using sessions.get.`,
						},
					},
				},
			}, nil
		})

	return nil
}

func readingPrompt(question, theme string) string {
	theme = strings.TrimSpace(theme)
	if theme == "" {
		theme = readingDomain.DefaultTheme
	}
	return fmt.Sprintf(`I want a tarot reading.

Theme: %s
Question: %s

Please:
1. Check that I am logged in with auth.whoami
2. Show me the cards from cards.available and let me pick exactly %d, or pick them at random if I ask you to
3. Start the reading with reading.create using my theme, question and cards
4. Draw the cards with reading.draw and tell me which came out reversed
5. Fetch the interpretation with reading.interpret and present it in full

If the daily limit is reached, show me the plans from plans.list instead.`,
		theme, strings.TrimSpace(question), readingDomain.MaxSelection)
}
