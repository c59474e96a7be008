package mcp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/arcana/adapter/cli"
	readingApp "github.com/felixgeelhaar/arcana/internal/reading/application"
	readingDomain "github.com/felixgeelhaar/arcana/internal/reading/domain"
)

var errLoginRequired = errors.New("login required: run 'arcana auth login' on this machine first")

func newWorkflow(app *cli.App) (*readingApp.Workflow, error) {
	if app == nil || app.NewWorkflow == nil {
		return nil, errors.New("reading service not configured")
	}
	return app.NewWorkflow(nil, nil), nil
}

func requireID(value, field string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%s is required", field)
	}
	return value, nil
}

// selectCards toggles ids on and reports the ids that are not selectable.
func selectCards(wf *readingApp.Workflow, ids []string) error {
	if len(ids) != readingDomain.MaxSelection {
		return fmt.Errorf("card_ids must hold exactly %d ids", readingDomain.MaxSelection)
	}
	var unknown []string
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if seen[id] || !wf.Toggle(id) {
			unknown = append(unknown, id)
			continue
		}
		seen[id] = true
	}
	if len(unknown) > 0 {
		return fmt.Errorf("cards not available or repeated: %s", strings.Join(unknown, ", "))
	}
	return nil
}

// explain maps workflow errors to messages an assistant can act on.
func explain(err error) error {
	switch {
	case errors.Is(err, readingApp.ErrAuthRequired):
		return errLoginRequired
	case errors.Is(err, readingApp.ErrQuotaExceeded):
		return fmt.Errorf("%w: list upgrades with plans.list and subscribe with plans.subscribe", err)
	default:
		return err
	}
}

type cardView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Position    int    `json:"position"`
	Reversed    bool   `json:"reversed"`
	Orientation string `json:"orientation"`
}

func cardViews(cards []readingDomain.DrawnCard) []cardView {
	out := make([]cardView, len(cards))
	for i, c := range cards {
		out[i] = cardView{
			ID:          c.ID,
			Name:        c.Name,
			Position:    c.Position,
			Reversed:    c.IsReversed,
			Orientation: c.Orientation(),
		}
	}
	return out
}
