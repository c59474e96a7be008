package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/felixgeelhaar/arcana/internal/reading/domain"
)

// CreateReadingSession starts a session. theme carries the encoded payload.
func (c *Client) CreateReadingSession(ctx context.Context, theme string) (*domain.Session, error) {
	var out domain.Session
	err := c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/tarot/sessions",
		Body:   map[string]string{"theme": theme},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListReadingSessions pages through the caller's sessions. Zero values are
// left out of the query.
func (c *Client) ListReadingSessions(ctx context.Context, page, limit int) (*domain.SessionPage, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var out domain.SessionPage
	err := c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/tarot/sessions",
		Query:  query,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetReadingSession fetches one session.
func (c *Client) GetReadingSession(ctx context.Context, id string) (*domain.Session, error) {
	var out domain.Session
	err := c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/tarot/sessions/" + url.PathEscape(id),
		Route:  "/tarot/sessions/:id",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DrawCards binds the selected cards to a session.
func (c *Client) DrawCards(ctx context.Context, sessionID string, cardIDs []string) (*domain.Session, error) {
	var out domain.Session
	err := c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/tarot/sessions/" + url.PathEscape(sessionID) + "/draw-cards",
		Route:  "/tarot/sessions/:id/draw-cards",
		Body:   map[string][]string{"selectedCardIds": cardIDs},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAvailableCards returns the selectable catalog. A zero limit is left out.
func (c *Client) GetAvailableCards(ctx context.Context, limit int) ([]domain.AvailableCard, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var out struct {
		Cards []domain.AvailableCard `json:"cards"`
	}
	err := c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/tarot/cards/available",
		Query:  query,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Cards, nil
}

// Interpret asks the backend for the reading of a drawn session.
func (c *Client) Interpret(ctx context.Context, sessionID string) (*domain.Session, error) {
	var out domain.Session
	err := c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/tarot/sessions/" + url.PathEscape(sessionID) + "/interpret",
		Route:  "/tarot/sessions/:id/interpret",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Ping checks that the backend answers by fetching a single catalog card.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.GetAvailableCards(ctx, 1)
	return err
}
