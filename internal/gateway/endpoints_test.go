package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCurrentSubscription(t *testing.T) {
	t.Run("404 means none", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"message":"Subscription not found"}`)
		}, "tok")

		sub, err := client.GetCurrentSubscription(context.Background())
		require.NoError(t, err)
		assert.Nil(t, sub)
	})

	t.Run("other errors propagate", func(t *testing.T) {
		for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden, http.StatusInternalServerError} {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
			}, "tok")

			sub, err := client.GetCurrentSubscription(context.Background())
			require.Error(t, err)
			assert.Nil(t, sub)
			assert.Equal(t, status, StatusCode(err))
		}
	})

	t.Run("unwraps subscription", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/subscriptions/current", r.URL.Path)
			_, _ = io.WriteString(w, `{"subscription":{"id":"s1","planId":"p1","status":"TRIAL","startDate":"2024-05-01T10:00:00.000Z","createdAt":"2024-05-01T10:00:00.000Z"}}`)
		}, "tok")

		sub, err := client.GetCurrentSubscription(context.Background())
		require.NoError(t, err)
		require.NotNil(t, sub)
		assert.Equal(t, "p1", sub.PlanID)
		assert.Equal(t, 2024, sub.StartDate.Year())
	})
}

func TestQueryParametersOmittedWhenZero(t *testing.T) {
	var queries []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.RawQuery)
		if r.URL.Path == "/tarot/cards/available" {
			_, _ = io.WriteString(w, `{"cards":[{"id":"c1","name":"O Louco","category":"MAJOR_ARCANA"}]}`)
			return
		}
		_, _ = io.WriteString(w, `{"sessions":[],"total":0,"page":1,"limit":10,"totalPages":0}`)
	}, "tok")
	ctx := context.Background()

	_, err := client.ListReadingSessions(ctx, 0, 0)
	require.NoError(t, err)
	_, err = client.ListReadingSessions(ctx, 2, 10)
	require.NoError(t, err)
	cards, err := client.GetAvailableCards(ctx, 0)
	require.NoError(t, err)
	_, err = client.GetAvailableCards(ctx, 30)
	require.NoError(t, err)

	assert.Equal(t, []string{"", "limit=10&page=2", "", "limit=30"}, queries)
	require.Len(t, cards, 1)
	assert.Equal(t, "O Louco", cards[0].Name)
}

func TestReadingEndpoints(t *testing.T) {
	type call struct {
		method string
		path   string
		body   map[string]any
	}
	var calls []call
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		c := call{method: r.Method, path: r.URL.Path}
		if r.ContentLength > 0 {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&c.body))
		}
		calls = append(calls, c)
		_, _ = io.WriteString(w, `{"id":"s1","status":"CARDS_DRAWN","cards":[{"id":"c1","name":"A","position":1,"isReversed":true}]}`)
	}, "tok")
	ctx := context.Background()

	_, err := client.CreateReadingSession(ctx, `{"theme":"Família","question":"?"}`)
	require.NoError(t, err)
	drawn, err := client.DrawCards(ctx, "s1", []string{"c1", "c2"})
	require.NoError(t, err)
	_, err = client.GetReadingSession(ctx, "s1")
	require.NoError(t, err)
	_, err = client.Interpret(ctx, "s1")
	require.NoError(t, err)

	require.Len(t, calls, 4)
	assert.Equal(t, call{http.MethodPost, "/tarot/sessions", map[string]any{"theme": `{"theme":"Família","question":"?"}`}}, calls[0])
	assert.Equal(t, http.MethodPost, calls[1].method)
	assert.Equal(t, "/tarot/sessions/s1/draw-cards", calls[1].path)
	assert.Equal(t, []any{"c1", "c2"}, calls[1].body["selectedCardIds"])
	assert.Equal(t, call{http.MethodGet, "/tarot/sessions/s1", nil}, calls[2])
	assert.Equal(t, call{http.MethodPost, "/tarot/sessions/s1/interpret", nil}, calls[3])

	require.Len(t, drawn.Cards, 1)
	assert.True(t, drawn.Cards[0].IsReversed)
}

func TestAuthEndpoints(t *testing.T) {
	var paths []string
	var bodies []map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.RequestURI())
		var body map[string]any
		if r.ContentLength > 0 {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		}
		bodies = append(bodies, body)
		switch r.URL.Path {
		case "/users":
			_, _ = io.WriteString(w, `{"message":"created","user":{"id":"u1","name":"Ana","email":"ana@example.com"}}`)
		case "/users/verify-email":
			_, _ = io.WriteString(w, `{"message":"verified"}`)
		default:
			_, _ = io.WriteString(w, `{"accessToken":"tok","user":{"id":"u1","name":"Ana","email":"ana@example.com","emailVerified":false}}`)
		}
	}, "")
	ctx := context.Background()

	res, err := client.Login(ctx, "ana@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "tok", res.AccessToken)
	assert.Equal(t, "Ana", res.User.Name)

	_, err = client.LoginWithGoogle(ctx, "google-id-token")
	require.NoError(t, err)

	reg, err := client.Register(ctx, "Ana", "ana@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "created", reg.Message)

	msg, err := client.VerifyEmail(ctx, "a b&c")
	require.NoError(t, err)
	assert.Equal(t, "verified", msg.Message)

	assert.Equal(t, []string{"/users/login", "/users/login/google", "/users", "/users/verify-email?token=a+b%26c"}, paths)
	assert.Equal(t, map[string]any{"email": "ana@example.com", "password": "secret1"}, bodies[0])
	assert.Equal(t, map[string]any{"idToken": "google-id-token"}, bodies[1])
	assert.Equal(t, map[string]any{"name": "Ana", "email": "ana@example.com", "password": "secret1"}, bodies[2])
}

func TestPing(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tarot/cards/available", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		_, _ = io.WriteString(w, `{"cards":[]}`)
	}, "")
	require.NoError(t, client.Ping(context.Background()))

	down := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, "")
	err := down.Ping(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, StatusCode(err))
}
