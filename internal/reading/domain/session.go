package domain

import "time"

// Status is the backend lifecycle of a reading session. Transitions only move
// forward: CREATED, then CARDS_DRAWN, then INTERPRETED.
type Status string

const (
	StatusCreated     Status = "CREATED"
	StatusCardsDrawn  Status = "CARDS_DRAWN"
	StatusInterpreted Status = "INTERPRETED"
)

// Label returns the display label for the status.
func (s Status) Label() string {
	switch s {
	case StatusCreated:
		return "Criada"
	case StatusCardsDrawn:
		return "Cartas Escolhidas"
	case StatusInterpreted:
		return "Interpretada"
	default:
		return string(s)
	}
}

// Category separates the major and minor arcana.
type Category string

const (
	CategoryMajorArcana Category = "MAJOR_ARCANA"
	CategoryMinorArcana Category = "MINOR_ARCANA"
)

func (c Category) Label() string {
	switch c {
	case CategoryMajorArcana:
		return "Arcanos Maiores"
	case CategoryMinorArcana:
		return "Arcanos Menores"
	default:
		return string(c)
	}
}

// AvailableCard is an entry of the selectable card catalog.
type AvailableCard struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
}

// DrawnCard is a card bound to a session. Position is 1-based.
type DrawnCard struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Position   int    `json:"position"`
	IsReversed bool   `json:"isReversed"`
}

// Orientation returns a short upright/reversed label.
func (c DrawnCard) Orientation() string {
	if c.IsReversed {
		return "invertida"
	}
	return "normal"
}

// Session is a reading session as stored by the backend.
type Session struct {
	ID             string      `json:"id"`
	UserID         string      `json:"userId"`
	Theme          string      `json:"theme"`
	Status         Status      `json:"status"`
	Cards          []DrawnCard `json:"cards"`
	Interpretation *string     `json:"interpretation"`
	CreatedAt      time.Time   `json:"createdAt"`
	CardsDrawnAt   *time.Time  `json:"cardsDrawnAt"`
	InterpretedAt  *time.Time  `json:"interpretedAt"`
}

// InterpretationText returns the interpretation or "".
func (s *Session) InterpretationText() string {
	if s == nil || s.Interpretation == nil {
		return ""
	}
	return *s.Interpretation
}

// SessionPage is one page of the caller's reading history.
type SessionPage struct {
	Sessions   []Session `json:"sessions"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"totalPages"`
}
