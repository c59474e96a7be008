package domain

import (
	"encoding/json"
	"strings"
)

// Themes offered when starting a reading.
var Themes = []string{
	"Carreira e Finanças",
	"Saúde e bem-estar",
	"Família",
	"Espiritualidade",
	"Amor e relacionamentos",
}

// DefaultTheme is preselected for a new reading.
const DefaultTheme = "Amor e relacionamentos"

// UnknownTheme is shown for history entries with no usable theme.
const UnknownTheme = "Não especificado"

// ThemePayload carries the theme and question that the backend stores in a
// single "theme" field as embedded JSON.
type ThemePayload struct {
	Theme    string `json:"theme"`
	Question string `json:"question"`
}

// Encode serialises the payload for the session theme field.
func (p ThemePayload) Encode() string {
	raw, err := json.Marshal(p)
	if err != nil {
		return p.Theme
	}
	return string(raw)
}

// DecodeThemePayload parses a stored theme field. Values that are not a JSON
// object, including plain strings written by older clients, become the theme
// with an empty question.
func DecodeThemePayload(stored string) ThemePayload {
	var p ThemePayload
	trimmed := strings.TrimSpace(stored)
	if !strings.HasPrefix(trimmed, "{") {
		return ThemePayload{Theme: stored}
	}
	if err := json.Unmarshal([]byte(trimmed), &p); err != nil {
		return ThemePayload{Theme: stored}
	}
	return p
}
