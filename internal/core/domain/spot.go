package domain

import (
	"errors"
	"time"
)

var ErrSpotNotFound = errors.New("spot not found")
var ErrSpotOrderTaken = errors.New("spot order already in use")

// Spot is a promotional content block shown on the public site. Ordering is
// controlled by Order, which is unique across all spots.
type Spot struct {
	ID          string     `json:"id"`
	Title       string     `json:"titulo"`
	Subtitle    string     `json:"subtitulo,omitempty"`
	Description string     `json:"descricao"`
	Icon        string     `json:"icone,omitempty"`
	Image       string     `json:"imagem,omitempty"`
	LinkText    string     `json:"link_texto,omitempty"`
	LinkURL     string     `json:"link_url,omitempty"`
	Type        string     `json:"tipo_spot"`
	Settings    string     `json:"configuracoes,omitempty"`
	Order       int        `json:"ordem"`
	Active      bool       `json:"ativo"`
	StartsAt    *time.Time `json:"data_inicio,omitempty"`
	EndsAt      *time.Time `json:"data_fim,omitempty"`
	CreatedAt   time.Time  `json:"data_criacao"`
	UpdatedAt   time.Time  `json:"data_atualizacao"`
}

// VisibleAt reports whether the spot should appear on public listings at t:
// active and inside its optional start/end window.
func (s Spot) VisibleAt(t time.Time) bool {
	if !s.Active {
		return false
	}
	if s.StartsAt != nil && t.Before(*s.StartsAt) {
		return false
	}
	if s.EndsAt != nil && t.After(*s.EndsAt) {
		return false
	}
	return true
}

// SpotOrder is one entry of a batch reorder request.
type SpotOrder struct {
	ID    string `json:"id"`
	Order int    `json:"ordem"`
}
