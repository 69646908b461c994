package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/paroquia-sj/crisma-system/internal/core/domain"
	"github.com/paroquia-sj/crisma-system/internal/core/ports"
)

type SpotHandler struct {
	spotService ports.SpotService
}

func NewSpotHandler(spotService ports.SpotService) *SpotHandler {
	return &SpotHandler{spotService: spotService}
}

type spotRequest struct {
	Title       *string    `json:"titulo"`
	Subtitle    *string    `json:"subtitulo"`
	Description *string    `json:"descricao"`
	Icon        *string    `json:"icone"`
	Image       *string    `json:"imagem"`
	LinkText    *string    `json:"link_texto"`
	LinkURL     *string    `json:"link_url"`
	Type        *string    `json:"tipo_spot"`
	Settings    *string    `json:"configuracoes"`
	Order       *int       `json:"ordem"`
	Active      *bool      `json:"ativo"`
	StartsAt    *time.Time `json:"data_inicio"`
	EndsAt      *time.Time `json:"data_fim"`
}

type reorderRequest struct {
	Spots []domain.SpotOrder `json:"spots"`
}

// apply overlays the request's set fields onto base.
func (r spotRequest) apply(base domain.Spot) domain.Spot {
	if r.Title != nil {
		base.Title = *r.Title
	}
	if r.Subtitle != nil {
		base.Subtitle = *r.Subtitle
	}
	if r.Description != nil {
		base.Description = *r.Description
	}
	if r.Icon != nil {
		base.Icon = *r.Icon
	}
	if r.Image != nil {
		base.Image = *r.Image
	}
	if r.LinkText != nil {
		base.LinkText = *r.LinkText
	}
	if r.LinkURL != nil {
		base.LinkURL = *r.LinkURL
	}
	if r.Type != nil {
		base.Type = *r.Type
	}
	if r.Settings != nil {
		base.Settings = *r.Settings
	}
	if r.Order != nil {
		base.Order = *r.Order
	}
	if r.Active != nil {
		base.Active = *r.Active
	}
	if r.StartsAt != nil {
		base.StartsAt = r.StartsAt
	}
	if r.EndsAt != nil {
		base.EndsAt = r.EndsAt
	}
	return base
}

// ListPublic returns the spots visible to the public site right now.
//
// @Summary      List public spots
// @Tags         spots
// @Produce      json
// @Success      200  {object}  envelope
// @Router       /spots/publicos [get]
func (h *SpotHandler) ListPublic(c echo.Context) error {
	spots, err := h.spotService.ListPublic(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", spots)
}

// @Summary      List all spots (admin)
// @Tags         spots
// @Produce      json
// @Success      200  {object}  envelope
// @Router       /spots/admin [get]
func (h *SpotHandler) ListAll(c echo.Context) error {
	spots, err := h.spotService.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", spots)
}

// @Summary      Get spot (admin)
// @Tags         spots
// @Produce      json
// @Param        id   path      string  true  "Spot id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /spots/admin/{id} [get]
func (h *SpotHandler) Get(c echo.Context) error {
	spot, err := h.spotService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrSpotNotFound) {
			return fail(c, http.StatusNotFound, "Spot não encontrado")
		}
		return err
	}
	return respond(c, http.StatusOK, "", spot)
}

// Create adds a spot; the sort position must be free.
//
// @Summary      Create spot
// @Tags         spots
// @Accept       json
// @Produce      json
// @Param        body  body      spotRequest  true  "Spot details"
// @Success      201   {object}  envelope
// @Failure      400   {object}  envelope
// @Router       /spots/admin [post]
func (h *SpotHandler) Create(c echo.Context) error {
	var req spotRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Requisição inválida")
	}
	if req.Title == nil || req.Description == nil || req.Type == nil || req.Order == nil {
		return fail(c, http.StatusBadRequest, "Campos obrigatórios: título, descrição, tipo_spot e ordem")
	}

	spot := req.apply(domain.Spot{Active: true})
	created, err := h.spotService.Create(c.Request().Context(), &spot)
	if err != nil {
		if errors.Is(err, domain.ErrSpotOrderTaken) {
			return fail(c, http.StatusBadRequest, "Já existe um spot com esta ordem")
		}
		return err
	}
	return respond(c, http.StatusCreated, "Spot criado com sucesso", created)
}

// Update overwrites the sent fields, keeping the rest of the stored spot.
//
// @Summary      Update spot
// @Tags         spots
// @Accept       json
// @Produce      json
// @Param        id    path      string       true  "Spot id"
// @Param        body  body      spotRequest  true  "Fields to update"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /spots/admin/{id} [put]
func (h *SpotHandler) Update(c echo.Context) error {
	var req spotRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Requisição inválida")
	}

	ctx := c.Request().Context()
	current, err := h.spotService.Get(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrSpotNotFound) {
			return fail(c, http.StatusNotFound, "Spot não encontrado")
		}
		return err
	}

	spot := req.apply(*current)
	updated, err := h.spotService.Update(ctx, c.Param("id"), &spot)
	if err != nil {
		if errors.Is(err, domain.ErrSpotOrderTaken) {
			return fail(c, http.StatusBadRequest, "Já existe um spot com esta ordem")
		}
		return err
	}
	return respond(c, http.StatusOK, "Spot atualizado com sucesso", updated)
}

// @Summary      Delete spot
// @Tags         spots
// @Produce      json
// @Param        id   path      string  true  "Spot id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /spots/admin/{id} [delete]
func (h *SpotHandler) Delete(c echo.Context) error {
	if err := h.spotService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrSpotNotFound) {
			return fail(c, http.StatusNotFound, "Spot não encontrado")
		}
		return err
	}
	return respond(c, http.StatusOK, "Spot excluído com sucesso", nil)
}

// ToggleStatus flips the spot's active flag.
//
// @Summary      Toggle spot status
// @Tags         spots
// @Produce      json
// @Param        id   path      string  true  "Spot id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /spots/admin/{id}/status [patch]
func (h *SpotHandler) ToggleStatus(c echo.Context) error {
	spot, err := h.spotService.ToggleActive(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrSpotNotFound) {
			return fail(c, http.StatusNotFound, "Spot não encontrado")
		}
		return err
	}

	msg := "Spot desativado com sucesso"
	if spot.Active {
		msg = "Spot ativado com sucesso"
	}
	return respond(c, http.StatusOK, msg, spot)
}

// Reorder applies a batch of sort positions.
//
// @Summary      Reorder spots
// @Tags         spots
// @Accept       json
// @Produce      json
// @Param        body  body      reorderRequest  true  "New positions"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Router       /spots/admin/reordenar [post]
func (h *SpotHandler) Reorder(c echo.Context) error {
	var req reorderRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Requisição inválida")
	}
	if len(req.Spots) == 0 {
		return fail(c, http.StatusBadRequest, "Dados inválidos. Esperado array de spots")
	}
	for _, s := range req.Spots {
		if s.ID == "" {
			return fail(c, http.StatusBadRequest, "ID e ordem são obrigatórios para cada spot")
		}
	}

	if err := h.spotService.Reorder(c.Request().Context(), req.Spots); err != nil {
		if errors.Is(err, domain.ErrSpotNotFound) {
			return fail(c, http.StatusBadRequest, "Spot não encontrado")
		}
		if errors.Is(err, domain.ErrSpotOrderTaken) {
			return fail(c, http.StatusBadRequest, "Já existe um spot com esta ordem")
		}
		return err
	}
	return respond(c, http.StatusOK, "Spots reordenados com sucesso", nil)
}
