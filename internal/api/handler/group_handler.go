package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/paroquia-sj/crisma-system/internal/core/domain"
	"github.com/paroquia-sj/crisma-system/internal/core/ports"
)

type GroupHandler struct {
	groupService ports.GroupService
}

func NewGroupHandler(groupService ports.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

type createGroupRequest struct {
	Name        string              `json:"nome" validate:"required"`
	Description string              `json:"descricao"`
	Permissions []domain.Permission `json:"permissoes"`
}

type updateGroupRequest struct {
	Name        *string             `json:"nome"`
	Description *string             `json:"descricao"`
	Permissions []domain.Permission `json:"permissoes"`
	Active      *bool               `json:"ativo"`
}

type assignGroupRequest struct {
	UserID string `json:"usuario_id" validate:"required"`
}

// Create adds an access group. Permission tokens outside the registry are
// rejected.
//
// @Summary      Create access group
// @Tags         grupos
// @Accept       json
// @Produce      json
// @Param        body  body      createGroupRequest  true  "Group details"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Router       /grupos [post]
func (h *GroupHandler) Create(c echo.Context) error {
	var req createGroupRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Requisição inválida")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	group, err := h.groupService.Create(c.Request().Context(), req.Name, req.Description, req.Permissions)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrGroupExists):
			return fail(c, http.StatusBadRequest, "Grupo já existe")
		case errors.Is(err, domain.ErrUnknownPermission):
			return fail(c, http.StatusBadRequest, "Permissão desconhecida")
		}
		return err
	}
	return respond(c, http.StatusOK, "Grupo criado com sucesso", group)
}

// @Summary      List access groups
// @Tags         grupos
// @Produce      json
// @Success      200  {object}  envelope
// @Router       /grupos [get]
func (h *GroupHandler) List(c echo.Context) error {
	groups, err := h.groupService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", groups)
}

// @Summary      Get access group
// @Tags         grupos
// @Produce      json
// @Param        id   path      string  true  "Group id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /grupos/{id} [get]
func (h *GroupHandler) Get(c echo.Context) error {
	group, err := h.groupService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrGroupNotFound) {
			return fail(c, http.StatusNotFound, "Grupo não encontrado")
		}
		return err
	}
	return respond(c, http.StatusOK, "", group)
}

// Update applies a partial update; sending a permission list replaces the
// group's whole set after registry validation.
//
// @Summary      Update access group
// @Tags         grupos
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Group id"
// @Param        body  body      updateGroupRequest  true  "Fields to update"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /grupos/{id} [put]
func (h *GroupHandler) Update(c echo.Context) error {
	var req updateGroupRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Requisição inválida")
	}

	group, err := h.groupService.Update(c.Request().Context(), c.Param("id"), req.Name, req.Description, req.Permissions, req.Active)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrGroupNotFound):
			return fail(c, http.StatusNotFound, "Grupo não encontrado")
		case errors.Is(err, domain.ErrGroupExists):
			return fail(c, http.StatusBadRequest, "Nome de grupo já está em uso")
		case errors.Is(err, domain.ErrUnknownPermission):
			return fail(c, http.StatusBadRequest, "Permissão desconhecida")
		}
		return err
	}
	return respond(c, http.StatusOK, "Grupo atualizado com sucesso", group)
}

// @Summary      Delete access group
// @Tags         grupos
// @Produce      json
// @Param        id   path      string  true  "Group id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /grupos/{id} [delete]
func (h *GroupHandler) Delete(c echo.Context) error {
	if err := h.groupService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrGroupNotFound) {
			return fail(c, http.StatusNotFound, "Grupo não encontrado")
		}
		return err
	}
	return respond(c, http.StatusOK, "Grupo deletado com sucesso", nil)
}

// AssignUser links a user to the group. Linking twice is a no-op.
//
// @Summary      Assign user to group
// @Tags         grupos
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Group id"
// @Param        body  body      assignGroupRequest  true  "User to link"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /grupos/{id}/usuarios [post]
func (h *GroupHandler) AssignUser(c echo.Context) error {
	var req assignGroupRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Requisição inválida")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	if err := h.groupService.AssignUser(c.Request().Context(), req.UserID, c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrGroupNotFound) {
			return fail(c, http.StatusNotFound, "Grupo não encontrado")
		}
		return err
	}
	return respond(c, http.StatusOK, "Usuário associado ao grupo", nil)
}
