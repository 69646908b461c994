package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/paroquia-sj/crisma-system/internal/core/domain"
	"github.com/paroquia-sj/crisma-system/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
	resolver    ports.PermissionResolver
}

func NewUserHandler(userService ports.UserService, resolver ports.PermissionResolver) *UserHandler {
	return &UserHandler{userService: userService, resolver: resolver}
}

type createUserRequest struct {
	Login    string `json:"usuario"`
	Password string `json:"senha"`
	Name     string `json:"nome"`
	Email    string `json:"email"`
}

type updateUserRequest struct {
	Login    *string `json:"usuario"`
	Password *string `json:"senha"`
	Name     *string `json:"nome"`
	Email    *string `json:"email"`
	Active   *bool   `json:"ativo"`
}

type userDetail struct {
	ID          string              `json:"id"`
	Login       string              `json:"usuario"`
	Name        string              `json:"nome"`
	Email       string              `json:"email,omitempty"`
	Active      bool                `json:"ativo"`
	CreatedAt   string              `json:"created_at"`
	UpdatedAt   string              `json:"updated_at"`
	Permissions []domain.Permission `json:"permissions,omitempty"`
}

func toUserDetail(u domain.User, perms []domain.Permission) userDetail {
	return userDetail{
		ID:          u.ID,
		Login:       u.Login,
		Name:        u.Name,
		Email:       u.Email,
		Active:      u.Active,
		CreatedAt:   u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:   u.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		Permissions: perms,
	}
}

// Create registers a user. Without a token it is only allowed while the
// bootstrap window is open (empty store, or the single default admin);
// afterwards it requires the usuarios.criar permission.
//
// @Summary      Create user
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "User details"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      401   {object}  envelope
// @Failure      403   {object}  envelope
// @Router       /usuarios [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Requisição inválida")
	}
	if req.Login == "" || req.Password == "" || req.Name == "" {
		return fail(c, http.StatusBadRequest, "Usuário, senha e nome são obrigatórios")
	}

	ctx := c.Request().Context()
	user, err := h.userService.Create(ctx, req.Login, req.Password, req.Name, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return fail(c, http.StatusBadRequest, "Usuário já existe")
		}
		return err
	}

	return respond(c, http.StatusOK, "Usuário criado com sucesso", toUserDetail(*user, nil))
}

// List returns all users with their resolved permission sets.
//
// @Summary      List users
// @Tags         usuarios
// @Produce      json
// @Success      200  {object}  envelope
// @Router       /usuarios [get]
func (h *UserHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	users, err := h.userService.List(ctx)
	if err != nil {
		return err
	}

	out := make([]userDetail, 0, len(users))
	for _, u := range users {
		out = append(out, toUserDetail(u, h.resolver.Resolve(ctx, u.ID).Sorted()))
	}
	return respond(c, http.StatusOK, "", out)
}

// Get returns one user by id.
//
// @Summary      Get user
// @Tags         usuarios
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /usuarios/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.userService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return fail(c, http.StatusNotFound, "Usuário não encontrado")
		}
		return err
	}
	return respond(c, http.StatusOK, "", toUserDetail(*user, nil))
}

// Update applies a partial update to a user.
//
// @Summary      Update user
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /usuarios/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Requisição inválida")
	}

	user, err := h.userService.Update(c.Request().Context(), c.Param("id"), ports.UserUpdate{
		Login:    req.Login,
		Password: req.Password,
		Name:     req.Name,
		Email:    req.Email,
		Active:   req.Active,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return fail(c, http.StatusNotFound, "Usuário não encontrado")
		case errors.Is(err, domain.ErrUserExists):
			return fail(c, http.StatusBadRequest, "Nome de usuário já está em uso")
		case errors.Is(err, domain.ErrNothingToUpdate):
			return fail(c, http.StatusBadRequest, "Nenhum campo para atualizar")
		}
		return err
	}

	return respond(c, http.StatusOK, "Usuário atualizado com sucesso", toUserDetail(*user, nil))
}

// Delete removes a user. Deleting the calling account is rejected.
//
// @Summary      Delete user
// @Tags         usuarios
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  envelope
// @Failure      400  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /usuarios/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.userService.Delete(c.Request().Context(), c.Param("id"), identity.UserID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSelfDelete):
			return fail(c, http.StatusBadRequest, "Não é possível deletar o próprio usuário")
		case errors.Is(err, domain.ErrUserNotFound):
			return fail(c, http.StatusNotFound, "Usuário não encontrado")
		}
		return err
	}

	return respond(c, http.StatusOK, "Usuário deletado com sucesso", toUserDetail(*user, nil))
}
