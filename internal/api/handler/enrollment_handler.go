package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/paroquia-sj/crisma-system/internal/core/domain"
	"github.com/paroquia-sj/crisma-system/internal/core/ports"
)

type EnrollmentHandler struct {
	enrollmentService ports.EnrollmentService
}

func NewEnrollmentHandler(enrollmentService ports.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService}
}

type enrollmentRequest struct {
	Type           string `json:"tipo_inscricao"`
	Email          string `json:"email" validate:"required,email"`
	FullName       string `json:"nome_completo" validate:"required"`
	BirthDate      string `json:"data_nascimento" validate:"required"`
	Birthplace     string `json:"naturalidade"`
	Sex            string `json:"sexo"`
	Address        string `json:"endereco"`
	Phone          string `json:"telefone_whatsapp"`
	Baptized       bool   `json:"batizado"`
	BaptismParish  string `json:"paroquia_batismo"`
	BaptismDiocese string `json:"diocese_batismo"`
	FirstCommunion bool   `json:"comunhao"`
	FatherName     string `json:"nome_pai"`
	MotherName     string `json:"nome_mae"`
	GodparentName  string `json:"nome_padrinho_madrinha"`
	Community      string `json:"comunidade_curso"`
	Catechist      string `json:"nome_catequista"`
	CourseTime     string `json:"horario_curso"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
	Note   string `json:"observacao"`
}

func (r enrollmentRequest) toDomain() domain.Enrollment {
	return domain.Enrollment{
		Type:           domain.EnrollmentType(r.Type),
		Email:          r.Email,
		FullName:       r.FullName,
		BirthDate:      r.BirthDate,
		Birthplace:     r.Birthplace,
		Sex:            r.Sex,
		Address:        r.Address,
		Phone:          r.Phone,
		Baptized:       r.Baptized,
		BaptismParish:  r.BaptismParish,
		BaptismDiocese: r.BaptismDiocese,
		FirstCommunion: r.FirstCommunion,
		FatherName:     r.FatherName,
		MotherName:     r.MotherName,
		GodparentName:  r.GodparentName,
		Community:      r.Community,
		Catechist:      r.Catechist,
		CourseTime:     r.CourseTime,
	}
}

// Create stores a registration form submitted by an applicant. This is the
// public-facing form endpoint, so it needs no token.
//
// @Summary      Create enrollment
// @Tags         inscricoes
// @Accept       json
// @Produce      json
// @Param        body  body      enrollmentRequest  true  "Registration form"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Router       /inscricoes [post]
func (h *EnrollmentHandler) Create(c echo.Context) error {
	var req enrollmentRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Requisição inválida")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	enrollment := req.toDomain()
	created, err := h.enrollmentService.Create(c.Request().Context(), &enrollment)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidEnrollmentType) {
			return fail(c, http.StatusBadRequest, "Tipo de inscrição inválido")
		}
		return err
	}
	return respond(c, http.StatusOK, "Inscrição salva com sucesso!", created)
}

// List returns enrollments, filterable by query string.
//
// @Summary      List enrollments
// @Tags         inscricoes
// @Produce      json
// @Param        email            query     string  false  "Filter by email (substring)"
// @Param        nomeCompleto     query     string  false  "Filter by name (substring)"
// @Param        comunidadeCurso  query     string  false  "Filter by community (substring)"
// @Param        sexo             query     string  false  "Filter by sex"
// @Param        batizado         query     bool    false  "Filter by baptism"
// @Param        limit            query     int     false  "Page size (default 100)"
// @Param        offset           query     int     false  "Page offset"
// @Success      200              {object}  envelope
// @Router       /inscricoes [get]
func (h *EnrollmentHandler) List(c echo.Context) error {
	filter := domain.EnrollmentFilter{
		Email:     c.QueryParam("email"),
		FullName:  c.QueryParam("nomeCompleto"),
		Community: c.QueryParam("comunidadeCurso"),
		Sex:       c.QueryParam("sexo"),
	}
	if v := c.QueryParam("batizado"); v != "" {
		b := v == "true"
		filter.Baptized = &b
	}
	if v, err := strconv.ParseInt(c.QueryParam("limit"), 10, 64); err == nil {
		filter.Limit = v
	}
	if v, err := strconv.ParseInt(c.QueryParam("offset"), 10, 64); err == nil {
		filter.Offset = v
	}

	enrollments, err := h.enrollmentService.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", enrollments)
}

// @Summary      Get enrollment
// @Tags         inscricoes
// @Produce      json
// @Param        id   path      string  true  "Enrollment id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /inscricoes/{id} [get]
func (h *EnrollmentHandler) Get(c echo.Context) error {
	enrollment, err := h.enrollmentService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrEnrollmentNotFound) {
			return fail(c, http.StatusNotFound, "Inscrição não encontrada")
		}
		return err
	}
	return respond(c, http.StatusOK, "", enrollment)
}

// @Summary      Update enrollment
// @Tags         inscricoes
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Enrollment id"
// @Param        body  body      enrollmentRequest  true  "Registration form"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /inscricoes/{id} [put]
func (h *EnrollmentHandler) Update(c echo.Context) error {
	var req enrollmentRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Requisição inválida")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	enrollment := req.toDomain()
	updated, err := h.enrollmentService.Update(c.Request().Context(), c.Param("id"), &enrollment)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEnrollmentNotFound):
			return fail(c, http.StatusNotFound, "Inscrição não encontrada")
		case errors.Is(err, domain.ErrInvalidEnrollmentType):
			return fail(c, http.StatusBadRequest, "Tipo de inscrição inválido")
		}
		return err
	}
	return respond(c, http.StatusOK, "Inscrição atualizada com sucesso", updated)
}

// @Summary      Delete enrollment
// @Tags         inscricoes
// @Produce      json
// @Param        id   path      string  true  "Enrollment id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /inscricoes/{id} [delete]
func (h *EnrollmentHandler) Delete(c echo.Context) error {
	if err := h.enrollmentService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrEnrollmentNotFound) {
			return fail(c, http.StatusNotFound, "Inscrição não encontrada")
		}
		return err
	}
	return respond(c, http.StatusOK, "Inscrição deletada com sucesso", nil)
}

// UpdateStatus appends a tracking-status entry to the enrollment's history.
//
// @Summary      Update enrollment status
// @Tags         inscricoes
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Enrollment id"
// @Param        body  body      statusRequest  true  "New status"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /inscricoes/{id}/status [post]
func (h *EnrollmentHandler) UpdateStatus(c echo.Context) error {
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Requisição inválida")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	entry, err := h.enrollmentService.UpdateStatus(c.Request().Context(), c.Param("id"), domain.EnrollmentStatus(req.Status), req.Note)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEnrollmentNotFound):
			return fail(c, http.StatusNotFound, "Inscrição não encontrada")
		case errors.Is(err, domain.ErrInvalidStatus):
			return fail(c, http.StatusBadRequest, "Status inválido")
		}
		return err
	}
	return respond(c, http.StatusOK, "Status atualizado com sucesso", entry)
}

// @Summary      Enrollment status history
// @Tags         inscricoes
// @Produce      json
// @Param        id   path      string  true  "Enrollment id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /inscricoes/{id}/status [get]
func (h *EnrollmentHandler) StatusHistory(c echo.Context) error {
	entries, err := h.enrollmentService.StatusHistory(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrEnrollmentNotFound) {
			return fail(c, http.StatusNotFound, "Inscrição não encontrada")
		}
		return err
	}
	return respond(c, http.StatusOK, "", entries)
}
