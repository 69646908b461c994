package domain

import (
	"errors"
	"time"
)

// EnrollmentStatus is the tracking state of one enrollment.
type EnrollmentStatus string

const (
	StatusInProgress EnrollmentStatus = "Em Andamento"
	StatusDroppedOut EnrollmentStatus = "Desistência"
	StatusCompleted  EnrollmentStatus = "Concluído"
)

var validStatuses = map[EnrollmentStatus]struct{}{
	StatusInProgress: {},
	StatusDroppedOut: {},
	StatusCompleted:  {},
}

// Valid reports whether s is one of the known tracking statuses.
func (s EnrollmentStatus) Valid() bool {
	_, ok := validStatuses[s]
	return ok
}

// EnrollmentType distinguishes the three preparation tracks.
type EnrollmentType string

const (
	TypeCatequese    EnrollmentType = "catequese"
	TypeCatecumenato EnrollmentType = "catecumenato"
	TypeCrisma       EnrollmentType = "crisma"
)

// Valid reports whether t is a known preparation track.
func (t EnrollmentType) Valid() bool {
	return t == TypeCatequese || t == TypeCatecumenato || t == TypeCrisma
}

var ErrEnrollmentNotFound = errors.New("enrollment not found")
var ErrInvalidStatus = errors.New("invalid enrollment status")
var ErrInvalidEnrollmentType = errors.New("invalid enrollment type")

// Enrollment is one registration form for the sacrament preparation program.
type Enrollment struct {
	ID         string         `json:"id"`
	Type       EnrollmentType `json:"tipo_inscricao"`
	Email      string         `json:"email"`
	FullName   string         `json:"nome_completo"`
	BirthDate  string         `json:"data_nascimento"`
	Birthplace string         `json:"naturalidade,omitempty"`
	Sex        string         `json:"sexo,omitempty"`
	Address    string         `json:"endereco,omitempty"`
	Phone      string         `json:"telefone_whatsapp,omitempty"`

	Baptized       bool   `json:"batizado"`
	BaptismParish  string `json:"paroquia_batismo,omitempty"`
	BaptismDiocese string `json:"diocese_batismo,omitempty"`
	FirstCommunion bool   `json:"comunhao"`

	FatherName    string `json:"nome_pai,omitempty"`
	MotherName    string `json:"nome_mae,omitempty"`
	GodparentName string `json:"nome_padrinho_madrinha,omitempty"`

	Community  string `json:"comunidade_curso,omitempty"`
	Catechist  string `json:"nome_catequista,omitempty"`
	CourseTime string `json:"horario_curso,omitempty"`

	Status    EnrollmentStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// StatusEntry is one append-only audit record of an enrollment's status.
type StatusEntry struct {
	ID           string           `json:"id"`
	EnrollmentID string           `json:"inscricao_id"`
	Status       EnrollmentStatus `json:"status"`
	Note         string           `json:"observacao,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

// EnrollmentFilter narrows enrollment listings. Zero values mean "no filter".
type EnrollmentFilter struct {
	Email     string
	FullName  string
	Community string
	Sex       string
	Baptized  *bool
	Limit     int64
	Offset    int64
}
