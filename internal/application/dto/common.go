package dto

import (
	"encoding/base64"
	"fmt"

	"github.com/jhoicas/Brewlog-api/internal/application/ports"
	"github.com/jhoicas/Brewlog-api/internal/domain"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string               `json:"code"`
	Message string               `json:"message"`
	Fields  []FieldErrorResponse `json:"fields,omitempty"`
}

// FieldErrorResponse campo inválido de un formulario.
type FieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// DraftResponse estado de un formulario: envío en curso y último borrador no enviado.
type DraftResponse struct {
	Form     string `json:"form"`
	InFlight bool   `json:"in_flight"`
	Draft    any    `json:"draft,omitempty"`
}

// AttachmentInput imagen enviada en un formulario (contenido en base64).
type AttachmentInput struct {
	Filename    string `json:"filename" validate:"required,max=255"`
	ContentType string `json:"content_type" validate:"required,oneof=image/jpeg image/png image/webp image/gif"`
	Data        string `json:"data" validate:"required,base64"`
}

// Decode convierte la entrada en un ports.Attachment.
func (a *AttachmentInput) Decode() (ports.Attachment, error) {
	raw, err := base64.StdEncoding.DecodeString(a.Data)
	if err != nil {
		return ports.Attachment{}, fmt.Errorf("%w: data no es base64", domain.ErrValidation)
	}
	return ports.Attachment{Filename: a.Filename, ContentType: a.ContentType, Data: raw}, nil
}
