// Package report implements the incident-report form. Submissions are
// validated and acknowledged; their contents are not stored or forwarded.
package report

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nextgen-ti/kbportal/internal/catalog"
)

// SuccessMessage is the acknowledgment shown after a valid submission.
const SuccessMessage = "Reporte enviado con éxito. Nuestro equipo se pondrá en contacto pronto."

// IncidentType is one of the fixed options of the form's type selector.
type IncidentType string

const (
	TypeHardware     IncidentType = "Hardware / Equipos"
	TypeSoftware     IncidentType = "Software / Aplicaciones"
	TypeConnectivity IncidentType = "Conectividad / Red"
	TypeAccess       IncidentType = "Accesos / Contraseñas"
	TypeOther        IncidentType = "Otro"
)

// IncidentTypes lists the options in display order. The first is the default.
var IncidentTypes = []IncidentType{TypeHardware, TypeSoftware, TypeConnectivity, TypeAccess, TypeOther}

// Urgencies lists the urgency levels the form offers.
var Urgencies = []catalog.Urgency{catalog.UrgencyLow, catalog.UrgencyMedium, catalog.UrgencyHigh}

// Form is a submitted incident report.
type Form struct {
	FullName    string          `json:"full_name"`
	Email       string          `json:"email"`
	Type        IncidentType    `json:"type"`
	Subject     string          `json:"subject"`
	Description string          `json:"description"`
	Urgency     catalog.Urgency `json:"urgency"`
}

// FieldError describes a single invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every field error of a form.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "invalid report: " + strings.Join(parts, "; ")
}

// Message returns the error for a field, or "".
func (e *ValidationError) Message(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

// WithDefaults fills the selector defaults: first incident type, low urgency.
func (f Form) WithDefaults() Form {
	if f.Type == "" {
		f.Type = IncidentTypes[0]
	}
	if f.Urgency == 0 {
		f.Urgency = catalog.UrgencyLow
	}
	return f
}

// Validate checks required fields, the email format and the fixed options.
func (f Form) Validate() error {
	var errs []FieldError
	add := func(field, msg string) { errs = append(errs, FieldError{Field: field, Message: msg}) }

	if strings.TrimSpace(f.FullName) == "" {
		add("full_name", "El nombre completo es obligatorio.")
	}
	switch email := strings.TrimSpace(f.Email); {
	case email == "":
		add("email", "El correo electrónico es obligatorio.")
	case !validEmail(email):
		add("email", "Ingresa un correo electrónico válido.")
	}
	if !validType(f.Type) {
		add("type", fmt.Sprintf("Tipo de incidencia desconocido: %q.", f.Type))
	}
	if strings.TrimSpace(f.Subject) == "" {
		add("subject", "El asunto es obligatorio.")
	}
	if strings.TrimSpace(f.Description) == "" {
		add("description", "La descripción es obligatoria.")
	}
	if f.Urgency < catalog.UrgencyLow || f.Urgency > catalog.UrgencyHigh {
		add("urgency", "Selecciona una urgencia: Bajo, Medio o Alto.")
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// validEmail accepts a bare address of the form local@domain.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndex(s, "@")
	return at > 0 && at < len(s)-1
}

func validType(t IncidentType) bool {
	for _, known := range IncidentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseIncidentType matches an option case-insensitively.
func ParseIncidentType(s string) (IncidentType, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	for _, t := range IncidentTypes {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown incident type %q", s)
}

// Acknowledgment confirms a valid submission to the user.
type Acknowledgment struct {
	Reference string          `json:"reference"`
	Message   string          `json:"message"`
	Type      IncidentType    `json:"type"`
	Urgency   catalog.Urgency `json:"urgency"`
	At        time.Time       `json:"at"`
}

// Submit validates the form and returns the acknowledgment. The form
// contents go nowhere; only the acknowledgment leaves this function.
func Submit(f Form) (Acknowledgment, error) {
	f = f.WithDefaults()
	if err := f.Validate(); err != nil {
		return Acknowledgment{}, err
	}
	return Acknowledgment{
		Reference: "INC-" + strings.ToUpper(uuid.New().String()[:8]),
		Message:   SuccessMessage,
		Type:      f.Type,
		Urgency:   f.Urgency,
		At:        time.Now().UTC(),
	}, nil
}
