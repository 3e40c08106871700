package report

import (
	"errors"
	"strings"
	"testing"

	"github.com/nextgen-ti/kbportal/internal/catalog"
)

func validForm() Form {
	return Form{
		FullName:    "Juan Pérez",
		Email:       "juan@empresa.com",
		Type:        TypeConnectivity,
		Subject:     "VPN no conecta",
		Description: "Desde ayer el cliente rechaza el token.",
		Urgency:     catalog.UrgencyMedium,
	}
}

func TestSubmitValid(t *testing.T) {
	ack, err := Submit(validForm())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if ack.Message != SuccessMessage {
		t.Errorf("unexpected message %q", ack.Message)
	}
	if !strings.HasPrefix(ack.Reference, "INC-") || len(ack.Reference) != 12 {
		t.Errorf("unexpected reference %q", ack.Reference)
	}
	if ack.Urgency != catalog.UrgencyMedium {
		t.Errorf("unexpected urgency %v", ack.Urgency)
	}
}

func TestSubmitDefaults(t *testing.T) {
	f := validForm()
	f.Type = ""
	f.Urgency = 0

	ack, err := Submit(f)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if ack.Type != TypeHardware {
		t.Errorf("expected default type %q, got %q", TypeHardware, ack.Type)
	}
	if ack.Urgency != catalog.UrgencyLow {
		t.Errorf("expected default urgency low, got %v", ack.Urgency)
	}
}

func TestValidateFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Form)
		field  string
	}{
		{"missing name", func(f *Form) { f.FullName = "  " }, "full_name"},
		{"missing email", func(f *Form) { f.Email = "" }, "email"},
		{"malformed email", func(f *Form) { f.Email = "juan.empresa.com" }, "email"},
		{"display-name email", func(f *Form) { f.Email = "Juan <juan@empresa.com>" }, "email"},
		{"missing subject", func(f *Form) { f.Subject = "" }, "subject"},
		{"missing description", func(f *Form) { f.Description = "\n" }, "description"},
		{"unknown type", func(f *Form) { f.Type = "Impresoras" }, "type"},
		{"critical urgency not offered", func(f *Form) { f.Urgency = catalog.UrgencyCritical }, "urgency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)

			_, err := Submit(f)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Message(tt.field) == "" {
				t.Errorf("expected error on %s, got %v", tt.field, verr)
			}
			if len(verr.Fields) != 1 {
				t.Errorf("expected exactly one field error, got %v", verr.Fields)
			}
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	err := Form{}.WithDefaults().Validate()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"full_name", "email", "subject", "description"} {
		if verr.Message(field) == "" {
			t.Errorf("missing error for %s", field)
		}
	}
	if !strings.Contains(verr.Error(), "email") {
		t.Errorf("error string should mention email: %q", verr.Error())
	}
}

func TestParseIncidentType(t *testing.T) {
	got, err := ParseIncidentType("otro")
	if err != nil || got != TypeOther {
		t.Errorf("ParseIncidentType(otro) = %q, %v", got, err)
	}
	if _, err := ParseIncidentType("printers"); err == nil {
		t.Error("expected error for unknown type")
	}
}
