package catalog

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestDefaultCatalogIsConsistent(t *testing.T) {
	c := Default()
	if c.Len() != 5 {
		t.Fatalf("expected 5 articles, got %d", c.Len())
	}
	for _, a := range c.Articles() {
		if !c.HasCategory(a.Category) {
			t.Errorf("article %s references unknown category %q", a.ID, a.Category)
		}
		if len(a.SolutionSteps) == 0 {
			t.Errorf("article %s has no solution steps", a.ID)
		}
	}
}

func TestNewRejectsUnknownCategory(t *testing.T) {
	articles := []Article{{ID: "x", Title: "X", Category: "printers", Urgency: UrgencyLow}}
	_, err := New(articles, DefaultCategories)
	if !errors.Is(err, ErrInconsistent) {
		t.Fatalf("expected ErrInconsistent, got %v", err)
	}
}

func TestNewRejectsDuplicateIDs(t *testing.T) {
	articles := []Article{
		{ID: "a", Category: CategoryHardware, Urgency: UrgencyLow},
		{ID: "a", Category: CategorySoftware, Urgency: UrgencyLow},
	}
	if _, err := New(articles, DefaultCategories); !errors.Is(err, ErrInconsistent) {
		t.Fatalf("expected ErrInconsistent, got %v", err)
	}
}

func TestNewAllowsEmptyCategory(t *testing.T) {
	articles := []Article{{ID: "a", Category: CategoryHardware, Urgency: UrgencyLow}}
	c, err := New(articles, DefaultCategories)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	counts := c.CountByCategory()
	if counts[CategoryWebApps] != 0 {
		t.Errorf("expected zero web-apps articles, got %d", counts[CategoryWebApps])
	}
	if counts[CategoryHardware] != 1 {
		t.Errorf("expected one hardware article, got %d", counts[CategoryHardware])
	}
}

func TestArticlesReturnsCopies(t *testing.T) {
	c := Default()
	arts := c.Articles()
	arts[0].Title = "mutated"
	arts[0].SolutionSteps[0] = "mutated"

	a, ok := c.Article(arts[0].ID)
	if !ok {
		t.Fatal("article not found")
	}
	if a.Title == "mutated" || a.SolutionSteps[0] == "mutated" {
		t.Error("catalog was mutated through a returned article")
	}
}

func TestNumberedStepsPreserveOrder(t *testing.T) {
	a, _ := Default().Article("4")
	steps := a.NumberedSteps()
	if len(steps) != len(a.SolutionSteps) {
		t.Fatalf("expected %d steps, got %d", len(a.SolutionSteps), len(steps))
	}
	for i, s := range steps {
		if s.Number != i+1 {
			t.Errorf("step %d numbered %d", i, s.Number)
		}
		if s.Text != a.SolutionSteps[i] {
			t.Errorf("step %d text = %q, want %q", i, s.Text, a.SolutionSteps[i])
		}
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"", "", true},
		{"hardware", CategoryHardware, true},
		{"Conectividad", CategoryConnectivity, true},
		{"cuentas y accesos", CategoryAccounts, true},
		{"WEB-APPS", CategoryWebApps, true},
		{"printers", "", false},
	}
	for _, tt := range tests {
		got, err := ParseCategory(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseCategory(%q) error = %v, want ok=%v", tt.in, err, tt.ok)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCategory(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUrgencyOrderingAndText(t *testing.T) {
	if !(UrgencyLow < UrgencyMedium && UrgencyMedium < UrgencyHigh && UrgencyHigh < UrgencyCritical) {
		t.Fatal("urgency levels are not ordered")
	}
	if UrgencyCritical.Label() != "Crítico" {
		t.Errorf("unexpected label %q", UrgencyCritical.Label())
	}

	data, err := json.Marshal(struct {
		U Urgency `json:"u"`
	}{UrgencyHigh})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"u":"high"}` {
		t.Errorf("unexpected JSON %s", data)
	}

	var u Urgency
	if err := u.UnmarshalText([]byte("Bajo")); err != nil || u != UrgencyLow {
		t.Errorf("UnmarshalText(Bajo) = %v, %v", u, err)
	}
}

func TestMarkdownNumbersSteps(t *testing.T) {
	a, _ := Default().Article("5")
	md := a.Markdown()
	if !strings.HasPrefix(md, "# Restablecimiento de Contraseña de Dominio") {
		t.Errorf("unexpected heading: %q", strings.SplitN(md, "\n", 2)[0])
	}
	first := strings.Index(md, "1. Ingresar al portal")
	last := strings.Index(md, "5. Actualizar la contraseña")
	if first < 0 || last < 0 || first > last {
		t.Errorf("steps missing or out of order in markdown:\n%s", md)
	}
	if !strings.Contains(md, "Seguridad Informática - ext 911") {
		t.Error("expected escalation contact in markdown")
	}
}
