package catalog

import (
	"fmt"
	"strings"
)

// Category partitions articles by technical domain.
type Category string

const (
	CategoryHardware     Category = "hardware"
	CategorySoftware     Category = "software"
	CategoryConnectivity Category = "connectivity"
	CategoryAccounts     Category = "accounts-access"
	CategoryWebApps      Category = "web-apps"
)

var categoryLabels = map[Category]string{
	CategoryHardware:     "Hardware",
	CategorySoftware:     "Software",
	CategoryConnectivity: "Conectividad",
	CategoryAccounts:     "Cuentas y Accesos",
	CategoryWebApps:      "Aplicaciones Web",
}

// Label returns the display name shown in the category list.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// ParseCategory accepts either the identifier or the display label,
// case-insensitively. The empty string parses to the empty category ("all").
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	for c, label := range categoryLabels {
		if strings.EqualFold(s, string(c)) || strings.EqualFold(s, label) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Urgency is an ordered severity label. It is display-only.
type Urgency int

const (
	UrgencyLow Urgency = iota + 1
	UrgencyMedium
	UrgencyHigh
	UrgencyCritical
)

var urgencyNames = [...]string{"", "low", "medium", "high", "critical"}
var urgencyLabels = [...]string{"", "Bajo", "Medio", "Alto", "Crítico"}

// Valid reports whether u is one of the defined levels.
func (u Urgency) Valid() bool { return u >= UrgencyLow && u <= UrgencyCritical }

func (u Urgency) String() string {
	if !u.Valid() {
		return fmt.Sprintf("urgency(%d)", int(u))
	}
	return urgencyNames[u]
}

// Label returns the Spanish display label.
func (u Urgency) Label() string {
	if !u.Valid() {
		return ""
	}
	return urgencyLabels[u]
}

// ParseUrgency accepts the identifier or the display label.
func ParseUrgency(s string) (Urgency, error) {
	s = strings.TrimSpace(s)
	for i := UrgencyLow; i <= UrgencyCritical; i++ {
		if strings.EqualFold(s, urgencyNames[i]) || strings.EqualFold(s, urgencyLabels[i]) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown urgency %q", s)
}

func (u Urgency) MarshalText() ([]byte, error) {
	if !u.Valid() {
		return nil, fmt.Errorf("invalid urgency %d", int(u))
	}
	return []byte(u.String()), nil
}

func (u *Urgency) UnmarshalText(b []byte) error {
	parsed, err := ParseUrgency(string(b))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// Article is a single knowledge-base entry.
type Article struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Category          Category `json:"category"`
	Urgency           Urgency  `json:"urgency"`
	SolutionSteps     []string `json:"solution_steps"`
	TimeEstimate      string   `json:"time_estimate"`
	Prerequisites     []string `json:"prerequisites"`
	Troubleshooting   []string `json:"troubleshooting"`
	ContactEscalation string   `json:"contact_escalation"`
}

// Step is a solution step with its 1-based position.
type Step struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// NumberedSteps returns the solution steps in order, numbered from 1.
func (a Article) NumberedSteps() []Step {
	steps := make([]Step, len(a.SolutionSteps))
	for i, s := range a.SolutionSteps {
		steps[i] = Step{Number: i + 1, Text: s}
	}
	return steps
}

func (a Article) clone() Article {
	a.SolutionSteps = append([]string(nil), a.SolutionSteps...)
	a.Prerequisites = append([]string(nil), a.Prerequisites...)
	a.Troubleshooting = append([]string(nil), a.Troubleshooting...)
	return a
}
