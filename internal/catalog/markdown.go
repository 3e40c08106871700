package catalog

import (
	"fmt"
	"strings"
)

// Markdown renders the article as a Markdown document. Solution steps become
// an ordered list so their execution order survives rendering.
func (a Article) Markdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", a.Title)
	fmt.Fprintf(&b, "**Categoría:** %s · **Urgencia:** %s\n\n", a.Category.Label(), a.Urgency.Label())
	fmt.Fprintf(&b, "%s\n\n", a.Description)

	if a.TimeEstimate != "" {
		fmt.Fprintf(&b, "## Tiempo Estimado\n\n%s\n\n", a.TimeEstimate)
	}

	if len(a.Prerequisites) > 0 {
		b.WriteString("## Prerrequisitos\n\n")
		for _, p := range a.Prerequisites {
			fmt.Fprintf(&b, "- %s\n", p)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Solución Paso a Paso\n\n")
	for _, s := range a.NumberedSteps() {
		fmt.Fprintf(&b, "%d. %s\n", s.Number, s.Text)
	}
	b.WriteString("\n")

	if len(a.Troubleshooting) > 0 {
		b.WriteString("## Solución de Problemas\n\n")
		for _, t := range a.Troubleshooting {
			fmt.Fprintf(&b, "- %s\n", t)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Contacto de Escalamiento\n\n%s\n", a.ContactEscalation)
	return b.String()
}
