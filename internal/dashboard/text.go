package dashboard

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

const gaugeWidth = 20

// WriteText prints the dashboard for terminals, sections in the same
// order as the web view.
func (d Dashboard) WriteText(w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "READINESS %s %s\n", gaugeBar(d.Readiness.Fraction), d.Readiness.Label)
	if d.Readiness.Caption != "" {
		fmt.Fprintf(&b, "  %s\n", d.Readiness.Caption)
	}

	b.WriteString("\nSKILL GAP\n")
	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	for _, slice := range d.SkillGap.Distribution {
		fmt.Fprintf(tw, "  %s\t%d\t%s\n", slice.Label, slice.Count, strings.Join(d.skillsFor(slice.Label), ", "))
	}
	tw.Flush()

	b.WriteString("\nCAREER PATHS\n")
	for _, p := range d.Paths {
		marker := " "
		if p.Emphasis == EmphasisHigh {
			marker = "*"
		}
		fmt.Fprintf(&b, " %s %s (%s, readiness %s)\n", marker, p.Name, p.ConfidenceLabel, percent(p.ReadinessLevel))
		fmt.Fprintf(&b, "    %s\n", p.Description)
		fmt.Fprintf(&b, "    Trade-offs: %s\n", p.TradeOffs)
	}

	b.WriteString("\nACTION PLAN\n")
	for _, e := range d.Timeline {
		fmt.Fprintf(&b, "  %s: %s\n", e.Label, e.Focus)
		for _, task := range e.Tasks {
			fmt.Fprintf(&b, "    - %s\n", task)
		}
	}

	b.WriteString("\nPROJECTS\n")
	for _, p := range d.Projects {
		fmt.Fprintf(&b, "  %s [%s]\n", p.Name, strings.Join(p.Tags, ", "))
		fmt.Fprintf(&b, "    Why: %s\n", p.Relevance)
		fmt.Fprintf(&b, "    GitHub: %s\n", p.GithubStrategy)
	}

	if d.Advice != "" {
		fmt.Fprintf(&b, "\nADVICE\n  %s\n", d.Advice)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (d Dashboard) skillsFor(label string) []string {
	switch label {
	case "Strong":
		return d.SkillGap.Strong
	case "Partial":
		return d.SkillGap.Partial
	default:
		return d.SkillGap.Missing
	}
}

// gaugeBar clamps only for drawing; the gauge value itself is untouched.
func gaugeBar(fraction float64) string {
	filled := int(fraction*gaugeWidth + 0.5)
	if filled < 0 {
		filled = 0
	}
	if filled > gaugeWidth {
		filled = gaugeWidth
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", gaugeWidth-filled) + "]"
}
