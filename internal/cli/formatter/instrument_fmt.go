package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/psyche/internal/domain"
)

func FormatInstrumentList(instruments []*domain.Instrument) string {
	headers := []string{"ID", "TITLE", "DOMAIN", "ITEMS", "POLICY"}
	rows := make([][]string, 0, len(instruments))
	for _, inst := range instruments {
		rows = append(rows, []string{
			Bold(inst.ID),
			inst.Title,
			StylePurple.Render(inst.Domain),
			fmt.Sprintf("%d", len(inst.Questions)),
			Dim(string(inst.Policy.Kind)),
		})
	}
	return RenderTable(headers, rows)
}

// FormatInstrument shows one definition with its questions in order.
func FormatInstrument(inst *domain.Instrument) string {
	var b strings.Builder
	b.WriteString(Bold(inst.Title) + "  " + Dim(inst.ID) + "\n")
	if inst.Description != "" {
		b.WriteString(strings.TrimSpace(inst.Description) + "\n")
	}
	b.WriteString(fmt.Sprintf("\nScale %s..%s, %s\n", Score(inst.Scale.Min), Score(inst.Scale.Max), Dim(string(inst.EffectivePolarity()))))

	b.WriteString("\n" + Header("Questions") + "\n")
	for i, q := range inst.Questions {
		marker := ""
		if q.Reverse {
			marker = Dim(" (reversed)")
		}
		b.WriteString(fmt.Sprintf("%2d. %s%s %s\n", i+1, q.Text, marker, Dim("["+q.ID+"]")))
	}

	if inst.Policy.Kind == domain.PolicySeverityTier && len(inst.Policy.Tiers) > 0 {
		b.WriteString("\n" + Header("Tiers") + "\n")
		for i, tier := range inst.Policy.Tiers {
			from := Score(inst.Scale.Min)
			if i > 0 && i-1 < len(inst.Policy.Cutoffs) {
				from = Score(inst.Policy.Cutoffs[i-1])
			}
			label := tier.Label
			if label == "" {
				label = tier.ID
			}
			b.WriteString(fmt.Sprintf("  ≥ %-5s %s\n", from, label))
		}
	}
	return b.String()
}
