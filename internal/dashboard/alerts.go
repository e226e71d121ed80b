package dashboard

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"codeberg.org/mutker/procmon/internal/parameter"
	"codeberg.org/mutker/procmon/internal/tolerance"
)

// VarianceThreshold is the distance from 100 percent of target, in
// percentage points, at which an in-band reading raises a variance notice.
const VarianceThreshold = 1.5

func severityRank(s Severity) int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// buildAlerts derives the alert list from evaluated KPI cards, most severe
// first. In-band readings without notable variance are folded into a
// single stability notice.
func buildAlerts(catalog *parameter.Catalog, cards []Card) ([]Alert, error) {
	var (
		alerts []Alert
		stable []string
	)

	for _, card := range cards {
		cfg, err := catalog.Get(card.Parameter)
		if err != nil {
			return nil, err
		}

		current := formatValue(card.Current, card.Unit)
		target := formatValue(card.Target, card.Unit)

		switch card.Status {
		case tolerance.StatusCritical:
			alerts = append(alerts, Alert{
				Parameter: card.Parameter,
				Severity:  SeverityCritical,
				Title:     card.Name + " Critical",
				Message: fmt.Sprintf("%s at %s, outside critical range %s to %s (target %s)",
					card.Name, current,
					formatValue(cfg.Band.CriticalLower, card.Unit),
					formatValue(cfg.Band.CriticalUpper, card.Unit), target),
			})
		case tolerance.StatusHigh:
			alerts = append(alerts, Alert{
				Parameter: card.Parameter,
				Severity:  SeverityWarning,
				Title:     card.Name + " Above Target",
				Message:   fmt.Sprintf("%s at %s (target %s)", card.Name, current, target),
			})
		case tolerance.StatusLow:
			alerts = append(alerts, Alert{
				Parameter: card.Parameter,
				Severity:  SeverityWarning,
				Title:     card.Name + " Below Target",
				Message:   fmt.Sprintf("%s at %s (target %s)", card.Name, current, target),
			})
		default:
			variance := card.PercentOfTarget - 100
			if math.Abs(variance) < VarianceThreshold {
				stable = append(stable, card.Name)
				continue
			}

			direction := "above"
			if variance < 0 {
				direction = "below"
			}
			alerts = append(alerts, Alert{
				Parameter: card.Parameter,
				Severity:  SeverityInfo,
				Title:     card.Name + " Variance",
				Message: fmt.Sprintf("%s %.1f%% %s target (%s vs %s)",
					card.Name, math.Abs(variance), direction, current, target),
			})
		}
	}

	if len(stable) > 0 {
		title := "Parameters Stable"
		if len(stable) == len(cards) {
			title = "All Parameters Stable"
		}
		alerts = append(alerts, Alert{
			Severity: SeverityOK,
			Title:    title,
			Message:  joinNames(stable) + " within acceptable range",
		})
	}

	for i := range alerts {
		alerts[i].Tone = severityTone(alerts[i].Severity)
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return severityRank(alerts[i].Severity) > severityRank(alerts[j].Severity)
	})

	return alerts, nil
}

func severityTone(s Severity) Tone {
	switch s {
	case SeverityCritical:
		return ToneRed
	case SeverityWarning:
		return ToneOrange
	case SeverityInfo:
		return ToneBlue
	default:
		return ToneGreen
	}
}

func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}
