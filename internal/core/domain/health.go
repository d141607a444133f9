package domain

type Health string

const (
	HealthGreen  Health = "green"
	HealthYellow Health = "yellow"
	HealthRed    Health = "red"
)

// GreenCount counts how many of the three compliance flags are exactly
// true. A nil flag never counts, so an all-nil triple scores zero.
func GreenCount(fields StatusFields) int {
	count := 0
	for _, flag := range []*bool{fields.IsOnScope, fields.IsOnTime, fields.IsOnBudget} {
		if flag != nil && *flag {
			count++
		}
	}
	return count
}

// ClassifyHealth grades a status triple: green for all three flags
// true, yellow for two, red otherwise. A project without any status row
// grades red through the same function; callers separate "no status"
// from "red status" by the presence of a last-updated timestamp, not by
// the grade.
func ClassifyHealth(fields StatusFields) Health {
	switch green := GreenCount(fields); {
	case green >= 3:
		return HealthGreen
	case green == 2:
		return HealthYellow
	default:
		return HealthRed
	}
}

// HealthLabel maps a grade to its report label.
func HealthLabel(health Health) string {
	switch health {
	case HealthGreen:
		return "Healthy"
	case HealthYellow:
		return "At Risk"
	case HealthRed:
		return "Critical"
	default:
		return "Unknown"
	}
}
