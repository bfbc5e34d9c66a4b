package domain

import "time"

// DefaultSLADays is the fallback resolution window for categories without an
// explicit SLA entry. Unlike routing, SLA lookup degrades gracefully: a
// missing window must not block submission or display.
const DefaultSLADays = 7

// SLAWindow holds the resolution windows for one category. EmergencyHours of
// zero means immediate: the deadline is the submission instant itself.
type SLAWindow struct {
	Category       string `json:"category"`
	StandardDays   int    `json:"standardDays"`
	EmergencyHours int    `json:"emergencyHours"`
}

var slaByCategory = map[string]SLAWindow{
	CategoryWaterSupply: {Category: CategoryWaterSupply, StandardDays: 7, EmergencyHours: 24},
	CategoryElectricity: {Category: CategoryElectricity, StandardDays: 5, EmergencyHours: 12},
	CategoryRoads:       {Category: CategoryRoads, StandardDays: 15, EmergencyHours: 48},
	CategorySanitation:  {Category: CategorySanitation, StandardDays: 3, EmergencyHours: 12},
	CategoryTransport:   {Category: CategoryTransport, StandardDays: 10, EmergencyHours: 24},
	CategoryHealthcare:  {Category: CategoryHealthcare, StandardDays: 5, EmergencyHours: 0},
	CategoryLawAndOrder: {Category: CategoryLawAndOrder, StandardDays: 7, EmergencyHours: 0},
}

// SLASchedule returns the per-category windows in category display order,
// including the default entries for categories without an explicit window.
func SLASchedule() []SLAWindow {
	schedule := make([]SLAWindow, 0, len(categories))
	for _, category := range categories {
		if w, ok := slaByCategory[category]; ok {
			schedule = append(schedule, w)
			continue
		}
		schedule = append(schedule, SLAWindow{
			Category:       category,
			StandardDays:   DefaultSLADays,
			EmergencyHours: DefaultSLADays * 24,
		})
	}
	return schedule
}

// ComputeDeadline derives the SLA window for a new complaint. The returned
// slaDays is always expressed in whole days (hour windows round up) so that
// day-granular comparisons on the dashboard stay consistent; the deadline
// itself keeps hour precision for emergency windows.
func ComputeDeadline(category string, submittedAt time.Time, emergency bool) (slaDays int, deadline time.Time) {
	window, ok := slaByCategory[category]
	if !ok {
		window = SLAWindow{StandardDays: DefaultSLADays, EmergencyHours: DefaultSLADays * 24}
	}

	if emergency {
		deadline = submittedAt.Add(time.Duration(window.EmergencyHours) * time.Hour)
		slaDays = (window.EmergencyHours + 23) / 24
		return slaDays, deadline
	}

	return window.StandardDays, submittedAt.AddDate(0, 0, window.StandardDays)
}
