package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeDeadline(t *testing.T) {
	submitted := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		category     string
		emergency    bool
		wantDays     int
		wantDeadline time.Time
	}{
		{
			name:         "water supply standard",
			category:     CategoryWaterSupply,
			wantDays:     7,
			wantDeadline: submitted.AddDate(0, 0, 7),
		},
		{
			name:         "water supply emergency",
			category:     CategoryWaterSupply,
			emergency:    true,
			wantDays:     1,
			wantDeadline: submitted.Add(24 * time.Hour),
		},
		{
			name:         "roads standard has the longest window",
			category:     CategoryRoads,
			wantDays:     15,
			wantDeadline: submitted.AddDate(0, 0, 15),
		},
		{
			name:         "roads emergency rounds 48h up to 2 days",
			category:     CategoryRoads,
			emergency:    true,
			wantDays:     2,
			wantDeadline: submitted.Add(48 * time.Hour),
		},
		{
			name:         "electricity emergency rounds 12h up to 1 day",
			category:     CategoryElectricity,
			emergency:    true,
			wantDays:     1,
			wantDeadline: submitted.Add(12 * time.Hour),
		},
		{
			name:         "healthcare emergency is immediate",
			category:     CategoryHealthcare,
			emergency:    true,
			wantDays:     0,
			wantDeadline: submitted,
		},
		{
			name:         "category without explicit window gets default",
			category:     CategoryEducation,
			wantDays:     DefaultSLADays,
			wantDeadline: submitted.AddDate(0, 0, DefaultSLADays),
		},
		{
			name:         "unknown category gets default rather than failing",
			category:     "Parking",
			wantDays:     DefaultSLADays,
			wantDeadline: submitted.AddDate(0, 0, DefaultSLADays),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, deadline := ComputeDeadline(tt.category, submitted, tt.emergency)

			assert.Equal(t, tt.wantDays, days)
			assert.Equal(t, tt.wantDeadline, deadline)
		})
	}
}

func TestSLAScheduleCoversEveryCategory(t *testing.T) {
	schedule := SLASchedule()

	assert.Len(t, schedule, len(Categories()))
	for i, category := range Categories() {
		assert.Equal(t, category, schedule[i].Category)
		assert.Greater(t, schedule[i].StandardDays, 0)
	}
}

func TestSLAScheduleDefaults(t *testing.T) {
	for _, w := range SLASchedule() {
		if w.Category == CategoryPropertyLand {
			assert.Equal(t, DefaultSLADays, w.StandardDays)
			assert.Equal(t, DefaultSLADays*24, w.EmergencyHours)
			return
		}
	}
	t.Fatal("property & land missing from schedule")
}
