package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/goto/signoff/domain"
)

func TestWorkingCalendar_IsWorkingTime(t *testing.T) {
	calendar := domain.WorkingCalendar{
		Timezone: "Asia/Jakarta",
		Attendances: []domain.Attendance{
			{Weekday: "monday", From: "08:00", To: "12:00"},
			{Weekday: "monday", From: "13:00", To: "17:00"},
		},
		Holidays: []string{"2024-03-11"},
	}
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	assert.NoError(t, err)

	testCases := []struct {
		name     string
		at       time.Time
		expected bool
	}{
		{"inside morning slot", time.Date(2024, 3, 4, 9, 0, 0, 0, jakarta), true},
		{"lunch break", time.Date(2024, 3, 4, 12, 30, 0, 0, jakarta), false},
		{"slot end is exclusive", time.Date(2024, 3, 4, 17, 0, 0, 0, jakarta), false},
		{"utc instant inside local slot", time.Date(2024, 3, 4, 2, 0, 0, 0, time.UTC), true},
		{"tuesday has no slot", time.Date(2024, 3, 5, 9, 0, 0, 0, jakarta), false},
		{"holiday", time.Date(2024, 3, 11, 9, 0, 0, 0, jakarta), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := calendar.IsWorkingTime(tc.at)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}

	t.Run("calendar without attendances is always open", func(t *testing.T) {
		open, err := domain.WorkingCalendar{}.IsWorkingTime(time.Date(2024, 3, 9, 3, 0, 0, 0, time.UTC))
		assert.NoError(t, err)
		assert.True(t, open)
	})
}

func TestWorkingCalendar_Validate(t *testing.T) {
	assert.NoError(t, domain.DefaultWorkingCalendar().Validate())
	assert.ErrorIs(t, domain.WorkingCalendar{Timezone: "Mars/Olympus"}.Validate(), domain.ErrCalendarInvalid)
	assert.ErrorIs(t, domain.WorkingCalendar{
		Attendances: []domain.Attendance{{Weekday: "monday", From: "17:00", To: "08:00"}},
	}.Validate(), domain.ErrCalendarInvalid)
	assert.ErrorIs(t, domain.WorkingCalendar{
		Attendances: []domain.Attendance{{Weekday: "someday", From: "08:00", To: "17:00"}},
	}.Validate(), domain.ErrCalendarInvalid)
	assert.ErrorIs(t, domain.WorkingCalendar{Holidays: []string{"11/03/2024"}}.Validate(), domain.ErrCalendarInvalid)
}
