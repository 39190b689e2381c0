package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	clockLayout = "15:04"
	dateLayout  = "2006-01-02"
)

// Attendance is an opening slot on a weekday, From inclusive and To exclusive
type Attendance struct {
	Weekday string `mapstructure:"weekday" json:"weekday" yaml:"weekday" validate:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	From    string `mapstructure:"from" json:"from" yaml:"from" validate:"required"`
	To      string `mapstructure:"to" json:"to" yaml:"to" validate:"required"`
}

// WorkingCalendar gates when reminders may be sent. No attendances means always open.
type WorkingCalendar struct {
	Name        string       `mapstructure:"name" json:"name" yaml:"name"`
	Timezone    string       `mapstructure:"timezone" json:"timezone" yaml:"timezone"`
	Attendances []Attendance `mapstructure:"attendances" json:"attendances" yaml:"attendances" validate:"omitempty,dive"`
	// Holidays are closed dates formatted as 2006-01-02 in the calendar timezone
	Holidays []string `mapstructure:"holidays" json:"holidays" yaml:"holidays"`
}

func (c WorkingCalendar) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

func (c WorkingCalendar) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrCalendarInvalid, err)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("%w: timezone %q: %v", ErrCalendarInvalid, c.Timezone, err)
	}
	for _, a := range c.Attendances {
		from, to, err := a.window()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCalendarInvalid, err)
		}
		if from >= to {
			return fmt.Errorf("%w: attendance on %s ends before it starts", ErrCalendarInvalid, a.Weekday)
		}
	}
	for _, h := range c.Holidays {
		if _, err := time.Parse(dateLayout, h); err != nil {
			return fmt.Errorf("%w: holiday %q: %v", ErrCalendarInvalid, h, err)
		}
	}
	return nil
}

// IsWorkingTime reports whether t falls inside an attendance slot and outside holidays
func (c WorkingCalendar) IsWorkingTime(t time.Time) (bool, error) {
	loc, err := c.Location()
	if err != nil {
		return false, fmt.Errorf("%w: timezone %q: %v", ErrCalendarInvalid, c.Timezone, err)
	}
	local := t.In(loc)

	date := local.Format(dateLayout)
	for _, h := range c.Holidays {
		if h == date {
			return false, nil
		}
	}

	if len(c.Attendances) == 0 {
		return true, nil
	}

	minute := local.Hour()*60 + local.Minute()
	weekday := local.Weekday().String()
	for _, a := range c.Attendances {
		if !strings.EqualFold(a.Weekday, weekday) {
			continue
		}
		from, to, err := a.window()
		if err != nil {
			return false, fmt.Errorf("%w: %v", ErrCalendarInvalid, err)
		}
		if minute >= from && minute < to {
			return true, nil
		}
	}
	return false, nil
}

func (a Attendance) window() (int, int, error) {
	from, err := minuteOfDay(a.From)
	if err != nil {
		return 0, 0, err
	}
	to, err := minuteOfDay(a.To)
	if err != nil {
		return 0, 0, err
	}
	return from, to, nil
}

func minuteOfDay(clock string) (int, error) {
	if clock == "24:00" {
		return 24 * 60, nil
	}
	t, err := time.Parse(clockLayout, clock)
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q, expected HH:MM", clock)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// DefaultWorkingCalendar is Monday to Friday, 08:00 to 17:00 UTC
func DefaultWorkingCalendar() WorkingCalendar {
	days := []string{"monday", "tuesday", "wednesday", "thursday", "friday"}
	attendances := make([]Attendance, 0, len(days))
	for _, d := range days {
		attendances = append(attendances, Attendance{Weekday: d, From: "08:00", To: "17:00"})
	}
	return WorkingCalendar{Name: "default", Timezone: "UTC", Attendances: attendances}
}
