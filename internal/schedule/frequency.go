// Package schedule answers due-date questions for habit frequencies.
// All functions are pure and operate on whole UTC calendar days.
package schedule

import (
	"time"

	"github.com/pamplonajp45-eng/jpdev-habit-tracker/pkg/entity"
)

// DayOf truncates a moment to its UTC calendar day
func DayOf(t time.Time) time.Time {
	utc := t.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
}

// Interval extracts the day interval of a custom-frequency habit.
// Missing or non-positive data degrades to 1
func Interval(habit *entity.Habit) int {
	if len(habit.FrequencyData) == 0 || habit.FrequencyData[0] < 1 {
		return 1
	}
	return habit.FrequencyData[0]
}

// IsDue reports whether the habit's schedule requires a completion on date.
// A weekly habit with an empty weekday set behaves as daily
func IsDue(habit *entity.Habit, date time.Time) bool {
	date = DayOf(date)
	switch habit.FrequencyType {
	case entity.FrequencyWeekly:
		if len(habit.FrequencyData) == 0 {
			return true
		}
		return weekdayIn(date.Weekday(), habit.FrequencyData)
	case entity.FrequencyCustom:
		days := int(date.Sub(DayOf(habit.CreatedAt)).Hours() / 24)
		return days%Interval(habit) == 0
	default:
		return true
	}
}

// PreviousDueDate returns the most recent scheduled day strictly before date
func PreviousDueDate(habit *entity.Habit, date time.Time) time.Time {
	date = DayOf(date)
	switch habit.FrequencyType {
	case entity.FrequencyWeekly:
		if len(habit.FrequencyData) == 0 {
			return date.AddDate(0, 0, -1)
		}
		for step := 1; step <= 7; step++ {
			prev := date.AddDate(0, 0, -step)
			if weekdayIn(prev.Weekday(), habit.FrequencyData) {
				return prev
			}
		}
		// Set holds no valid weekday index
		return date.AddDate(0, 0, -7)
	case entity.FrequencyCustom:
		return date.AddDate(0, 0, -Interval(habit))
	default:
		return date.AddDate(0, 0, -1)
	}
}

func weekdayIn(day time.Weekday, set []int) bool {
	for _, d := range set {
		if int(day) == d {
			return true
		}
	}
	return false
}
