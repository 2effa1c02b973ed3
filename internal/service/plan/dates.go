package plan

import (
	"fmt"
	"time"
)

// DateLayout is the YYYY-MM-DD layout used for deadlines, week starts and shoot days
const DateLayout = "2006-01-02"

// timestampLayout matches JavaScript's Date.toISOString so existing files keep their format
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

var norwegianMonths = [...]string{"jan", "feb", "mar", "apr", "mai", "jun", "jul", "aug", "sep", "okt", "nov", "des"}

// FormatDate formats t as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string as local midnight
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// startOfDay truncates t to midnight in its own location
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// NextMonday returns the Monday on or after t (t itself when t is a Monday)
func NextMonday(t time.Time) time.Time {
	day := startOfDay(t)
	offset := (8 - int(day.Weekday())) % 7
	return day.AddDate(0, 0, offset)
}

// WeekLabel renders "Uke 6 (2. feb–8. feb)" for the week starting at monday
func WeekLabel(monday time.Time) string {
	_, week := monday.ISOWeek()
	end := monday.AddDate(0, 0, 6)
	return fmt.Sprintf("Uke %d (%s–%s)", week, formatDayMonth(monday), formatDayMonth(end))
}

func formatDayMonth(t time.Time) string {
	return fmt.Sprintf("%d. %s", t.Day(), norwegianMonths[t.Month()-1])
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
