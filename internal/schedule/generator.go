// Package schedule expands teacher-entered session windows into discrete
// bookable slots and collapses overlapping sessions into a unique slot set.
package schedule

import (
	"errors"
	"fmt"
	"time"

	"exam_scheduler/internal/model"
)

const (
	dateLayout = "2006-01-02"
	hourLayout = "15:04"
)

// ErrInvalidDuration means a session duration is not a positive multiple of
// the slot duration. The validation layer is expected to round durations up
// with RoundUpToSlot before calling the generator.
var ErrInvalidDuration = errors.New("session duration is not a multiple of the slot duration")

// CrossDayError means a session window would spill past midnight. Ending
// exactly at midnight is still the same session day and is allowed.
type CrossDayError struct {
	DayDate       string
	StartTime     string
	TotalDuration int
}

func (e *CrossDayError) Error() string {
	return fmt.Sprintf("session on %s starting at %s for %d minutes crosses midnight",
		e.DayDate, e.StartTime, e.TotalDuration)
}

// Candidate is a generated slot before persistence: the (date, time, duration)
// triple the collapser dedupes on. It is comparable by design.
type Candidate struct {
	Date     string // YYYY-MM-DD
	Time     string // HH:MM
	Duration int    // minutes
}

// RoundUpToSlot rounds a session duration up to the next multiple of the slot
// duration, mirroring the correction the entry form applies before submission.
func RoundUpToSlot(total, slotDuration int) int {
	if slotDuration <= 0 || total <= 0 {
		return total
	}
	if rem := total % slotDuration; rem != 0 {
		return total + slotDuration - rem
	}
	return total
}

// ExpandEntry expands one session entry into consecutive candidates of
// slotDuration minutes each, starting at the entry's day and start time. It
// emits exactly total/slotDuration slots with no gaps and no overlaps, all on
// the entry's calendar day.
func ExpandEntry(entry model.SessionEntry, slotDuration int) ([]Candidate, error) {
	if slotDuration <= 0 || entry.TotalDurationMinutes <= 0 ||
		entry.TotalDurationMinutes%slotDuration != 0 {
		return nil, ErrInvalidDuration
	}

	day, err := time.Parse(dateLayout, entry.DayDate)
	if err != nil {
		return nil, fmt.Errorf("parse session day %q: %w", entry.DayDate, err)
	}
	start, err := time.Parse(dateLayout+" "+hourLayout, entry.DayDate+" "+entry.StartTime)
	if err != nil {
		return nil, fmt.Errorf("parse session start %q: %w", entry.StartTime, err)
	}

	end := start.Add(time.Duration(entry.TotalDurationMinutes) * time.Minute)
	if end.After(day.AddDate(0, 0, 1)) {
		return nil, &CrossDayError{
			DayDate:       entry.DayDate,
			StartTime:     entry.StartTime,
			TotalDuration: entry.TotalDurationMinutes,
		}
	}

	n := entry.TotalDurationMinutes / slotDuration
	out := make([]Candidate, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Candidate{
			Date:     start.Format(dateLayout),
			Time:     start.Format(hourLayout),
			Duration: slotDuration,
		})
		start = start.Add(time.Duration(slotDuration) * time.Minute)
	}
	return out, nil
}

// ExpandSession expands every entry of a session and collapses the combined
// candidates. Validation failures across all entries are collected and
// returned together as ValidationErrors, never fail-fast.
func ExpandSession(session model.ExamSession) ([]Candidate, error) {
	var errs ValidationErrors
	var cands []Candidate
	for _, entry := range session.Entries {
		c, err := ExpandEntry(entry, session.SlotDurationMinutes)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		cands = append(cands, c...)
	}

	unique, err := Collapse(cands, session.ExamDate, session.SlotDurationMinutes)
	if err != nil {
		var inner ValidationErrors
		if errors.As(err, &inner) {
			errs = append(errs, inner...)
		} else {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return unique, nil
}
