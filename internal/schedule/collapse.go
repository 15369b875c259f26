package schedule

import (
	"fmt"
	"strings"
	"time"
)

// DurationMismatchError means a candidate's duration does not match the
// call-wide slot duration.
type DurationMismatchError struct {
	Date     string
	Time     string
	Duration int
	Want     int
}

func (e *DurationMismatchError) Error() string {
	return fmt.Sprintf("slot %s %s has duration %d, call uses %d-minute slots",
		e.Date, e.Time, e.Duration, e.Want)
}

// SessionBeforeExamDateError means a candidate falls strictly before the
// call's exam date.
type SessionBeforeExamDateError struct {
	Date     string
	ExamDate string
}

func (e *SessionBeforeExamDateError) Error() string {
	return fmt.Sprintf("session day %s is before the exam date %s", e.Date, e.ExamDate)
}

// ValidationErrors aggregates every violation found in one exam-creation
// request so the caller can report all problems in a single response.
type ValidationErrors []error

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, err := range v {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the collected violations to errors.Is and errors.As.
func (v ValidationErrors) Unwrap() []error { return v }

// Collapse reduces candidates to a set unique on (date, time, duration).
// The first occurrence wins; later duplicates are dropped silently, since a
// teacher may redundantly re-enter overlapping sessions. Candidates before
// the exam date or with a duration other than slotDuration are rejected, with
// all violations aggregated. Collapse is idempotent on its own output.
func Collapse(cands []Candidate, examDate string, slotDuration int) ([]Candidate, error) {
	exam, err := time.Parse(dateLayout, examDate)
	if err != nil {
		return nil, fmt.Errorf("parse exam date %q: %w", examDate, err)
	}

	seen := make(map[Candidate]struct{}, len(cands))
	out := make([]Candidate, 0, len(cands))
	var errs ValidationErrors
	for _, c := range cands {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}

		if c.Duration != slotDuration {
			errs = append(errs, &DurationMismatchError{
				Date: c.Date, Time: c.Time, Duration: c.Duration, Want: slotDuration,
			})
			continue
		}
		day, err := time.Parse(dateLayout, c.Date)
		if err != nil {
			errs = append(errs, fmt.Errorf("parse slot date %q: %w", c.Date, err))
			continue
		}
		if day.Before(exam) {
			errs = append(errs, &SessionBeforeExamDateError{Date: c.Date, ExamDate: examDate})
			continue
		}
		out = append(out, c)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}
