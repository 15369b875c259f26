package model

import (
	"errors"
	"strconv"
)

// Mark is the recorded outcome of an exam attempt. The set is closed:
// "absent", "Fail", "Withdraw", "30L" (30 cum laude) or a numeric grade
// between 18 and 30 stored as text.
type Mark string

const (
	MarkAbsent   Mark = "absent"
	MarkFail     Mark = "Fail"
	MarkWithdraw Mark = "Withdraw"
	MarkHonors   Mark = "30L"
)

var ErrInvalidMark = errors.New("mark is not in the allowed set")

// ParseMark validates a raw mark value against the closed set.
func ParseMark(raw string) (Mark, error) {
	switch Mark(raw) {
	case MarkAbsent, MarkFail, MarkWithdraw, MarkHonors:
		return Mark(raw), nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 18 || n > 30 {
		return "", ErrInvalidMark
	}
	return Mark(raw), nil
}

// Passing reports whether the mark qualifies the exam as passed: any numeric
// grade (18..30 by construction) or 30L. Absent, Fail and Withdraw never pass.
func (m Mark) Passing() bool {
	switch m {
	case MarkAbsent, MarkFail, MarkWithdraw:
		return false
	case MarkHonors:
		return true
	}
	_, err := strconv.Atoi(string(m))
	return err == nil
}
