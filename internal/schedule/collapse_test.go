package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollapseDropsDuplicates(t *testing.T) {
	cands := []Candidate{
		{Date: "2024-05-10", Time: "09:00", Duration: 20},
		{Date: "2024-05-10", Time: "09:00", Duration: 20},
		{Date: "2024-05-10", Time: "09:20", Duration: 20},
	}

	got, err := Collapse(cands, "2024-05-10", 20)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestCollapseKeepsFirstOccurrenceOrder(t *testing.T) {
	cands := []Candidate{
		{Date: "2024-05-11", Time: "10:00", Duration: 20},
		{Date: "2024-05-10", Time: "09:00", Duration: 20},
		{Date: "2024-05-11", Time: "10:00", Duration: 20},
	}

	got, err := Collapse(cands, "2024-05-10", 20)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2024-05-11", got[0].Date)
	assert.Equal(t, "2024-05-10", got[1].Date)
}

func TestCollapseIsIdempotent(t *testing.T) {
	cands := []Candidate{
		{Date: "2024-05-10", Time: "09:00", Duration: 20},
		{Date: "2024-05-10", Time: "09:00", Duration: 20},
		{Date: "2024-05-10", Time: "09:40", Duration: 20},
	}

	once, err := Collapse(cands, "2024-05-10", 20)
	require.NoError(t, err)
	twice, err := Collapse(once, "2024-05-10", 20)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestCollapseAggregatesViolations(t *testing.T) {
	cands := []Candidate{
		{Date: "2024-05-09", Time: "09:00", Duration: 20}, // before exam date
		{Date: "2024-05-10", Time: "10:00", Duration: 30}, // wrong duration
		{Date: "2024-05-10", Time: "11:00", Duration: 20}, // fine
	}

	_, err := Collapse(cands, "2024-05-10", 20)
	require.Error(t, err)

	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, 2)

	var mismatch *DurationMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 30, mismatch.Duration)
	var beforeExam *SessionBeforeExamDateError
	require.ErrorAs(t, err, &beforeExam)
	assert.Equal(t, "2024-05-09", beforeExam.Date)
}

func TestCollapseRejectsDuplicateViolationOnce(t *testing.T) {
	cands := []Candidate{
		{Date: "2024-05-09", Time: "09:00", Duration: 20},
		{Date: "2024-05-09", Time: "09:00", Duration: 20},
	}

	_, err := Collapse(cands, "2024-05-10", 20)
	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, 1)
}

func TestCollapseBadExamDate(t *testing.T) {
	_, err := Collapse(nil, "not-a-date", 20)
	assert.Error(t, err)
}

func TestCollapseEmptyInput(t *testing.T) {
	got, err := Collapse(nil, "2024-05-10", 20)
	require.NoError(t, err)
	assert.Empty(t, got)
}
