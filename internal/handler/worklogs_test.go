package handler

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fieldNames flattens validation errors for easy membership checks.
func fieldNames(errs []fieldError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestWorklogCreateValid(t *testing.T) {
	now := time.Date(2026, 8, 29, 14, 30, 0, 0, time.UTC)
	note := "pairing session"
	req := worklogCreateReq{Date: "2026-08-28", Hours: 2.5, Note: &note}

	date, errs := req.validate(now)
	require.Empty(t, errs)
	assert.Equal(t, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), date)
}

func TestWorklogCreateTodayAllowed(t *testing.T) {
	now := time.Date(2026, 8, 29, 23, 59, 0, 0, time.UTC)
	req := worklogCreateReq{Date: "2026-08-29", Hours: 1}

	_, errs := req.validate(now)
	assert.Empty(t, errs)
}

func TestWorklogCreateFutureDateRejected(t *testing.T) {
	now := time.Date(2026, 8, 29, 0, 0, 1, 0, time.UTC)
	req := worklogCreateReq{Date: "2026-08-30", Hours: 1}

	_, errs := req.validate(now)
	assert.Contains(t, fieldNames(errs), "date")
}

func TestWorklogCreateBadDateFormat(t *testing.T) {
	for _, raw := range []string{"29-08-2026", "2026/08/29", "yesterday", ""} {
		req := worklogCreateReq{Date: raw, Hours: 1}
		_, errs := req.validate(time.Now().UTC())
		assert.Contains(t, fieldNames(errs), "date", "input %q", raw)
	}
}

func TestWorklogCreateHours(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	req := worklogCreateReq{Date: "2026-08-28", Hours: 0}
	_, errs := req.validate(now)
	assert.Contains(t, fieldNames(errs), "hours")

	req.Hours = -1
	_, errs = req.validate(now)
	assert.Contains(t, fieldNames(errs), "hours")

	req.Hours = 0.25
	_, errs = req.validate(now)
	assert.Empty(t, errs)
}

func TestWorklogCreateNoteLength(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	long := strings.Repeat("x", 201)
	req := worklogCreateReq{Date: "2026-08-28", Hours: 1, Note: &long}
	_, errs := req.validate(now)
	assert.Contains(t, fieldNames(errs), "note")

	exact := strings.Repeat("x", 200)
	req.Note = &exact
	_, errs = req.validate(now)
	assert.Empty(t, errs)
}

func TestWorklogCreateCollectsAllErrors(t *testing.T) {
	long := strings.Repeat("x", 300)
	req := worklogCreateReq{Date: "bad", Hours: 0, Note: &long}

	_, errs := req.validate(time.Now().UTC())
	names := fieldNames(errs)
	assert.ElementsMatch(t, []string{"date", "hours", "note"}, names)
}

func TestWorklogUpdateValidation(t *testing.T) {
	zero := 0.0
	req := worklogUpdateReq{Hours: &zero}
	assert.Contains(t, fieldNames(req.validate()), "hours")

	half := 0.5
	req = worklogUpdateReq{Hours: &half}
	assert.Empty(t, req.validate())

	// Fields left nil are untouched and not validated.
	req = worklogUpdateReq{}
	assert.Empty(t, req.validate())
}
