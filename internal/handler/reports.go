package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avelar/taskboard/internal/model"
	"github.com/avelar/taskboard/internal/repository"
)

// ReportHandler aggregates the caller's worklogs into weekly summaries.
type ReportHandler struct {
	Worklogs *repository.WorklogRepo
}

func NewReportHandler(w *repository.WorklogRepo) *ReportHandler {
	return &ReportHandler{Worklogs: w}
}

// Weekly handles GET /reports/weekly?week=YYYY-Wnn. Without a week
// parameter the current ISO week is summarized.
func (h *ReportHandler) Weekly(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	year, week := time.Now().UTC().ISOWeek()
	if raw := strings.TrimSpace(c.QueryParam("week")); raw != "" {
		year, week, err = parseISOWeek(raw)
		if err != nil {
			return validationFailed(c, []fieldError{{"week", "must be an ISO week like 2025-W07"}})
		}
	}

	from := isoWeekStart(year, week)
	to := from.AddDate(0, 0, 6)
	logs, err := h.Worklogs.ListByUserBetween(c.Request().Context(), uid, from, to)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load worklogs failed"})
	}

	daily, total := summarizeWorklogs(logs)
	out := make([]worklogResp, 0, len(logs))
	for _, w := range logs {
		out = append(out, worklogJSON(w))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"week":             fmt.Sprintf("%d-W%02d", year, week),
		"total_week_hours": total,
		"daily_totals":     daily,
		"worklogs":         out,
	})
}

// parseISOWeek accepts "2025-W07" (and the tolerated "2025-7" form),
// validating the week number range.
func parseISOWeek(s string) (year, week int, err error) {
	norm := strings.ToUpper(s)
	if _, err = fmt.Sscanf(norm, "%d-W%d", &year, &week); err != nil {
		if _, err = fmt.Sscanf(norm, "%d-%d", &year, &week); err != nil {
			return 0, 0, fmt.Errorf("invalid week %q", s)
		}
	}
	if week < 1 || week > 53 || year < 1 {
		return 0, 0, fmt.Errorf("week out of range: %q", s)
	}
	return year, week, nil
}

// isoWeekStart returns the Monday of the given ISO week in UTC. ISO week 1
// is the week containing January 4th.
func isoWeekStart(year, week int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	wd := int(jan4.Weekday())
	if wd == 0 { // Sunday is 7 in ISO numbering
		wd = 7
	}
	week1Monday := jan4.AddDate(0, 0, 1-wd)
	return week1Monday.AddDate(0, 0, (week-1)*7)
}

// summarizeWorklogs buckets hours per calendar day and totals the week.
func summarizeWorklogs(logs []*model.Worklog) (daily map[string]float64, total float64) {
	daily = make(map[string]float64, len(logs))
	for _, w := range logs {
		day := w.Date.Format(dateLayout)
		daily[day] += w.Hours
		total += w.Hours
	}
	return daily, total
}
