package handler // handler defines http handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avelar/taskboard/internal/queue"
	queue_publisher "github.com/avelar/taskboard/internal/service"
)

// fieldError is one field-level validation failure. Request validation
// runs before any handler logic and collects every failing field instead
// of stopping at the first.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// validationFailed answers 400 with the collected field errors.
func validationFailed(c echo.Context, errs []fieldError) error {
	return c.JSON(http.StatusBadRequest, echo.Map{
		"error":  "validation failed",
		"fields": errs,
	})
}

// getUserID extracts the authenticated user's id placed in the context by
// the JWT middleware.
func getUserID(c echo.Context) (uint64, error) {
	if id, ok := c.Get("user_id").(uint64); ok && id != 0 {
		return id, nil
	}
	return 0, errors.New("invalid user_id in context")
}

// logAuthAttempt records login successes and failures with the email and
// client IP, mirroring what operations expects to grep for.
func logAuthAttempt(email string, success bool, ip string) {
	if success {
		log.Printf("auth: login ok email=%s ip=%s", email, ip)
	} else {
		log.Printf("auth: login failed email=%s ip=%s", email, ip)
	}
}

// logResourceAccess records a mutation with the acting user.
func logResourceAccess(userID uint64, resource string, resourceID uint64, action string) {
	log.Printf("access: user=%d %s %s id=%d", userID, action, resource, resourceID)
}

// publishActivity sends an event to the broker without blocking the
// request; publish failures are logged inside the publisher and ignored.
func publishActivity(ev queue.ActivityEvent) {
	ev.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishActivity(ctx, ev)
	}()
}
