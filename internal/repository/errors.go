// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between failure scenarios: ErrForbidden means
// the resource exists but belongs to another user and should become an
// HTTP 403, while the per-entity not-found sentinels become 404s.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own.
var ErrForbidden = errors.New("forbidden")

// ErrEmailExists is returned by user creation when the email is taken.
var ErrEmailExists = errors.New("email already exists")

// ErrBoardNotFound is returned when a board lookup fails.
var ErrBoardNotFound = errors.New("board not found")

// ErrListNotFound is returned when a list lookup fails.
var ErrListNotFound = errors.New("list not found")

// ErrCardNotFound is returned when a card lookup fails.
var ErrCardNotFound = errors.New("card not found")

// ErrWorklogNotFound is returned when a worklog lookup fails.
var ErrWorklogNotFound = errors.New("worklog not found")
