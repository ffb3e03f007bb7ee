package domain

import "errors"

// Lookup/input errors
var (
	ErrInvalidRegion  = errors.New("invalid region")
	ErrInvalidPage    = errors.New("page must be at least 1")
	ErrInvalidLimit   = errors.New("limit must be positive")
	ErrInvalidSteamID = errors.New("invalid steam id")
)

// Forum errors
var (
	ErrThreadNotFound = errors.New("thread not found")
	ErrEmptyTitle     = errors.New("title is required")
	ErrTitleTooLong   = errors.New("title is too long")
	ErrEmptyBody      = errors.New("body is required")
	ErrBodyTooLong    = errors.New("body is too long")
	ErrTooManyTags    = errors.New("too many tags")
)
