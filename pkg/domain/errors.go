package domain

import "errors"

// error taxonomy shared by the feed, discovery and reporting layers
var (
	// ErrSourceUnavailable marks a single feed section that could not be loaded
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrAuthExpired is returned when upstream rejects the bearer token
	ErrAuthExpired = errors.New("auth expired")
	// ErrRefreshFailed wraps a failed discovery queue refresh
	ErrRefreshFailed = errors.New("refresh failed")
	// ErrReportFailed wraps a failed interaction report, never surfaced to the user
	ErrReportFailed = errors.New("report failed")
)
