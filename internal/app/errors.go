package service

import "errors"

// Sentinel errors returned by the Service.
var (
	ErrEmptyDataset = errors.New("dataset has no rows")
	ErrNotStarted   = errors.New("service not started")
	ErrNoLoader     = errors.New("no dataset loader configured")
)
