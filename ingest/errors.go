package ingest

import "errors"

var (
	ErrFileTooLarge   = errors.New("file exceeds maximum size")
	ErrTooManyFiles   = errors.New("too many files in one batch")
	ErrUnknownChannel = errors.New("unknown ingestion channel")
	ErrUnknownDrag    = errors.New("unknown drag event")
	ErrStaleSession   = errors.New("session not found or expired")
)
