package services

import (
	"errors"

	"alfredoptarigan/ats-analyzer/internal/repositories"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrEmptyDocument     = errors.New("no text content found in document")
	ErrNotFound          = repositories.ErrNotFound
	ErrAnalysisFailed    = errors.New("analysis failed")
	ErrIndexDisabled     = errors.New("job description index is not configured")
)
