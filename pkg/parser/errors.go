package parser

import "errors"

// Fatal ingestion errors. Row-level defects are never errors; bad rows are
// dropped with a debug log.
var (
	// ErrUnsupportedFormat means the upload's extension or CSV shape is not
	// one the pipeline knows how to read. No parsing is attempted.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrSourceNotFound means an archive was unpacked but contained no
	// recognizable activity export.
	ErrSourceNotFound = errors.New("activity export not found in archive")

	// ErrSchema means required columns were absent after normalization.
	ErrSchema = errors.New("required columns missing")
)
