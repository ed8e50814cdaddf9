package services

import "errors"

var (
	// ErrValidation marks payloads that fail required-field checks;
	// nothing is persisted. Wrapped with a human-readable detail.
	ErrValidation = errors.New("validation failed")

	// ErrUploadFailed means the evidence upload failed after the
	// record was created; the record has been rolled back (best
	// effort) and the caller must treat the submission as never made.
	ErrUploadFailed = errors.New("evidence upload failed")

	ErrReportNotFound   = errors.New("report not found")
	ErrAdoptionNotFound = errors.New("adoption application not found")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrInvalidDecision  = errors.New("decision must be approved or rejected")
	ErrReasonRequired   = errors.New("decision reason is required")
	ErrAlreadyDecided   = errors.New("application already decided")
	ErrNothingToUndo    = errors.New("nothing to undo")
	ErrNoEvidence       = errors.New("report has no evidence attached")
)
