package service

import "errors"

var (
	// ErrValidation marks input rejected before any backend call.
	ErrValidation = errors.New("validation failed")

	// ErrForbidden is returned when the session lacks the required role.
	ErrForbidden = errors.New("forbidden")

	ErrTemplateNotFound = errors.New("template not found")

	// ErrAuditNotFound is the explicit not-found state of an audit lookup.
	ErrAuditNotFound = errors.New("audit not found")

	// ErrAuditClosed rejects edits to a submitted audit.
	ErrAuditClosed = errors.New("audit is submitted and closed for editing")

	ErrUnknownQuestion    = errors.New("question is not part of this audit's template")
	ErrUnknownAnswerType  = errors.New("unknown answer type")
	ErrFieldNotApplicable = errors.New("field does not apply to this answer type")
	ErrInvalidChoice      = errors.New("invalid score choice")
	ErrNotPhotoQuestion   = errors.New("question does not take a photo answer")
	ErrUnsupportedMedia   = errors.New("unsupported photo format")

	// ErrSaveInProgress is returned when a save for the same audit is still pending.
	ErrSaveInProgress = errors.New("a save for this audit is already in progress")

	// ErrSubmissionInProgress is returned while a submit for the audit is running.
	ErrSubmissionInProgress = errors.New("a submission for this audit is already in progress")

	// ErrAlreadySubmitted is returned for any submit after the first successful one.
	ErrAlreadySubmitted = errors.New("audit has already been submitted")

	ErrExportNotConfigured = errors.New("report export function is not configured")
	ErrUnrecognizedExport  = errors.New("export response carried no document or link")
	ErrNarratorUnavailable = errors.New("report narrator is not configured")
)
