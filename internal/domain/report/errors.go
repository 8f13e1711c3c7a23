package report

import "errors"

var (
	ErrReportNotFound     = errors.New("report not found")
	ErrInvalidTransition  = errors.New("invalid report status transition")
	ErrReasonRequired     = errors.New("rejection reason is required")
	ErrReportFrozen       = errors.New("report is approved and its snapshot is frozen")
	ErrReportNotSubmitted = errors.New("report has not been submitted")
)
