package services

import (
	"errors"
	"fmt"
)

// Validation kinds reported per file by the queue.
var (
	ErrUnsupportedType  = errors.New("unsupported file type")
	ErrTooLarge         = errors.New("file too large")
	ErrAlreadySubmitted = errors.New("file already submitted")
	ErrAlreadyQueued    = errors.New("file already queued")
)

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrRankOutOfRange  = errors.New("rank out of range")
	ErrInvalidBody     = errors.New("response body is not valid JSON")
	ErrPendingStatus   = errors.New("analysis did not report success")
	ErrWorkerStopped   = errors.New("worker stopped")
)

type ValidationError struct {
	FileName string
	Err      error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.FileName, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Kind is a stable machine name for the failure.
func (e *ValidationError) Kind() string {
	switch {
	case errors.Is(e.Err, ErrUnsupportedType):
		return "unsupported_type"
	case errors.Is(e.Err, ErrTooLarge):
		return "too_large"
	case errors.Is(e.Err, ErrAlreadySubmitted):
		return "already_submitted"
	case errors.Is(e.Err, ErrAlreadyQueued):
		return "already_queued"
	default:
		return "invalid"
	}
}

// UserMessage is the text shown next to the rejected file.
func (e *ValidationError) UserMessage() string {
	switch {
	case errors.Is(e.Err, ErrUnsupportedType):
		return fmt.Sprintf("File %q is not supported. Please upload PDF or Word files only.", e.FileName)
	case errors.Is(e.Err, ErrTooLarge):
		return fmt.Sprintf("File %q is too large. Please upload files under 10MB.", e.FileName)
	case errors.Is(e.Err, ErrAlreadySubmitted):
		return fmt.Sprintf("File %q has already been uploaded and processed.", e.FileName)
	case errors.Is(e.Err, ErrAlreadyQueued):
		return fmt.Sprintf("File %q is already selected for upload.", e.FileName)
	default:
		return fmt.Sprintf("File %q could not be added.", e.FileName)
	}
}

// RequestError covers transport failures, non-2xx statuses and
// status:"error" bodies from the analysis API.
type RequestError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("analysis request failed (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("analysis request failed: %s", e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// GenericFailureMessage is shown when the API gives no usable message.
const GenericFailureMessage = "Error processing resume. Please try again."

// FailureMessage picks the user-facing text for a failed submission.
func FailureMessage(err error) string {
	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.StatusCode == 0 && reqErr.Err == nil && reqErr.Message != "" {
		return reqErr.Message
	}
	return GenericFailureMessage
}
