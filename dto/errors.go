package dto

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies why an extraction request failed.
type ErrorKind int

const (
	InvalidFormat ErrorKind = iota + 1
	EmptyFile
	MissingFile
	TooLarge
	ClientInitError
	UpstreamCallError
	UpstreamLogicalError
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidFormat:
		return "invalid_format"
	case EmptyFile:
		return "empty_file"
	case MissingFile:
		return "missing_file"
	case TooLarge:
		return "too_large"
	case ClientInitError:
		return "client_init_error"
	case UpstreamCallError:
		return "upstream_call_error"
	case UpstreamLogicalError:
		return "upstream_logical_error"
	default:
		return "unknown"
	}
}

// Status maps the kind to the HTTP status returned to the caller.
func (k ErrorKind) Status() int {
	switch k {
	case InvalidFormat, EmptyFile:
		return http.StatusBadRequest
	case MissingFile:
		return http.StatusUnprocessableEntity
	case TooLarge:
		return http.StatusRequestEntityTooLarge
	case ClientInitError:
		return http.StatusInternalServerError
	case UpstreamCallError, UpstreamLogicalError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ExtractionError carries the failure kind and, for upstream and client
// failures, the underlying error whose message is surfaced in the detail.
type ExtractionError struct {
	Kind ErrorKind
	Err  error
}

func NewError(kind ErrorKind, err error) *ExtractionError {
	return &ExtractionError{Kind: kind, Err: err}
}

func (e *ExtractionError) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

func (e *ExtractionError) Status() int {
	return e.Kind.Status()
}

// Detail is the human readable message put in the response body.
func (e *ExtractionError) Detail() string {
	switch e.Kind {
	case InvalidFormat:
		return "File format must be JPEG/JPG."
	case EmptyFile:
		return "File is empty. Please upload a file with content."
	case MissingFile:
		return "File is required. Upload it in the \"file\" form field."
	case TooLarge:
		return TooLargeDetail(DefaultSizeLimit)
	case ClientInitError:
		return "Failed to create Vision API client. " + e.message()
	case UpstreamCallError:
		return "Call to Vision API failed. " + e.message()
	case UpstreamLogicalError:
		return "Vision API error. " + e.message()
	default:
		return "Internal server error."
	}
}

func (e *ExtractionError) message() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// DefaultSizeLimit is the body size threshold used when no other limit is configured.
const DefaultSizeLimit int64 = 10 * 1024 * 1024

// TooLargeDetail renders the 413 detail for a byte limit, in whole megabytes.
func TooLargeDetail(limit int64) string {
	return fmt.Sprintf("File larger than limit of %d MB.", limit/(1024*1024))
}
