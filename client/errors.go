package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrSubmissionInFlight is returned by Publish when another
// submission from the same client hasn't finished yet.
var ErrSubmissionInFlight = errors.New("a submission is already in progress")

// ValidationError is a pre-network failure: the draft was rejected
// before any request was made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// UploadError wraps a failed asset transfer, naming which slot
// (video or thumbnail) failed so the caller can tell them apart.
type UploadError struct {
	Asset string
	Err   error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("failed to upload %s: %v", e.Asset, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// RecordCreateError means the uploads succeeded but the final record
// create call did not. The uploaded files stay on the server.
type RecordCreateError struct {
	Err error
}

func (e *RecordCreateError) Error() string {
	return fmt.Sprintf("upload succeeded but creating the record failed: %v", e.Err)
}

func (e *RecordCreateError) Unwrap() error {
	return e.Err
}

// APIError is a non-2xx response decoded from the server's error body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.Status)
}

func decodeAPIError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}

	// A non-JSON error body still yields a usable status code
	_ = json.NewDecoder(resp.Body).Decode(&body)

	return &APIError{Status: resp.StatusCode, Message: body.Error}
}
