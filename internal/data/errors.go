package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// ErrJobNotFound is returned when no record exists for the requested job_id.
	ErrJobNotFound = errors.New("job not found")
	// ErrJobIDRequired is returned when a caller passes an empty job_id.
	ErrJobIDRequired = errors.New("job_id is required")

	// ErrReceiptNotFound is returned when a receipt handle does not match an
	// in-flight message, typically because it expired and was requeued.
	ErrReceiptNotFound = errors.New("receipt handle not found")
	// ErrEmptyMessageBody is returned when an empty payload is offered to the queue.
	ErrEmptyMessageBody = errors.New("message body is empty")
)
