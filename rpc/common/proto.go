package common

import (
	"errors"
	"math"
)

// --------------------------------------------------------------------------
// Wire protocol
// --------------------------------------------------------------------------

/*
	Every request and every response is sent as one frame:

	  - 4 bytes: payload length N (int32, big endian)
	  - N bytes: payload

	A connection carries exactly one request frame followed by one response frame.
	A request payload is the message to encode, a response payload is the report.
*/

const (
	// FrameHeaderSize is the size of the length prefix of a frame
	FrameHeaderSize = 4

	// MaxFramePayload is the largest payload length the header can declare
	MaxFramePayload = math.MaxInt32
)

var (
	// ErrFrameTooLarge is returned when a frame declares more bytes than allowed
	ErrFrameTooLarge = errors.New("frame exceeds the maximum payload size")

	// ErrNegativeLength is returned when a frame declares a negative payload length
	ErrNegativeLength = errors.New("frame declares a negative payload length")

	// ErrMaxPayloadRequired is returned when no maximum payload size was configured
	ErrMaxPayloadRequired = errors.New("max payload size is required and must be positive")

	// ErrMaxResponseRequired is returned when a client has no maximum response size configured
	ErrMaxResponseRequired = errors.New("max response size is required and must be positive")
)
