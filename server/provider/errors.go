package provider

import "errors"

var (
	// ErrRequestFailed indicates the generation service rejected the
	// prediction request before any streaming began.
	ErrRequestFailed = errors.New("generation request failed")

	// ErrNoStreamURL indicates the service accepted the request but did not
	// return a stream endpoint.
	ErrNoStreamURL = errors.New("no stream URL in prediction response")

	// ErrStreamFailed indicates the fragment stream terminated abnormally.
	ErrStreamFailed = errors.New("generation stream failed")
)
