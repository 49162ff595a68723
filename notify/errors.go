package notify

import "errors"

// Delivery errors. They are reported on Report, never returned from Send.
var (
	// ErrThreadMultipleRooms indicates a threaded reply was requested for a
	// configuration with more than one room. No request is sent.
	ErrThreadMultipleRooms = errors.New("cannot send threaded message to more than one room")

	// ErrThreadNotFound indicates the service accepted a threaded reply but
	// did not attach it to the requested thread.
	ErrThreadNotFound = errors.New("threaded post did not find its thread")

	// ErrNotOK indicates a 200 response whose body reported ok=false.
	ErrNotOK = errors.New("chat service reported failure")

	// ErrNoToken indicates neither a credential nor a plain token is configured.
	ErrNoToken = errors.New("no token configured")
)
