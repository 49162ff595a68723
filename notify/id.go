package notify

import (
	nanoid "github.com/matoous/go-nanoid/v2"
)

const (
	publishIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	publishIDLength   = 12
)

// newPublishID returns the correlation id that ties together the log lines of
// one publish call.
func newPublishID() string {
	id, err := nanoid.Generate(publishIDAlphabet, publishIDLength)
	if err != nil {
		return "unknown"
	}
	return "pub_" + id
}
