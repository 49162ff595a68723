package workflow

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"

	"github.com/randalmurphal/buildnotify/notify"
)

// =============================================================================
// Build Status
// =============================================================================

// BuildStatus is the result of the build being reported.
type BuildStatus string

const (
	StatusStarted      BuildStatus = "started"
	StatusSuccess      BuildStatus = "success"
	StatusBackToNormal BuildStatus = "back to normal"
	StatusUnstable     BuildStatus = "unstable"
	StatusFailure      BuildStatus = "failure"
	StatusAborted      BuildStatus = "aborted"
)

// =============================================================================
// State
// =============================================================================

// State is the pipeline state NotifyNode reports on.
type State struct {
	// Identification
	RunID       string `json:"runId"`
	Job         string `json:"job"`
	BuildNumber int    `json:"buildNumber"`

	// Build result
	Status BuildStatus `json:"status,omitempty"`
	URL    string      `json:"url,omitempty"`

	// Notification input. Message overrides the generated text.
	Message        string `json:"message,omitempty"`
	ThreadTS       string `json:"threadTs,omitempty"`
	ReplyBroadcast bool   `json:"replyBroadcast,omitempty"`
	FailOnError    bool   `json:"failOnError,omitempty"`

	// Notification is set once NotifyNode ran.
	Notification *notify.Outcome `json:"notification,omitempty"`

	// Error tracking
	Error string `json:"error,omitempty"`
}

// NewState creates the state for one build of job.
func NewState(job string, buildNumber int) State {
	return State{
		RunID:       generateRunID(job, buildNumber),
		Job:         job,
		BuildNumber: buildNumber,
	}
}

// WithStatus sets the build status.
func (s State) WithStatus(status BuildStatus) State {
	s.Status = status
	return s
}

// WithURL sets the build URL linked from the message.
func (s State) WithURL(url string) State {
	s.URL = url
	return s
}

// WithThread makes the notification a reply in thread threadTS.
func (s State) WithThread(threadTS string, broadcast bool) State {
	s.ThreadTS = threadTS
	s.ReplyBroadcast = broadcast
	return s
}

// SetError sets the error state
func (s *State) SetError(err error) {
	if err != nil {
		s.Error = err.Error()
	}
}

// HasError returns true if state has an error
func (s State) HasError() bool {
	return s.Error != ""
}

// Notified reports whether a notification was delivered.
func (s State) Notified() bool {
	return s.Notification != nil && s.Notification.Success
}

// =============================================================================
// State Validation
// =============================================================================

// StateRequirement defines a state prerequisite
type StateRequirement string

const (
	RequireJob    StateRequirement = "job"
	RequireStatus StateRequirement = "status"
)

// Validate checks if state has required fields
func (s State) Validate(requirements ...StateRequirement) error {
	for _, req := range requirements {
		switch req {
		case RequireJob:
			if s.Job == "" {
				return fmt.Errorf("job required")
			}
		case RequireStatus:
			if s.Status == "" {
				return fmt.Errorf("status required")
			}
		default:
			return fmt.Errorf("unknown requirement: %s", req)
		}
	}
	return nil
}

// =============================================================================
// Helper Functions
// =============================================================================

// generateRunID creates a unique run ID
func generateRunID(job string, buildNumber int) string {
	suffix, err := nanoid.Generate("0123456789abcdef", 8)
	if err != nil {
		suffix = "00000000"
	}
	return fmt.Sprintf("%s-%d-%s", job, buildNumber, suffix)
}

// Summary returns a human-readable summary of the state
func (s State) Summary() string {
	var notified string
	switch {
	case s.Notification == nil:
		notified = "pending"
	case s.Notification.Success:
		notified = "sent"
	default:
		notified = "failed"
	}
	return fmt.Sprintf("Run %s [%s #%d %s]: notification %s",
		s.RunID, s.Job, s.BuildNumber, s.Status, notified)
}
