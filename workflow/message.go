package workflow

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/randalmurphal/buildnotify/notify"
)

// ColorFor maps a build status onto an attachment color.
func ColorFor(status BuildStatus) string {
	switch status {
	case StatusSuccess, StatusBackToNormal:
		return "good"
	case StatusUnstable:
		return "warning"
	case StatusFailure:
		return "danger"
	default:
		return notify.DefaultColor
	}
}

// BuildMessage renders the notification text for a state, e.g.
// "api-server - #42 Back To Normal (<https://ci/job/api-server/42/|Open>)".
// A non-empty state.Message is used verbatim.
func BuildMessage(state State) string {
	if state.Message != "" {
		return state.Message
	}

	msg := fmt.Sprintf("%s - #%d", state.Job, state.BuildNumber)
	if state.Status != "" {
		msg += " " + cases.Title(language.English).String(string(state.Status))
	}
	if state.URL != "" {
		msg += fmt.Sprintf(" (<%s|Open>)", state.URL)
	}
	return msg
}
