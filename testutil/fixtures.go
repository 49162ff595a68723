// Package testutil provides utilities for testing.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// Sample values echoed by a successful chat.postMessage response.
const (
	SampleThreadTS = "1482960137.003543"
	SampleTS       = "1483116860.020084"
	SampleChannel  = "#room1"
)

// ResponseBody renders a chat service response body. Empty arguments render
// as empty strings, the way the service reports missing values.
func ResponseBody(ok bool, channel, threadTS, ts string) string {
	body := map[string]any{
		"ok":      ok,
		"channel": channel,
		"ts":      ts,
		"message": map[string]string{
			"thread_ts": threadTS,
		},
	}
	data, err := json.Marshal(body)
	if err != nil {
		panic("testutil: marshal response body: " + err.Error())
	}
	return string(data)
}

// SuccessBody is a response for a successful threaded post to SampleChannel.
func SuccessBody() string {
	return ResponseBody(true, SampleChannel, SampleThreadTS, SampleTS)
}

// FailureBody is a response with ok=false and no identifiers.
func FailureBody() string {
	return ResponseBody(false, "", "", "")
}

// SetupGitRoot creates a temporary directory that looks like a git checkout
// (it contains a .git directory) and returns its path.
func SetupGitRoot(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatalf("create .git: %v", err)
	}
	return dir
}

// WriteFile writes content to name inside dir and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create dir for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
