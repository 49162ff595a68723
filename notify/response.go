package notify

import (
	"encoding/json"
	"fmt"
)

// apiResponse is the subset of a chat.postMessage response we read. Missing
// fields decode as empty strings.
type apiResponse struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error"`
	Channel string `json:"channel"`
	TS      string `json:"ts"`
	Message struct {
		ThreadTS string `json:"thread_ts"`
	} `json:"message"`
}

func parseResponse(body []byte) (apiResponse, error) {
	var r apiResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return apiResponse{}, fmt.Errorf("decode response: %w", err)
	}
	return r, nil
}

func (r apiResponse) outcome() Outcome {
	return Outcome{
		Success:  r.OK,
		Channel:  r.Channel,
		ThreadTS: r.Message.ThreadTS,
		TS:       r.TS,
	}
}
