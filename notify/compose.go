package notify

// markdownFields lists the attachment fields the chat service renders with
// light markup.
var markdownFields = []string{"pretext", "text", "fields"}

// Attachment is the single styled attachment carried by every notification.
// ThreadTS and ReplyBroadcast are present only for threaded replies.
type Attachment struct {
	Text           string   `json:"text"`
	Fallback       string   `json:"fallback"`
	Color          string   `json:"color"`
	MarkdownIn     []string `json:"mrkdwn_in"`
	ThreadTS       string   `json:"thread_ts,omitempty"`
	ReplyBroadcast *bool    `json:"reply_broadcast,omitempty"`
}

// WebhookPayload is the JSON document sent in the "payload" form field in
// webhook mode.
type WebhookPayload struct {
	Channel     string       `json:"channel"`
	Attachments []Attachment `json:"attachments"`
	LinkNames   string       `json:"link_names"`
}

// ComposeAttachment builds the attachment for a request.
func ComposeAttachment(req Request) Attachment {
	a := Attachment{
		Text:       req.Message,
		Fallback:   req.Message,
		Color:      req.Color,
		MarkdownIn: append([]string(nil), markdownFields...),
	}
	if req.Threaded() {
		broadcast := req.ReplyBroadcast
		a.ThreadTS = req.ThreadTS
		a.ReplyBroadcast = &broadcast
	}
	return a
}

// ComposeAttachments wraps the request's attachment in the list shape the
// chat service expects.
func ComposeAttachments(req Request) []Attachment {
	return []Attachment{ComposeAttachment(req)}
}

// ComposeWebhookPayload builds the webhook-mode payload for one room. The room
// is used verbatim.
func ComposeWebhookPayload(req Request, room string) WebhookPayload {
	return WebhookPayload{
		Channel:     room,
		Attachments: ComposeAttachments(req),
		LinkNames:   "1",
	}
}
