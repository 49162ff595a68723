package integrationtest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/randalmurphal/flowgraph/pkg/flowgraph"

	"github.com/randalmurphal/buildnotify/notify"
	"github.com/randalmurphal/buildnotify/testutil"
)

// post is one notification received by chatServer.
type post struct {
	Path       string
	Token      string
	Channel    string
	Attachment notify.Attachment
	Webhook    bool
}

// chatServer is a fake chat service. It accepts chat.postMessage calls under
// /api/ and webhook posts anywhere else, answering each with a fresh ts and
// echoing the thread of threaded replies.
type chatServer struct {
	*httptest.Server

	// Reject, when set, makes the server answer ok=false for these rooms.
	Reject map[string]bool

	mu    sync.Mutex
	posts []post
}

func newChatServer(t *testing.T) *chatServer {
	t.Helper()

	s := &chatServer{Reject: map[string]bool{}}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

func (s *chatServer) handle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p := post{Path: r.URL.Path}
	var attachments []notify.Attachment

	if strings.HasPrefix(r.URL.Path, "/api/") {
		p.Token = r.URL.Query().Get("token")
		p.Channel = r.URL.Query().Get("channel")
		if err := json.Unmarshal([]byte(r.URL.Query().Get("attachments")), &attachments); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	} else {
		var payload notify.WebhookPayload
		if err := json.Unmarshal([]byte(r.PostForm.Get("payload")), &payload); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		p.Webhook = true
		p.Token = r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
		p.Channel = payload.Channel
		attachments = payload.Attachments
	}
	if len(attachments) > 0 {
		p.Attachment = attachments[0]
	}

	s.mu.Lock()
	s.posts = append(s.posts, p)
	ts := fmt.Sprintf("1700000000.%06d", len(s.posts))
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if s.Reject[p.Channel] {
		fmt.Fprint(w, `{"ok":false,"error":"channel_not_found"}`)
		return
	}
	fmt.Fprint(w, testutil.ResponseBody(true, p.Channel, p.Attachment.ThreadTS, ts))
}

// Posts returns a copy of every post received so far.
func (s *chatServer) Posts() []post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]post(nil), s.posts...)
}

// APIURL is the Web API base served by the fake.
func (s *chatServer) APIURL() string {
	return s.URL + "/api/"
}

// setupContext creates a flowgraph.Context carrying the publisher.
func setupContext(t *testing.T, pub notify.Publisher) flowgraph.Context {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	if pub != nil {
		ctx = notify.WithPublisher(ctx, pub)
	}
	return flowgraph.NewContext(ctx)
}
