package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"SePushMonitor/internal/domain"
)

func TestPublishRendersStageAlert(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotForm map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotPath = r.URL.Path
		gotForm = r.PostForm
	}))
	defer server.Close()

	n := NewNotifier("bot-token", "chat-42")
	n.apiBase = server.URL

	alert := domain.StageAlert{Location: "National", Stage: "4"}
	if err := n.Publish(context.Background(), alert); err != nil {
		t.Fatalf("Publish error: %v", err)
	}

	if gotPath != "/botbot-token/sendMessage" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if got := gotForm["chat_id"]; len(got) != 1 || got[0] != "chat-42" {
		t.Fatalf("unexpected chat_id: %v", got)
	}
	if got := gotForm["parse_mode"]; len(got) != 1 || got[0] != "Markdown" {
		t.Fatalf("unexpected parse_mode: %v", got)
	}
	text := strings.Join(gotForm["text"], "")
	if !strings.Contains(text, "National") || !strings.Contains(text, "stage 4") {
		t.Fatalf("alert not rendered into the message: %q", text)
	}
}

func TestRenderAlertStageZero(t *testing.T) {
	t.Parallel()

	text := renderAlert(domain.StageAlert{Location: "National", Stage: "0"})
	if !strings.Contains(text, "suspended") {
		t.Fatalf("stage 0 must read as suspended: %q", text)
	}
}

func TestPublishReportsServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	n := NewNotifier("bot-token", "chat-42")
	n.apiBase = server.URL

	if err := n.Publish(context.Background(), domain.StageAlert{Location: "National", Stage: "2"}); err == nil {
		t.Fatal("expected error on 401")
	}
}

func TestPublishRejectsMisconfiguration(t *testing.T) {
	t.Parallel()

	n := NewNotifier("", "")
	if err := n.Publish(context.Background(), domain.StageAlert{}); err == nil {
		t.Fatal("expected misconfiguration error")
	}
}
