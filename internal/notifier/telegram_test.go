package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func newTestNotifier(apiBase string) *TelegramNotifier {
	tn := NewTelegramNotifier("test-token", "42", "")
	tn.apiBase = apiBase
	return tn
}

func TestSend_PostsMessage(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bottest-token/sendMessage" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
	}))
	defer srv.Close()

	tn := newTestNotifier(srv.URL)
	if err := tn.Send("hello"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if got["chat_id"] != "42" || got["text"] != "hello" || got["parse_mode"] != "HTML" {
		t.Errorf("payload = %v", got)
	}
}

func TestSend_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"ok":false}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	tn := newTestNotifier(srv.URL)
	err := tn.Send("hello")
	if err == nil {
		t.Fatal("expected error on non-200 response")
	}
	if !strings.Contains(err.Error(), "status 400") {
		t.Errorf("error should carry the status code, got %v", err)
	}
}

func TestSendWithRetry_RecoversAfterFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "flaky", http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	tn := newTestNotifier(srv.URL)
	if err := tn.SendWithRetry(context.Background(), "hello", 2); err != nil {
		t.Fatalf("send with retry: %v", err)
	}
	if n := calls.Load(); n != 2 {
		t.Errorf("got %d attempts, want 2", n)
	}
}

func TestStartPolling_DispatchesCommands(t *testing.T) {
	replies := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/bottest-token/getUpdates":
			if r.URL.Query().Get("offset") == "0" {
				fmt.Fprint(w, `{"ok":true,"result":[{"update_id":7,"message":{"text":"/status"}}]}`)
			} else {
				fmt.Fprint(w, `{"ok":true,"result":[]}`)
			}
		case "/bottest-token/sendMessage":
			var payload map[string]string
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				t.Errorf("decode reply payload: %v", err)
			}
			select {
			case replies <- payload["text"]:
			default:
			}
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	tn := newTestNotifier(srv.URL)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		tn.StartPolling(ctx, func(command string) string {
			if command != "/status" {
				t.Errorf("handler got command %q", command)
			}
			return "all good"
		})
	}()

	select {
	case reply := <-replies:
		if reply != "all good" {
			t.Errorf("reply = %q, want handler output", reply)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for command reply")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("polling did not stop after cancellation")
	}
}
