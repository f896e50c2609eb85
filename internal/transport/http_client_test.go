package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"focusband/companion/internal/replicate"
)

func TestSendPostsSummaryMessage(t *testing.T) {
	var got replicate.Message
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/summary" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "device-token")
	snap := replicate.Snapshot{
		DayKey:       "2026-03-14",
		FocusSeconds: 120,
		Sessions:     2,
		SentAt:       time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
	}
	if err := client.Send(context.Background(), snap); err != nil {
		t.Fatalf("send: %v", err)
	}

	if auth != "Bearer device-token" {
		t.Fatalf("authorization = %q, want bearer token", auth)
	}
	if got.Type != replicate.MessageType || got.YMD != "2026-03-14" || got.FocusSeconds != 120 {
		t.Fatalf("unexpected message: %+v", got)
	}
}

func TestSendReportsServerRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(server.URL, "device-token")
	if err := client.Send(context.Background(), replicate.Snapshot{DayKey: "2026-03-14"}); err == nil {
		t.Fatal("expected an error for a 4xx response")
	}
}

func TestRegisterAndPair(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/devices/register":
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"device": map[string]string{"id": "dev-1"},
			})
		case "/api/devices/pair":
			_ = json.NewEncoder(w).Encode(map[string]string{"token": "tok-1"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	id, err := Register(context.Background(), server.URL, "wrist", "secret-1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if id != "dev-1" {
		t.Fatalf("device id = %s, want dev-1", id)
	}

	token, err := Pair(context.Background(), server.URL, id, "secret-1")
	if err != nil {
		t.Fatalf("pair: %v", err)
	}
	if token != "tok-1" {
		t.Fatalf("token = %s, want tok-1", token)
	}
}
