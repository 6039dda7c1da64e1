package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"

	"helpdesk/types"
)

// chatStub serves a single growing conversation for ticket 7.
type chatStub struct {
	mu       sync.Mutex
	messages []types.Message
}

func newChatStub(t *testing.T) (*chatStub, *httptest.Server) {
	t.Helper()
	stub := &chatStub{messages: []types.Message{
		{ID: 1, UserID: "u1", Content: "Hola, mi impresora no funciona", Sender: &types.TicketUser{ID: "u1", Name: "Pedro"}},
	}}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/tickets/7/conversation", func(w http.ResponseWriter, r *http.Request) {
		stub.mu.Lock()
		defer stub.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]any{
			"conversation": map[string]any{"global": map[string]any{"messages": stub.messages}},
		})
	})
	mux.HandleFunc("POST /api/tickets/7/reply", func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Content string `json:"content"`
		}
		json.NewDecoder(r.Body).Decode(&in)
		stub.mu.Lock()
		msg := types.Message{
			ID:      len(stub.messages) + 1,
			UserID:  "a1",
			Content: in.Content,
			Sender:  &types.TicketUser{ID: "a1", Name: "Laura", RolID: types.RolAgente},
		}
		stub.messages = append(stub.messages, msg)
		stub.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]any{"success": true, "message": msg})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return stub, server
}

func TestChatSocketHistoryAndSend(t *testing.T) {
	_, api := newChatStub(t)
	srv, r := newTestServer(t, api.URL)
	cookie := login(t, srv, types.User{ID: "a1", Name: "Laura", RolID: types.RolAgente})

	front := httptest.NewServer(r)
	defer front.Close()

	wsURL := "ws" + strings.TrimPrefix(front.URL, "http") + "/ws/tickets/7/chat"
	header := http.Header{}
	header.Add("Cookie", cookie.String())
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err != nil {
		t.Fatalf("dial websocket: %v", err)
	}
	defer conn.Close()

	var frame chatFrame
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read history frame: %v", err)
	}
	if frame.Type != "history" || len(frame.Messages) != 1 {
		t.Fatalf("unexpected first frame: %+v", frame)
	}
	if frame.Messages[0].IsSelf {
		t.Fatalf("other people's messages must not be marked self")
	}
	if frame.Messages[0].Sender != "Pedro" {
		t.Fatalf("sender = %q, want Pedro", frame.Messages[0].Sender)
	}

	if err := conn.WriteJSON(chatInbound{Content: "Revisando tu caso"}); err != nil {
		t.Fatalf("write message: %v", err)
	}
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read reconciled frame: %v", err)
	}
	if frame.Type != "history" || len(frame.Messages) != 2 {
		t.Fatalf("unexpected frame after send: %+v", frame)
	}
	last := frame.Messages[1]
	if !last.IsSelf || last.Content != "Revisando tu caso" {
		t.Fatalf("reconciled message = %+v", last)
	}
	if last.Role != "Agente" {
		t.Fatalf("role label = %q, want Agente", last.Role)
	}
}

func TestChatSocketUnknownTicketReportsError(t *testing.T) {
	_, api := newChatStub(t)
	srv, r := newTestServer(t, api.URL)
	cookie := login(t, srv, types.User{ID: "a1", RolID: types.RolAgente})

	front := httptest.NewServer(r)
	defer front.Close()

	wsURL := "ws" + strings.TrimPrefix(front.URL, "http") + "/ws/tickets/99/chat"
	header := http.Header{}
	header.Add("Cookie", cookie.String())
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err != nil {
		t.Fatalf("dial websocket: %v", err)
	}
	defer conn.Close()

	var frame chatFrame
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	if frame.Type != "error" {
		t.Fatalf("frame type = %q, want error", frame.Type)
	}
}
