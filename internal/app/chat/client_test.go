package chat

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"chatroom/internal/app/user"
)

// startClientServer upgrades one connection, hands the Client to ready and runs its
// pumps until the peer goes away.
func startClientServer(t *testing.T, onText func(string)) (*websocket.Conn, <-chan *Client) {
	t.Helper()

	ready := make(chan *Client, 1)
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("Upgrade failed: %v", err)
			return
		}

		client := NewClient(conn, user.NewSession("s1", "alice", "0"))
		go client.WritePump()
		ready <- client

		client.ReadPump(onText)
		client.Close()
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	peer, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	t.Cleanup(func() { peer.Close() })

	return peer, ready
}

func TestClientSendPreservesOrder(t *testing.T) {
	peer, ready := startClientServer(t, func(string) {})
	client := <-ready

	for _, text := range []string{"a", "b", "c"} {
		if err := client.Send(text); err != nil {
			t.Fatalf("Send failed: %v", err)
		}
	}

	for _, want := range []string{"a", "b", "c"} {
		peer.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := peer.ReadMessage()
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if string(data) != want {
			t.Errorf("Expected %q, got %q", want, data)
		}
	}
}

func TestClientReadPumpDispatchesText(t *testing.T) {
	received := make(chan string, 1)
	peer, ready := startClientServer(t, func(text string) { received <- text })
	<-ready

	if err := peer.WriteMessage(websocket.BinaryMessage, []byte("ignored")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := peer.WriteMessage(websocket.TextMessage, []byte("hello")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	select {
	case got := <-received:
		if got != "hello" {
			t.Errorf("Expected hello, got %q", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Text frame was not dispatched")
	}
}

func TestClientForceCloseSendsProtocolError(t *testing.T) {
	peer, ready := startClientServer(t, func(string) {})
	client := <-ready

	client.ForceClose()
	client.ForceClose()

	if err := client.Send("late"); !errors.Is(err, ErrConnClosed) {
		t.Errorf("Expected ErrConnClosed, got %v", err)
	}

	peer.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := peer.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseProtocolError) {
		t.Errorf("Expected protocol error close, got %v", err)
	}
}
