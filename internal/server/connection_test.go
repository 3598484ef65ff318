package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
)

// wsPair upgrades a loopback connection and returns the server side.
func wsPair(t *testing.T) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{}
	serverSide := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		serverSide <- ws
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	return <-serverSide
}

func TestConnectionCloseIsIdempotent(t *testing.T) {
	conn := NewConnection(wsPair(t), nil)

	// The read pump and server shutdown can both reach Close; the second
	// call must be a no-op, not a double channel close.
	conn.Close()
	conn.Close()
}

func TestConnectionCloseConcurrent(t *testing.T) {
	conn := NewConnection(wsPair(t), nil)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conn.Close()
		}()
	}
	wg.Wait()

	if _, ok := <-conn.send; ok {
		t.Error("send channel still open after Close")
	}
}
