package websocket_test

import (
	"context"
	"encoding/json"
	"lankaride/config"
	"lankaride/infras/websocket"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gorilla "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_SendToUser(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.CORS.AllowedOrigins = []string{"*"}

	hub := websocket.NewHub(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go hub.Run(ctx)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, hub.ServeWS(w, r, r.URL.Query().Get("user")))
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "?user=traveler-1"

	conn, _, err := gorilla.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	assert.Eventually(t, func() bool { return hub.IsUserConnected("traveler-1") }, time.Second, 10*time.Millisecond)
	assert.False(t, hub.IsUserConnected("driver-1"))

	hub.SendToUser("traveler-1", websocket.Event{Type: "chat.message", Data: map[string]string{"body": "hello"}})

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var event struct {
		Type string            `json:"type"`
		Data map[string]string `json:"data"`
	}

	require.NoError(t, json.Unmarshal(payload, &event))
	assert.Equal(t, "chat.message", event.Type)
	assert.Equal(t, "hello", event.Data["body"])

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return !hub.IsUserConnected("traveler-1") }, time.Second, 10*time.Millisecond)
}

func newHubServer(t *testing.T, hub websocket.Hub, errs chan<- error) string {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		errs <- hub.ServeWS(w, r, r.URL.Query().Get("user"))
	}))
	t.Cleanup(server.Close)

	return "ws" + strings.TrimPrefix(server.URL, "http") + "?user=traveler-1"
}

func TestHub_ImmediateDisconnectIsRemoved(t *testing.T) {
	hub := websocket.NewHub(&config.Config{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go hub.Run(ctx)

	errs := make(chan error, 100)
	url := newHubServer(t, hub, errs)

	for range 100 {
		conn, _, err := gorilla.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		require.NoError(t, conn.Close())
	}

	for range 100 {
		assert.NoError(t, <-errs)
	}

	assert.Eventually(t, func() bool { return !hub.IsUserConnected("traveler-1") }, time.Second, 10*time.Millisecond)
}

func TestHub_StoppedHubRefusesClients(t *testing.T) {
	hub := websocket.NewHub(&config.Config{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		hub.Run(ctx)
		close(done)
	}()

	errs := make(chan error, 1)
	url := newHubServer(t, hub, errs)

	conn, _, err := gorilla.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, <-errs)
	assert.True(t, hub.IsUserConnected("traveler-1"))

	cancel()
	<-done

	assert.False(t, hub.IsUserConnected("traveler-1"))

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err = conn.ReadMessage()
	assert.True(t, gorilla.IsCloseError(err, gorilla.CloseNormalClosure, gorilla.CloseNoStatusReceived), "got %v", err)

	late, _, err := gorilla.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer late.Close()

	assert.ErrorIs(t, <-errs, websocket.ErrHubStopped)
	assert.False(t, hub.IsUserConnected("traveler-1"))

	_ = late.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err = late.ReadMessage()
	assert.True(t, gorilla.IsCloseError(err, gorilla.CloseGoingAway), "got %v", err)
}
