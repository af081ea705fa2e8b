package report

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market-maker-sim/sim"
)

func dialHub(t *testing.T, httpURL string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(httpURL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readN(t *testing.T, conn *websocket.Conn, n int) []Message {
	t.Helper()
	out := make([]Message, 0, n)
	for len(out) < n {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
		var m Message
		require.NoError(t, conn.ReadJSON(&m))
		out = append(out, m)
	}
	return out
}

func TestHubReplaysFinishedRun(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	cfg := sim.DefaultConfig()
	cfg.Steps = 30
	res, err := sim.Run(cfg, hub)
	require.NoError(t, err)

	conn := dialHub(t, srv.URL)
	msgs := readN(t, conn, cfg.Steps+2)

	assert.Equal(t, MsgRunStart, msgs[0].Type)
	assert.Equal(t, res.RunID, msgs[0].RunID)
	for i := 1; i <= cfg.Steps; i++ {
		m := msgs[i]
		require.Equal(t, MsgPoint, m.Type)
		assert.Equal(t, i-1, m.Step)
		assert.Equal(t, res.Record.At(i-1).Price, m.Price)
		assert.Equal(t, res.Record.At(i-1).PnL, m.PnL)
	}
	end := msgs[cfg.Steps+1]
	assert.Equal(t, MsgRunEnd, end.Type)
	require.NotNil(t, end.Summary)
	assert.Equal(t, res.Summary.FinalPnL, end.Summary.FinalPnL)
}

func TestHubStreamsLiveRun(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	cfg := sim.DefaultConfig()
	cfg.Steps = 5
	_, err := sim.Run(cfg, hub)
	require.NoError(t, err)

	conn := dialHub(t, srv.URL)
	readN(t, conn, cfg.Steps+2) // 回放

	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	cfg.Steps = 10
	res, err := sim.Run(cfg, hub)
	require.NoError(t, err)

	msgs := readN(t, conn, cfg.Steps+2)
	assert.Equal(t, MsgRunStart, msgs[0].Type)
	assert.Equal(t, res.RunID, msgs[0].RunID)
	assert.Equal(t, MsgRunEnd, msgs[len(msgs)-1].Type)
	for _, m := range msgs {
		assert.Equal(t, res.RunID, m.RunID)
	}
}

func TestHubNewRunResetsHistory(t *testing.T) {
	hub := NewHub()
	cfg := sim.DefaultConfig()
	cfg.Steps = 8
	_, err := sim.Run(cfg, hub)
	require.NoError(t, err)
	cfg.Steps = 3
	second, err := sim.Run(cfg, hub)
	require.NoError(t, err)

	hub.mu.Lock()
	defer hub.mu.Unlock()
	require.Len(t, hub.history, 5)
	assert.Equal(t, second.RunID, hub.history[0].RunID)
}

func TestHubStreamsDefaultRunLive(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dialHub(t, srv.URL)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	cfg := sim.DefaultConfig()
	res, err := sim.Run(cfg, hub)
	require.NoError(t, err)
	assert.Equal(t, 1, hub.Clients())

	msgs := readN(t, conn, cfg.Steps+2)
	assert.Equal(t, MsgRunStart, msgs[0].Type)
	for i := 1; i <= cfg.Steps; i++ {
		require.Equal(t, i-1, msgs[i].Step)
	}
	end := msgs[len(msgs)-1]
	require.Equal(t, MsgRunEnd, end.Type)
	assert.Equal(t, res.Summary.FinalPnL, end.PnL)
}

func TestHubCloseDisconnectsClients(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dialHub(t, srv.URL)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	hub.Close()
	assert.Equal(t, 0, hub.Clients())
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "unexpected error: %v", err)
}
