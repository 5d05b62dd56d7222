package cli

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/w65harness/internal/ir"
)

func dialJobServer(t *testing.T, maxMessage int64) *websocket.Conn {
	t.Helper()
	srv := newJobServer(slog.New(slog.NewTextHandler(io.Discard, nil)), maxMessage)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + jobPath
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, msgType int, msg string) []byte {
	t.Helper()
	require.NoError(t, conn.WriteMessage(msgType, []byte(msg)))
	tp, reply, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.TextMessage, tp)
	return reply
}

func TestServeRunsJobs(t *testing.T) {
	conn := dialJobServer(t, 0)

	reply := roundTrip(t, conn, websocket.TextMessage, brkJob)
	assert.Equal(t, brkReport, string(reply))

	// The connection stays open for further jobs.
	reply = roundTrip(t, conn, websocket.TextMessage, `{"init": [{"base": 512, "data": "base64:jQAD"}]}`)
	report, err := ir.ParseReport(reply)
	require.NoError(t, err)
	assert.Equal(t, "bad_write", report.TerminationCause)
	assert.Equal(t, uint32(11), report.NumCycles)
}

func TestServeRejectsJobs(t *testing.T) {
	conn := dialJobServer(t, 0)

	tests := []struct {
		name    string
		msgType int
		msg     string
		want    string
	}{
		{"invalid_json", websocket.TextMessage, `{"init": [`, "config"},
		{"rdy", websocket.TextMessage, `{"init": [{"base": 512, "data": "base64:AA=="}], "rdy": true}`, "rdy"},
		{"binary", websocket.BinaryMessage, brkJob, "expected a text message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := roundTrip(t, conn, tt.msgType, tt.msg)
			var resp map[string]string
			require.NoError(t, json.Unmarshal(reply, &resp))
			assert.Contains(t, resp["error"], tt.want)
		})
	}
}

func TestServeMessageLimit(t *testing.T) {
	conn := dialJobServer(t, 16)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(brkJob)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err, "server closes the connection on oversized messages")
}

func TestServeCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	serveCmd, _, err := cmd.Find([]string{"serve"})
	require.NoError(t, err)

	addr := serveCmd.Flags().Lookup("addr")
	require.NotNil(t, addr)
	assert.Equal(t, "127.0.0.1:6502", addr.DefValue)
	assert.NotNil(t, serveCmd.Flags().Lookup("max-message"))
}
