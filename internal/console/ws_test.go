package console

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"
)

func dialSocket(t *testing.T, f *consoleFixture) *websocket.Conn {
	t.Helper()
	wsURL := strings.Replace(f.server.URL, "http", "ws", 1) + "/ws"
	conn, err := websocket.Dial(wsURL, "", "http://localhost/")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func receiveNotice(t *testing.T, conn *websocket.Conn) sessionNotice {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var notice sessionNotice
	require.NoError(t, websocket.JSON.Receive(conn, &notice))
	return notice
}

func TestSocketAnnouncesExpiry(t *testing.T) {
	f := newConsoleFixture(t)
	f.login(t)
	conn := dialSocket(t, f)

	hello := receiveNotice(t, conn)
	assert.Equal(t, "hello", hello.Type)

	require.NoError(t, f.session.Expire(context.Background()))

	notice := receiveNotice(t, conn)
	assert.Equal(t, "session", notice.Type)
	assert.Equal(t, "expired", notice.Event)
}

func TestSocketAnnouncesLoginAndLogout(t *testing.T) {
	f := newConsoleFixture(t)
	conn := dialSocket(t, f)
	receiveNotice(t, conn) // hello

	f.login(t)
	notice := receiveNotice(t, conn)
	assert.Equal(t, "login", notice.Event)

	require.NoError(t, f.session.Clear(context.Background()))
	notice = receiveNotice(t, conn)
	assert.Equal(t, "logout", notice.Event)
}
