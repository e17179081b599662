package link

import (
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const wsDialTimeout = 10 * time.Second

// WSLink carries the sample stream over a websocket connection, for
// devices exposed through a network serial bridge rather than a local
// port. Binary messages are treated as an opaque byte stream; message
// boundaries carry no meaning.
type WSLink struct {
	conn *websocket.Conn

	mu       sync.Mutex
	leftover []byte
	timeout  time.Duration
}

// DialWS connects to the bridge at the given ws:// or wss:// URL.
func DialWS(url string) (*WSLink, error) {
	dialer := websocket.Dialer{HandshakeTimeout: wsDialTimeout}
	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return &WSLink{conn: conn}, nil
}

func (l *WSLink) Read(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.leftover) == 0 {
		if l.timeout > 0 {
			if err := l.conn.SetReadDeadline(time.Now().Add(l.timeout)); err != nil {
				return 0, err
			}
		}
		_, data, err := l.conn.ReadMessage()
		if err != nil {
			return 0, err
		}
		l.leftover = data
	}

	n := copy(p, l.leftover)
	l.leftover = l.leftover[n:]
	return n, nil
}

func (l *WSLink) Write(p []byte) (int, error) {
	if err := l.conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (l *WSLink) SetReadTimeout(d time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.timeout = d
	return nil
}

func (l *WSLink) Close() error {
	// Best effort close frame so the bridge can tear down its serial side.
	deadline := time.Now().Add(time.Second)
	_ = l.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	return l.conn.Close()
}
