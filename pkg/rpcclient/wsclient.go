package rpcclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/nspcc-dev/alephium-go/pkg/noderpc/result"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// BlockNotifyMethod is the name of the block notification sent by the node.
const BlockNotifyMethod = "block_notify"

const (
	wsEventsPath     = "/events"
	wsPongLimit      = 30 * time.Second
	wsPingPeriod     = wsPongLimit / 2
	wsWriteLimit     = wsPingPeriod / 2
	wsHandshakeLimit = 10 * time.Second
)

// ErrWSConnLost is returned by WSClient methods when the connection to the
// node is lost.
var ErrWSConnLost = errors.New("websocket connection lost")

// WSClient is a Client extended with block notifications delivered by the
// node event endpoint. Receivers registered with ReceiveBlocks get every
// notification until they're unsubscribed, all of them are closed when the
// connection is lost. Notifications are delivered synchronously, so
// receivers must be drained (including the Unsubscribe call period).
type WSClient struct {
	Client

	ws       *websocket.Conn
	done     chan struct{}
	shutdown chan struct{}
	closed   *atomic.Bool

	errLock sync.RWMutex
	err     error

	subsLock  sync.RWMutex
	receivers map[string]chan<- *result.BlockNotify
}

// notification is a JSON-RPC notification sent by the node.
type notification struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

// NewWS returns a new WSClient connected to the node at the given HTTP
// endpoint, the websocket endpoint is derived from it.
func NewWS(ctx context.Context, endpoint string, opts Options) (*WSClient, error) {
	wsc := &WSClient{
		done:      make(chan struct{}),
		shutdown:  make(chan struct{}),
		closed:    atomic.NewBool(false),
		receivers: make(map[string]chan<- *result.BlockNotify),
	}
	err := initClient(ctx, &wsc.Client, endpoint, opts)
	if err != nil {
		return nil, err
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: wsHandshakeLimit,
	}
	if opts.DialTimeout > 0 {
		dialer.HandshakeTimeout = opts.DialTimeout
	}
	ws, resp, err := dialer.DialContext(ctx, wsEndpoint(wsc.endpoint), nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("dial websocket: %w", err)
	}
	wsc.ws = ws
	go wsc.wsReader()
	go wsc.wsPinger()
	return wsc, nil
}

func wsEndpoint(u *url.URL) string {
	ws := *u
	if ws.Scheme == "https" {
		ws.Scheme = "wss"
	} else {
		ws.Scheme = "ws"
	}
	ws.Path = singleJoiningSlash(ws.Path, wsEventsPath)
	ws.RawQuery = ""
	return ws.String()
}

// Close closes the connection to the node. Receivers are closed after the
// reader stops.
func (c *WSClient) Close() {
	if c.closed.CompareAndSwap(false, true) {
		close(c.shutdown)
		// Closing the connection unblocks the reader.
		_ = c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(wsWriteLimit))
		_ = c.ws.Close()
		<-c.done
	}
	c.Client.Close()
}

// GetError returns the reason of the connection loss, nil is returned if
// the connection is alive or was closed with Close.
func (c *WSClient) GetError() error {
	c.errLock.RLock()
	defer c.errLock.RUnlock()
	return c.err
}

// ReceiveBlocks registers rcvr for block notifications and returns the
// subscription id to be used with Unsubscribe.
func (c *WSClient) ReceiveBlocks(rcvr chan<- *result.BlockNotify) (string, error) {
	if rcvr == nil {
		return "", errors.New("nil receiver")
	}
	select {
	case <-c.done:
		return "", ErrWSConnLost
	default:
	}
	id := uuid.NewString()
	c.subsLock.Lock()
	defer c.subsLock.Unlock()
	c.receivers[id] = rcvr
	return id, nil
}

// Unsubscribe stops delivery to the receiver with the given id, the receiver
// itself is not closed.
func (c *WSClient) Unsubscribe(id string) error {
	c.subsLock.Lock()
	defer c.subsLock.Unlock()
	if _, ok := c.receivers[id]; !ok {
		return fmt.Errorf("no subscription with ID %s", id)
	}
	delete(c.receivers, id)
	return nil
}

// UnsubscribeAll stops delivery to all receivers.
func (c *WSClient) UnsubscribeAll() {
	c.subsLock.Lock()
	defer c.subsLock.Unlock()
	clear(c.receivers)
}

func (c *WSClient) wsReader() {
	_ = c.ws.SetReadDeadline(time.Now().Add(wsPongLimit))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(wsPongLimit))
	})
	var connErr error
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if !c.closed.Load() {
				connErr = fmt.Errorf("%w: %w", ErrWSConnLost, err)
			}
			break
		}
		_ = c.ws.SetReadDeadline(time.Now().Add(wsPongLimit))
		var n notification
		if err := json.Unmarshal(data, &n); err != nil {
			c.log.Debug("bad websocket message", zap.Error(err))
			continue
		}
		if n.Method != BlockNotifyMethod {
			continue
		}
		var b = new(result.BlockNotify)
		if err := json.Unmarshal(n.Params, b); err != nil {
			c.log.Debug("bad block notification", zap.Error(err))
			continue
		}
		c.notify(b)
	}
	if connErr != nil {
		c.errLock.Lock()
		c.err = connErr
		c.errLock.Unlock()
		c.log.Warn("websocket connection lost", zap.Error(connErr))
	}
	c.closed.Store(true)
	c.subsLock.Lock()
	for id, rcvr := range c.receivers {
		close(rcvr)
		delete(c.receivers, id)
	}
	c.subsLock.Unlock()
	close(c.done)
}

func (c *WSClient) notify(b *result.BlockNotify) {
	c.subsLock.RLock()
	defer c.subsLock.RUnlock()
	for _, rcvr := range c.receivers {
		select {
		case rcvr <- b:
		case <-c.shutdown:
			return
		}
	}
}

func (c *WSClient) wsPinger() {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteLimit))
			if err != nil {
				return
			}
		}
	}
}
