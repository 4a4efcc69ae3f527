/*
Package fakenode provides an httptest-based node replaying canned REST
responses and pushing websocket notifications. It's only intended for unit
tests.
*/
package fakenode

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// Groups is the number of groups reported by default.
const Groups = 4

// Request is a request received by the node.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   []byte
}

// Decode unmarshals the request body into v.
func (r Request) Decode(v any) error {
	return json.Unmarshal(r.Body, v)
}

// Handler produces a status and a body (marshaled to JSON unless it's a
// json.RawMessage) for the request.
type Handler func(r Request) (int, any)

// Node is a fake node.
type Node struct {
	srv      *httptest.Server
	upgrader websocket.Upgrader

	lock     sync.Mutex
	handlers map[string]Handler
	requests []Request
	conns    map[*websocket.Conn]struct{}
	connCh   chan struct{}
}

// New starts a new Node answering chain-params and version requests, it's
// stopped on test cleanup.
func New(t testing.TB) *Node {
	n := &Node{
		handlers: make(map[string]Handler),
		conns:    make(map[*websocket.Conn]struct{}),
		connCh:   make(chan struct{}, 16),
	}
	n.Respond(http.MethodGet, "/infos/chain-params", map[string]int{
		"networkId":             4,
		"numZerosAtLeastInHash": 0,
		"groupNumPerBroker":     Groups,
		"groups":                Groups,
	})
	n.Respond(http.MethodGet, "/infos/version", map[string]string{"version": "v2.14.0"})
	n.srv = httptest.NewServer(http.HandlerFunc(n.serve))
	t.Cleanup(n.Close)
	return n
}

// URL returns the HTTP endpoint of the node.
func (n *Node) URL() string {
	return n.srv.URL
}

// Close drops websocket connections and stops the server.
func (n *Node) Close() {
	n.DropWS()
	n.srv.Close()
}

// Handle sets the handler for method and path (without query).
func (n *Node) Handle(method, path string, h Handler) {
	n.lock.Lock()
	defer n.lock.Unlock()
	n.handlers[method+" "+path] = h
}

// Respond makes the node answer with v for method and path.
func (n *Node) Respond(method, path string, v any) {
	n.Handle(method, path, func(Request) (int, any) {
		return http.StatusOK, v
	})
}

// Fail makes the node answer with the status and error detail for method
// and path.
func (n *Node) Fail(method, path string, status int, detail string) {
	n.Handle(method, path, func(Request) (int, any) {
		return status, map[string]string{"detail": detail}
	})
}

// Requests returns the requests received for method and path.
func (n *Node) Requests(method, path string) []Request {
	n.lock.Lock()
	defer n.lock.Unlock()
	var res []Request
	for _, r := range n.requests {
		if r.Method == method && r.Path == path {
			res = append(res, r)
		}
	}
	return res
}

// Notify sends a JSON-RPC notification to all websocket clients.
func (n *Node) Notify(method string, params any) error {
	data, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"method":  method,
		"params":  params,
	})
	if err != nil {
		return err
	}
	n.lock.Lock()
	defer n.lock.Unlock()
	for c := range n.conns {
		if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
			return err
		}
	}
	return nil
}

// WaitWS waits for a websocket client to connect.
func (n *Node) WaitWS(t testing.TB) {
	select {
	case <-n.connCh:
	case <-time.After(5 * time.Second):
		t.Fatal("no websocket connection")
	}
}

// DropWS closes all websocket connections.
func (n *Node) DropWS() {
	n.lock.Lock()
	defer n.lock.Unlock()
	for c := range n.conns {
		_ = c.Close()
		delete(n.conns, c)
	}
}

func (n *Node) serve(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/events" && websocket.IsWebSocketUpgrade(r) {
		n.serveWS(w, r)
		return
	}
	body, _ := io.ReadAll(r.Body)
	req := Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Body:   body,
	}
	n.lock.Lock()
	n.requests = append(n.requests, req)
	h, ok := n.handlers[r.Method+" "+r.URL.Path]
	n.lock.Unlock()

	status, v := http.StatusNotFound, any(map[string]string{"detail": "Not found: " + r.URL.Path})
	if ok {
		status, v = h(req)
	}
	data, ok := v.(json.RawMessage)
	if !ok {
		data, _ = json.Marshal(v)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func (n *Node) serveWS(w http.ResponseWriter, r *http.Request) {
	c, err := n.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	n.lock.Lock()
	n.conns[c] = struct{}{}
	n.lock.Unlock()
	select {
	case n.connCh <- struct{}{}:
	default:
	}
	for {
		// Control frames are handled by the reader.
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
	n.lock.Lock()
	delete(n.conns, c)
	n.lock.Unlock()
	_ = c.Close()
}
