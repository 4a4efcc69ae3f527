package rpcclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/nspcc-dev/alephium-go/pkg/encoding/address"
	"github.com/nspcc-dev/alephium-go/pkg/noderpc"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

const (
	defaultDialTimeout    = 4 * time.Second
	defaultRequestTimeout = 4 * time.Second
)

// Client represents the middleman for executing REST calls to a full node.
// Client is thread-safe and can be used from multiple goroutines.
type Client struct {
	cli      *http.Client
	endpoint *url.URL
	opts     Options
	log      *zap.Logger
	metrics  *metrics
	requestF func(ctx context.Context, r *request, v any) error

	cacheLock sync.RWMutex
	// cache stores node related information the client is bound to, it's
	// filled in during Init().
	cache cache

	latestReqID *atomic.Uint64
}

// Options defines options for the RPC client.
// All values are optional. If any duration is not specified,
// a default of 4 seconds will be used.
type Options struct {
	DialTimeout    time.Duration
	RequestTimeout time.Duration
	// Limit total number of connections per host. No limit by default.
	MaxConnsPerHost int
	// Logger is used for request tracing at debug level, nop logger is used
	// if not set.
	Logger *zap.Logger
	// Metrics makes the client register and update request metrics.
	Metrics prometheus.Registerer
}

// cache stores cache values for the RPC client methods.
type cache struct {
	initDone bool
	groups   int
	version  string
}

// request is a single REST request to the node.
type request struct {
	id       uint64
	name     string
	method   string
	path     string
	query    url.Values
	body     any
	noResult bool
}

// New returns a new Client ready to use. You should call Init method to
// get the number of groups of the network the client is operating on,
// DefaultGroups is used before that.
func New(ctx context.Context, endpoint string, opts Options) (*Client, error) {
	cl := new(Client)
	err := initClient(ctx, cl, endpoint, opts)
	if err != nil {
		return nil, err
	}
	return cl, nil
}

func initClient(_ context.Context, cl *Client, endpoint string, opts Options) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported endpoint scheme %q", u.Scheme)
	}

	if opts.DialTimeout <= 0 {
		opts.DialTimeout = defaultDialTimeout
	}

	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	httpClient := &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: opts.DialTimeout,
			}).DialContext,
			MaxConnsPerHost: opts.MaxConnsPerHost,
		},
		Timeout: opts.RequestTimeout,
	}

	if opts.Metrics != nil {
		cl.metrics, err = newMetrics(opts.Metrics)
		if err != nil {
			return err
		}
	}

	cl.cli = httpClient
	cl.endpoint = u
	cl.cache = cache{groups: address.DefaultGroups}
	cl.latestReqID = atomic.NewUint64(0)
	cl.opts = opts
	cl.log = opts.Logger
	cl.requestF = cl.makeHTTPRequest
	return nil
}

// Init fetches network parameters (the number of groups, node version) and
// caches them.
func (c *Client) Init(ctx context.Context) error {
	params, err := c.GetChainParams(ctx)
	if err != nil {
		return fmt.Errorf("failed to get chain params: %w", err)
	}
	if params.Groups <= 0 {
		return fmt.Errorf("invalid number of groups: %d", params.Groups)
	}
	version, err := c.GetVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get node version: %w", err)
	}

	c.cacheLock.Lock()
	defer c.cacheLock.Unlock()

	c.cache.groups = params.Groups
	c.cache.version = version.Version
	c.cache.initDone = true
	return nil
}

// Groups returns the number of groups of the network, address.DefaultGroups
// if the client is not initialized.
func (c *Client) Groups() int {
	c.cacheLock.RLock()
	defer c.cacheLock.RUnlock()
	return c.cache.groups
}

// Endpoint returns the node endpoint the client is bound to.
func (c *Client) Endpoint() string {
	return c.endpoint.String()
}

// Close closes unused underlying networks connections.
func (c *Client) Close() {
	c.cli.CloseIdleConnections()
}

func (c *Client) performRequest(ctx context.Context, r *request, v any) error {
	r.id = c.latestReqID.Inc()
	start := time.Now()
	err := c.requestF(ctx, r, v)
	dur := time.Since(start)
	if c.metrics != nil {
		c.metrics.observe(r.name, dur)
	}
	c.log.Debug("node request",
		zap.Uint64("id", r.id),
		zap.String("method", r.method),
		zap.String("path", r.path),
		zap.Duration("duration", dur),
		zap.Error(err))
	return err
}

func (c *Client) makeHTTPRequest(ctx context.Context, r *request, v any) error {
	var body io.Reader
	if r.body != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(r.body); err != nil {
			return err
		}
		body = buf
	}

	u := *c.endpoint
	u.Path = singleJoiningSlash(u.Path, r.path)
	if len(r.query) != 0 {
		u.RawQuery = r.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.cli.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// The node describes failures in a JSON body, look there first and
		// fall back to HTTP status if it doesn't parse.
		nerr := noderpc.NewError(resp.StatusCode, "")
		_ = json.NewDecoder(resp.Body).Decode(nerr)
		return nerr
	}
	if r.noResult || v == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	err = json.NewDecoder(resp.Body).Decode(v)
	if err != nil {
		return fmt.Errorf("JSON decoding: %w", err)
	}
	return nil
}

func singleJoiningSlash(a, b string) string {
	switch aslash, bslash := len(a) > 0 && a[len(a)-1] == '/', len(b) > 0 && b[0] == '/'; {
	case aslash && bslash:
		return a + b[1:]
	case !aslash && !bslash:
		return a + "/" + b
	}
	return a + b
}

// Ping attempts to create a connection to the endpoint
// and returns an error if there is any.
func (c *Client) Ping() error {
	host := c.endpoint.Host
	if c.endpoint.Port() == "" {
		port := "80"
		if c.endpoint.Scheme == "https" {
			port = "443"
		}
		host = net.JoinHostPort(c.endpoint.Hostname(), port)
	}
	conn, err := net.DialTimeout("tcp", host, c.opts.DialTimeout)
	if err != nil {
		return err
	}
	_ = conn.Close()
	return nil
}
