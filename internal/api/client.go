package api

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/rs/zerolog"
	"golang.org/x/net/http/httpproxy"

	"github.com/moecatalyst/moechat/internal/config"
	"github.com/moecatalyst/moechat/internal/models"
)

// Doer is the part of an HTTP client the chat client needs.
// tls_client.HttpClient satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ChatClient is the interface implemented by Client and MockClient
type ChatClient interface {
	Send(ctx context.Context, message string) (string, error)
	Endpoint() string
	Close()
}

// Client posts chat messages to the configured endpoint
type Client struct {
	httpClient Doer
	endpoint   string
	timeout    time.Duration
	proxy      string
	userAgent  string
	logger     zerolog.Logger
	mu         sync.RWMutex
	closed     bool
}

// Ensure Client implements ChatClient
var _ ChatClient = (*Client)(nil)

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithEndpoint sets the chat URL
func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithTimeout bounds each round trip at the transport level.
// Zero keeps the transport default.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithProxy forces a proxy URL instead of the environment
func WithProxy(proxy string) ClientOption {
	return func(c *Client) {
		c.proxy = proxy
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLogger sets the diagnostic logger
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient replaces the transport, mostly for tests
func WithHTTPClient(doer Doer) ClientOption {
	return func(c *Client) {
		c.httpClient = doer
	}
}

// OptionsFromConfig translates user configuration into client options
func OptionsFromConfig(cfg config.Config) []ClientOption {
	opts := []ClientOption{WithEndpoint(cfg.Endpoint)}
	if cfg.TimeoutSeconds > 0 {
		opts = append(opts, WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second))
	}
	if cfg.Proxy != "" {
		opts = append(opts, WithProxy(cfg.Proxy))
	}
	return opts
}

// NewClient creates a new Client
func NewClient(opts ...ClientOption) (*Client, error) {
	client := &Client{
		endpoint:  models.DefaultEndpoint,
		timeout:   300 * time.Second,
		userAgent: "moechat",
		logger:    zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(client)
	}

	if err := config.ValidateEndpoint(client.endpoint); err != nil {
		return nil, err
	}

	if client.httpClient == nil {
		httpClient, err := client.newTransport()
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// newTransport builds the tls-client transport. Redirects are followed so
// the status checked by Send is the one of the final response.
func (c *Client) newTransport() (tls_client.HttpClient, error) {
	options := []tls_client.HttpClientOption{
		tls_client.WithClientProfile(profiles.Chrome_120),
	}
	if c.timeout > 0 {
		options = append(options, tls_client.WithTimeoutSeconds(int(c.timeout/time.Second)))
	}

	proxy, err := c.resolveProxy()
	if err != nil {
		return nil, err
	}
	if proxy != "" {
		options = append(options, tls_client.WithProxyUrl(proxy))
	}

	return tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
}

// resolveProxy returns the explicit proxy or the one selected by
// HTTP_PROXY/HTTPS_PROXY/NO_PROXY for the endpoint
func (c *Client) resolveProxy() (string, error) {
	if c.proxy != "" {
		return c.proxy, nil
	}

	target, err := url.Parse(c.endpoint)
	if err != nil {
		return "", err
	}

	proxyURL, err := httpproxy.FromEnvironment().ProxyFunc()(target)
	if err != nil {
		return "", fmt.Errorf("invalid proxy environment: %w", err)
	}
	if proxyURL == nil {
		return "", nil
	}
	return proxyURL.String(), nil
}

// Endpoint returns the chat URL
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Close releases idle connections. Send fails afterwards.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true

	if closer, ok := c.httpClient.(interface{ CloseIdleConnections() }); ok {
		closer.CloseIdleConnections()
	}
}

// IsClosed returns whether the client is closed
func (c *Client) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}
