// Package prices fetches market data from a CoinCap-style REST API and the
// alternative.me fear and greed index.
package prices

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"cryptodash/internal/jsonutil"
)

// Default endpoints.
const (
	DefaultBaseURL      = "https://api.coincap.io/v2"
	DefaultFearGreedURL = "https://api.alternative.me/fng/"
	DefaultDataPath     = "$.data"
)

const tracerName = "cryptodash/prices"

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("cannot http GET %s: %s", e.URL, e.Status)
}

// Client talks to the price API. The zero value is not usable; use NewClient.
type Client struct {
	http         *http.Client
	baseURL      string
	fearGreedURL string
	dataPath     string
	tracer       trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client. Defaults to a plain http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithFearGreedURL overrides the fear and greed index endpoint.
func WithFearGreedURL(u string) Option {
	return func(c *Client) { c.fearGreedURL = u }
}

// WithDataPath sets the JSONPath selecting the result array in an API
// response, for mirrors that wrap results differently.
func WithDataPath(path string) Option {
	return func(c *Client) { c.dataPath = path }
}

// WithTracerProvider sets the tracer provider. Defaults to the global one.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) { c.tracer = tp.Tracer(tracerName) }
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		http:         new(http.Client),
		baseURL:      strings.TrimRight(baseURL, "/"),
		fearGreedURL: DefaultFearGreedURL,
		dataPath:     DefaultDataPath,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tracer == nil {
		c.tracer = otel.Tracer(tracerName)
	}
	return c
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Assets returns the assets with the given ids, in the order the API lists
// them. An empty id list returns nothing without a request.
func (c *Client) Assets(ctx context.Context, ids []string) (_ []Asset, err error) {
	ctx, span := c.tracer.Start(ctx, "prices.Assets",
		trace.WithAttributes(attribute.StringSlice("cryptodash.asset.ids", ids)))
	defer func() { endSpan(span, err) }()

	if len(ids) == 0 {
		return []Asset{}, nil
	}
	q := url.Values{"ids": {strings.Join(ids, ",")}}
	return c.assets(ctx, c.baseURL+"/assets?"+q.Encode())
}

// Top returns the first limit assets by market cap rank.
func (c *Client) Top(ctx context.Context, limit int) (_ []Asset, err error) {
	ctx, span := c.tracer.Start(ctx, "prices.Top",
		trace.WithAttributes(attribute.Int("cryptodash.limit", limit)))
	defer func() { endSpan(span, err) }()

	if limit <= 0 {
		return []Asset{}, nil
	}
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	return c.assets(ctx, c.baseURL+"/assets?"+q.Encode())
}

func (c *Client) assets(ctx context.Context, addr string) ([]Asset, error) {
	objs, err := c.getData(ctx, addr)
	if err != nil {
		return nil, err
	}
	out := make([]Asset, 0, len(objs))
	for _, obj := range objs {
		out = append(out, assetFromJSON(obj))
	}
	return out, nil
}

// History returns the price history of id at the given interval
// (for example "m15", "h1", "d1"), oldest first.
func (c *Client) History(ctx context.Context, id, interval string) (_ []Point, err error) {
	ctx, span := c.tracer.Start(ctx, "prices.History",
		trace.WithAttributes(
			attribute.String("cryptodash.asset.id", id),
			attribute.String("cryptodash.interval", interval),
		))
	defer func() { endSpan(span, err) }()

	if id == "" {
		return nil, fmt.Errorf("prices.History: empty asset id")
	}
	if interval == "" {
		interval = "h1"
	}
	q := url.Values{"interval": {interval}}
	addr := c.baseURL + "/assets/" + url.PathEscape(id) + "/history?" + q.Encode()
	objs, err := c.getData(ctx, addr)
	if err != nil {
		return nil, err
	}
	out := make([]Point, 0, len(objs))
	for _, obj := range objs {
		out = append(out, pointFromJSON(obj))
	}
	return out, nil
}

// FearGreed returns the latest fear and greed index reading.
func (c *Client) FearGreed(ctx context.Context) (_ FearGreed, err error) {
	ctx, span := c.tracer.Start(ctx, "prices.FearGreed")
	defer func() { endSpan(span, err) }()

	addr := c.fearGreedURL
	if strings.Contains(addr, "?") {
		addr += "&limit=1"
	} else {
		addr += "?limit=1"
	}
	var jobj any
	if err := c.getJSON(ctx, addr, &jobj); err != nil {
		return FearGreed{}, err
	}
	const path = "$.data[0]"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return FearGreed{}, fmt.Errorf("error parsing fear and greed index: %q: %w", path, err)
	}
	obj, ok := jsonutil.First(jval).(map[string]any)
	if !ok {
		return FearGreed{}, fmt.Errorf("error parsing fear and greed index: %q: not an object", path)
	}
	return FearGreed{
		Value:          jsonutil.GetInt(obj, "value"),
		Classification: jsonutil.GetString(obj, "value_classification"),
	}, nil
}

// getData fetches addr and selects the result array with the data path.
func (c *Client) getData(ctx context.Context, addr string) ([]map[string]any, error) {
	var jobj any
	if err := c.getJSON(ctx, addr, &jobj); err != nil {
		return nil, err
	}
	jval, err := jsonpath.Get(c.dataPath, jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing response: %q: %w", c.dataPath, err)
	}
	objs, err := jsonutil.Objects(jval)
	if err != nil {
		return nil, fmt.Errorf("error parsing response: %q: %w", c.dataPath, err)
	}
	return objs, nil
}

// getJSON performs a GET request and unmarshals the JSON body into data.
func (c *Client) getJSON(ctx context.Context, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			URL:        resp.Request.URL.Host + resp.Request.URL.Path,
		}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	return jsonutil.UnmarshalWithContext(body, data, "decoding response")
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
