// Package client implements the fasthttp-based JSON clients for the explorer,
// exchange-rate and address-statistics APIs.
package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wallet_inspector/internal/domain/entity"
	"wallet_inspector/internal/pkg/metrics"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxLoggedBody bounds how much of an unexpected response body ends up in logs.
const maxLoggedBody = 512

// jsonGetter performs GET requests and returns validated JSON bodies.
type jsonGetter struct {
	client   *fasthttp.Client
	timeout  time.Duration
	logger   *zap.Logger
	metrics  *metrics.Metrics
	endpoint string
}

func newJSONGetter(endpoint string, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) jsonGetter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return jsonGetter{
		client:   &fasthttp.Client{Name: "wallet-inspector"},
		timeout:  timeout,
		logger:   logger,
		metrics:  m,
		endpoint: endpoint,
	}
}

// deadline is the earlier of the context deadline and now+timeout.
func (g *jsonGetter) deadline(ctx context.Context) time.Time {
	d := time.Now().Add(g.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(d) {
		d = ctxDeadline
	}
	return d
}

// get fetches requestURL and returns a copy of the body once it is known to be valid JSON.
// logURL is what gets logged, so callers can keep secrets out of it.
func (g *jsonGetter) get(ctx context.Context, requestURL, logURL string) (body []byte, err error) {
	started := time.Now()
	defer func() { g.metrics.Observe(g.endpoint, started, err) }()

	if err := ctx.Err(); err != nil {
		return nil, entity.NewNetworkError(err)
	}

	g.logger.Debug("Sending request", zap.String("url", logURL))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	// fasthttp has no context support: cancellation is only seen before the call,
	// the deadline bounds the call itself.
	if err := g.client.DoDeadline(req, resp, g.deadline(ctx)); err != nil {
		g.logger.Error("Failed to execute request", zap.String("url", logURL), zap.Error(err))
		return nil, entity.NewNetworkError(fmt.Errorf("request to %s failed: %w", logURL, err))
	}

	rawBody := resp.Body()
	if resp.StatusCode() != fasthttp.StatusOK {
		g.logger.Error("API request failed",
			zap.String("url", logURL),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", truncate(rawBody)),
		)
		return nil, entity.NewNetworkError(fmt.Errorf("request to %s failed with status %d", logURL, resp.StatusCode()))
	}

	// resp is released on return, so the body must be copied out.
	body = append([]byte(nil), rawBody...)
	if !json.Valid(body) {
		g.logger.Error("Response body is not valid JSON",
			zap.String("url", logURL),
			zap.ByteString("responseBody", truncate(body)),
		)
		return nil, entity.NewMalformedResponseError(errors.New("response body is not valid JSON"))
	}
	return body, nil
}

func truncate(b []byte) []byte {
	if len(b) > maxLoggedBody {
		return b[:maxLoggedBody]
	}
	return b
}

// stringField reads a string value, tolerating bare JSON numbers.
func stringField(v jsoniter.Any) (string, bool) {
	switch v.ValueType() {
	case jsoniter.StringValue, jsoniter.NumberValue:
		return v.ToString(), true
	default:
		return "", false
	}
}
