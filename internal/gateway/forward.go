package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cassiomorais/threeds-gateway/internal/infrastructure/observability"
)

// DefaultTimeout bounds every outbound gateway call.
const DefaultTimeout = 30 * time.Second

// Outcome classifies the result of one outbound gateway call.
type Outcome string

const (
	// OutcomeSuccess: the gateway responded with a 2xx status.
	OutcomeSuccess Outcome = "success"
	// OutcomeUpstreamError: the gateway responded with a non-2xx status.
	// Status and body are relayed verbatim, never reinterpreted.
	OutcomeUpstreamError Outcome = "upstream_error"
	// OutcomeNetworkError: the request was sent but no response arrived
	// (connection failure or timeout).
	OutcomeNetworkError Outcome = "network_error"
	// OutcomeRequestError: the request could not be constructed or dispatched.
	OutcomeRequestError Outcome = "request_error"
)

// ForwardRequest describes a single authenticated upstream call. It is built
// fresh per call and discarded after the response or failure.
type ForwardRequest struct {
	Method    string
	URL       string
	Body      any
	AuthToken string
	Timeout   time.Duration
}

// ForwardResult is the tagged outcome of one upstream call. Exactly one
// classification applies; results are never retried or cached.
type ForwardResult struct {
	Outcome Outcome
	// Status is the upstream HTTP status, set for Success and UpstreamError.
	Status int
	// Body is the decoded upstream JSON body, set when a response arrived.
	Body any
	// Err carries the local failure, set for NetworkError and RequestError.
	Err error
}

// Forwarder issues one authenticated call to the upstream gateway.
type Forwarder interface {
	Forward(ctx context.Context, req ForwardRequest) ForwardResult
}

// HTTPForwarder is the production Forwarder. One instance is shared by all
// flow operations; it holds no per-call state.
type HTTPForwarder struct {
	client  *http.Client
	timeout time.Duration
	logger  zerolog.Logger
	metrics *observability.Metrics
}

// NewHTTPForwarder builds a forwarder with the given default timeout.
// A zero timeout falls back to DefaultTimeout.
func NewHTTPForwarder(timeout time.Duration, logger zerolog.Logger, metrics *observability.Metrics) *HTTPForwarder {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPForwarder{
		client:  &http.Client{},
		timeout: timeout,
		logger:  logger,
		metrics: metrics,
	}
}

// Forward performs the call and classifies the outcome. No retries are
// performed at any classification.
func (f *HTTPForwarder) Forward(ctx context.Context, req ForwardRequest) ForwardResult {
	callID := uuid.New().String()
	start := time.Now()

	result := f.forward(ctx, req)

	f.observe(req, result, callID, time.Since(start))
	return result
}

func (f *HTTPForwarder) forward(ctx context.Context, req ForwardRequest) ForwardResult {
	var payload io.Reader
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return ForwardResult{Outcome: OutcomeRequestError, Err: err}
		}
		payload = bytes.NewReader(encoded)
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = f.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, payload)
	if err != nil {
		return ForwardResult{Outcome: OutcomeRequestError, Err: err}
	}
	httpReq.Header.Set("Authorization", "Basic "+req.AuthToken)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(httpReq)
	if err != nil {
		// Timeout and connection failures land here: the request left this
		// process but no response came back.
		return ForwardResult{Outcome: OutcomeNetworkError, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return ForwardResult{Outcome: OutcomeNetworkError, Err: err}
	}

	body := decodeBody(raw)
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return ForwardResult{Outcome: OutcomeSuccess, Status: resp.StatusCode, Body: body}
	}
	return ForwardResult{Outcome: OutcomeUpstreamError, Status: resp.StatusCode, Body: body}
}

// decodeBody decodes the upstream JSON body. Non-JSON bodies are surfaced as
// plain strings rather than dropped, so error pages still reach the caller.
func decodeBody(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		return string(raw)
	}
	return body
}

func (f *HTTPForwarder) observe(req ForwardRequest, result ForwardResult, callID string, elapsed time.Duration) {
	if f.metrics != nil {
		f.metrics.GatewayCallsTotal.WithLabelValues(req.Method, string(result.Outcome)).Inc()
		f.metrics.GatewayCallDuration.WithLabelValues(string(result.Outcome)).Observe(elapsed.Seconds())
	}

	evt := f.logger.Info()
	if result.Outcome != OutcomeSuccess {
		evt = f.logger.Warn().Err(result.Err)
	}
	evt.
		Str("call_id", callID).
		Str("method", req.Method).
		Str("url", req.URL).
		Str("outcome", string(result.Outcome)).
		Int("status", result.Status).
		Dur("elapsed", elapsed).
		Interface("request_body", observability.MaskPayload(req.Body)).
		Msg("gateway call")
}
