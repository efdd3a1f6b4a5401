package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	apperrors "github.com/cassiomorais/threeds-gateway/internal/domain/errors"
	"github.com/cassiomorais/threeds-gateway/internal/infrastructure/observability"
)

// DefaultAPIVersion is the MPGS REST API version used when the caller does
// not supply one.
const DefaultAPIVersion = "73"

// Flow step numbers as reported to callers. RetrieveOrder and AuthorizePay
// both report step 3; that numbering is part of the public contract and is
// kept as-is.
const (
	StepInitiate          = 1
	StepAuthenticatePayer = 2
	StepRetrieveOrder     = 3
	StepAuthorizePay      = 3
)

// FlowRequest carries the caller-supplied inputs shared by every flow
// operation. The caller owns orderId/transactionId correlation across the
// sequence; this service holds no state between calls.
//
// RequestBody is an opaque pass-through value. Its business fields are never
// interpreted or mutated here. A string value is parsed as JSON before
// forwarding.
type FlowRequest struct {
	MerchantID    string `json:"merchantId"`
	Username      string `json:"username"`
	Password      string `json:"password"`
	APIBaseURL    string `json:"apiBaseUrl"`
	APIVersion    string `json:"apiVersion"`
	OrderID       string `json:"orderId"`
	TransactionID string `json:"transactionId"`
	URL           string `json:"url"`
	Method        string `json:"method"`
	RequestBody   any    `json:"requestBody"`
}

// Service implements the four 3DS flow operations over one shared Forwarder.
type Service struct {
	forwarder         Forwarder
	logger            zerolog.Logger
	metrics           *observability.Metrics
	defaultAPIVersion string
}

// NewService builds the flow service. defaultAPIVersion falls back to
// DefaultAPIVersion when empty.
func NewService(forwarder Forwarder, logger zerolog.Logger, metrics *observability.Metrics, defaultAPIVersion string) *Service {
	if defaultAPIVersion == "" {
		defaultAPIVersion = DefaultAPIVersion
	}
	return &Service{
		forwarder:         forwarder,
		logger:            logger,
		metrics:           metrics,
		defaultAPIVersion: defaultAPIVersion,
	}
}

type runOpts struct {
	// requireBody rejects the call before forwarding when no requestBody
	// was supplied.
	requireBody bool
	// forceGET overrides any caller-supplied method and drops the body.
	forceGET bool
	// orderScoped derives the default URL without the transaction segment.
	orderScoped bool
}

// run performs the shared portion of every flow operation: precondition
// checks, body normalization, URL derivation, forwarding and outcome
// classification. It returns the decoded upstream body on success.
func (s *Service) run(ctx context.Context, op string, step int, req FlowRequest, opts runOpts) (any, *apperrors.FlowError) {
	body, flowErr := s.prepare(step, req, opts)
	if flowErr != nil {
		s.countFailure(op, flowErr)
		return nil, flowErr
	}

	method := strings.ToUpper(req.Method)
	if method == "" {
		method = http.MethodPut
	}
	if opts.forceGET {
		method = http.MethodGet
	}

	url := req.URL
	if url == "" {
		url = s.deriveURL(req, opts.orderScoped)
	}

	result := s.forwarder.Forward(ctx, ForwardRequest{
		Method:    method,
		URL:       url,
		Body:      body,
		AuthToken: BasicAuthToken(req.Username, req.Password),
	})

	switch result.Outcome {
	case OutcomeSuccess:
		if s.metrics != nil {
			s.metrics.FlowOperationsTotal.WithLabelValues(op, "success").Inc()
		}
		return result.Body, nil
	case OutcomeUpstreamError:
		flowErr = apperrors.NewFlowError(step, result.Status, apperrors.CodeUpstream,
			fmt.Sprintf("gateway returned status %d", result.Status)).WithDetails(result.Body)
	case OutcomeNetworkError:
		flowErr = apperrors.NewFlowError(step, http.StatusBadGateway, apperrors.CodeNetwork,
			apperrors.ErrGatewayUnreachable.Error())
	default:
		flowErr = apperrors.NewFlowError(step, http.StatusInternalServerError, apperrors.CodeRequest,
			result.Err.Error())
	}

	s.countFailure(op, flowErr)
	return nil, flowErr
}

// prepare checks local preconditions and normalizes the request body. It
// never touches the network; a failure here means zero upstream contact.
func (s *Service) prepare(step int, req FlowRequest, opts runOpts) (any, *apperrors.FlowError) {
	if req.MerchantID == "" || req.Username == "" || req.Password == "" {
		return nil, apperrors.MissingCredentials(step)
	}
	if opts.forceGET {
		return nil, nil
	}
	if opts.requireBody && req.RequestBody == nil {
		return nil, apperrors.MissingBody(step)
	}

	// A string-encoded body is parsed so the gateway always receives a JSON
	// document, not a double-encoded string.
	if raw, ok := req.RequestBody.(string); ok {
		var parsed any
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			return nil, apperrors.NewFlowError(step, http.StatusInternalServerError, apperrors.CodeRequest,
				fmt.Sprintf("requestBody is not valid JSON: %v", err))
		}
		return parsed, nil
	}
	return req.RequestBody, nil
}

func (s *Service) deriveURL(req FlowRequest, orderScoped bool) string {
	version := req.APIVersion
	if version == "" {
		version = s.defaultAPIVersion
	}
	base := strings.TrimSuffix(req.APIBaseURL, "/")

	url := fmt.Sprintf("%s/api/rest/version/%s/merchant/%s/order/%s", base, version, req.MerchantID, req.OrderID)
	if orderScoped {
		return url
	}
	return fmt.Sprintf("%s/transaction/%s", url, req.TransactionID)
}

func (s *Service) countFailure(op string, flowErr *apperrors.FlowError) {
	if s.metrics != nil {
		s.metrics.FlowOperationsTotal.WithLabelValues(op, "failure").Inc()
		s.metrics.FlowOperationErrors.WithLabelValues(op, flowErr.Code).Inc()
	}
	s.logger.Warn().
		Str("operation", op).
		Int("step", flowErr.Step).
		Str("code", flowErr.Code).
		Msg(flowErr.Message)
}
