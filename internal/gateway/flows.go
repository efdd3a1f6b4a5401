package gateway

import (
	"context"
)

// InitiateAuthenticationResponse is the normalized envelope for step 1.
type InitiateAuthenticationResponse struct {
	Success               bool   `json:"success"`
	Step                  int    `json:"step"`
	Data                  any    `json:"data"`
	AuthenticationStatus  string `json:"authenticationStatus,omitempty"`
	GatewayRecommendation string `json:"gatewayRecommendation,omitempty"`
}

// AuthenticatePayerResponse is the normalized envelope for step 2.
// RedirectHTML is always serialized: null means the flow was frictionless
// and no challenge page needs to be rendered.
type AuthenticatePayerResponse struct {
	Success               bool    `json:"success"`
	Step                  int     `json:"step"`
	Data                  any     `json:"data"`
	RedirectHTML          *string `json:"redirectHtml"`
	AuthenticationStatus  string  `json:"authenticationStatus,omitempty"`
	GatewayRecommendation string  `json:"gatewayRecommendation,omitempty"`
}

// RetrieveOrderResponse is the normalized envelope for the order lookup.
type RetrieveOrderResponse struct {
	Success               bool   `json:"success"`
	Step                  int    `json:"step"`
	Data                  any    `json:"data"`
	OrderStatus           string `json:"orderStatus,omitempty"`
	TotalAuthorizedAmount any    `json:"totalAuthorizedAmount,omitempty"`
	TotalCapturedAmount   any    `json:"totalCapturedAmount,omitempty"`
}

// AuthorizePayResponse is the normalized envelope for the final
// authorization/pay call.
type AuthorizePayResponse struct {
	Success              bool   `json:"success"`
	Step                 int    `json:"step"`
	Data                 any    `json:"data"`
	Result               string `json:"result,omitempty"`
	GatewayCode          string `json:"gatewayCode,omitempty"`
	AuthenticationStatus string `json:"authenticationStatus,omitempty"`
}

// InitiateAuthentication forwards the caller-built INITIATE_AUTHENTICATION
// payload to the transaction-scoped endpoint.
func (s *Service) InitiateAuthentication(ctx context.Context, req FlowRequest) (*InitiateAuthenticationResponse, error) {
	body, flowErr := s.run(ctx, "initiate_authentication", StepInitiate, req, runOpts{requireBody: true})
	if flowErr != nil {
		return nil, flowErr
	}
	return &InitiateAuthenticationResponse{
		Success:               true,
		Step:                  StepInitiate,
		Data:                  body,
		AuthenticationStatus:  stringAt(body, "authentication", "status"),
		GatewayRecommendation: stringAt(body, "response", "gatewayRecommendation"),
	}, nil
}

// AuthenticatePayer forwards the AUTHENTICATE_PAYER payload and extracts the
// challenge redirect HTML when the gateway issued one.
func (s *Service) AuthenticatePayer(ctx context.Context, req FlowRequest) (*AuthenticatePayerResponse, error) {
	body, flowErr := s.run(ctx, "authenticate_payer", StepAuthenticatePayer, req, runOpts{requireBody: true})
	if flowErr != nil {
		return nil, flowErr
	}
	return &AuthenticatePayerResponse{
		Success:               true,
		Step:                  StepAuthenticatePayer,
		Data:                  body,
		RedirectHTML:          redirectHTML(body),
		AuthenticationStatus:  stringAt(body, "authentication", "status"),
		GatewayRecommendation: stringAt(body, "response", "gatewayRecommendation"),
	}, nil
}

// RetrieveOrder reads the current order state. The outbound call is always a
// bodyless GET against the order-scoped endpoint, whatever method the caller
// asked for.
func (s *Service) RetrieveOrder(ctx context.Context, req FlowRequest) (*RetrieveOrderResponse, error) {
	body, flowErr := s.run(ctx, "retrieve_order", StepRetrieveOrder, req, runOpts{forceGET: true, orderScoped: true})
	if flowErr != nil {
		return nil, flowErr
	}

	resp := &RetrieveOrderResponse{
		Success:     true,
		Step:        StepRetrieveOrder,
		Data:        body,
		OrderStatus: stringAt(body, "status"),
	}
	if v, ok := valueAt(body, "totalAuthorizedAmount"); ok {
		resp.TotalAuthorizedAmount = v
	}
	if v, ok := valueAt(body, "totalCapturedAmount"); ok {
		resp.TotalCapturedAmount = v
	}
	return resp, nil
}

// AuthorizePay forwards the final AUTHORIZE or PAY payload against the
// transaction-scoped endpoint.
func (s *Service) AuthorizePay(ctx context.Context, req FlowRequest) (*AuthorizePayResponse, error) {
	body, flowErr := s.run(ctx, "authorize_pay", StepAuthorizePay, req, runOpts{requireBody: true})
	if flowErr != nil {
		return nil, flowErr
	}
	return &AuthorizePayResponse{
		Success:              true,
		Step:                 StepAuthorizePay,
		Data:                 body,
		Result:               stringAt(body, "result"),
		GatewayCode:          stringAt(body, "response", "gatewayCode"),
		AuthenticationStatus: stringAt(body, "authentication", "status"),
	}, nil
}
