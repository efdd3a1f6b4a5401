package controller

import (
	"net/http"

	"github.com/cassiomorais/threeds-gateway/internal/gateway"
)

// ThreeDSController exposes the four flow operations plus the offline
// config check. Request bodies map straight onto gateway.FlowRequest; all
// sequencing and orderId/transactionId correlation stays with the caller.
type ThreeDSController struct {
	flows *gateway.Service
}

// NewThreeDSController creates a new ThreeDSController.
func NewThreeDSController(flows *gateway.Service) *ThreeDSController {
	return &ThreeDSController{flows: flows}
}

// InitiateAuthentication handles POST /api/threeds/initiate-authentication
func (h *ThreeDSController) InitiateAuthentication(w http.ResponseWriter, r *http.Request) {
	var req gateway.FlowRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	resp, err := h.flows.InitiateAuthentication(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// AuthenticatePayer handles POST /api/threeds/authenticate-payer
func (h *ThreeDSController) AuthenticatePayer(w http.ResponseWriter, r *http.Request) {
	var req gateway.FlowRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	resp, err := h.flows.AuthenticatePayer(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// RetrieveOrder handles POST /api/threeds/retrieve-order
func (h *ThreeDSController) RetrieveOrder(w http.ResponseWriter, r *http.Request) {
	var req gateway.FlowRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	resp, err := h.flows.RetrieveOrder(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// AuthorizePay handles POST /api/threeds/authorize-pay
func (h *ThreeDSController) AuthorizePay(w http.ResponseWriter, r *http.Request) {
	var req gateway.FlowRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	resp, err := h.flows.AuthorizePay(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// TestConfig handles POST /api/threeds/test-config. It validates a
// credential bundle and echoes it back masked without contacting the gateway.
func (h *ThreeDSController) TestConfig(w http.ResponseWriter, r *http.Request) {
	var bundle gateway.ConfigBundle
	if err := decodeJSON(r, &bundle); err != nil {
		writeError(w, err)
		return
	}

	resp, err := gateway.CheckConfig(bundle)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
