package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	apperrors "github.com/cassiomorais/threeds-gateway/internal/domain/errors"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError converts any error into the uniform failure envelope. Flow
// failures carry their own status (upstream statuses are relayed verbatim);
// everything unclassified falls through to a 500 catch-all.
func writeError(w http.ResponseWriter, err error) {
	var flowErr *apperrors.FlowError
	if errors.As(err, &flowErr) {
		writeJSON(w, flowErr.Status, ErrorResponse{
			Step:    flowErr.Step,
			Error:   flowErr.Message,
			Code:    flowErr.Code,
			Details: flowErr.Details,
		})
		return
	}

	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: validationErr.Error(),
			Code:  apperrors.CodeValidation,
		})
		return
	}

	log.Error().Err(err).Msg("unhandled error in handler")
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error: "internal server error",
		Code:  "internal_error",
	})
}

// decodeJSON parses the request body. Transport-level JSON errors are the
// caller's fault and map to a 400.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.NewValidationError("body", "invalid JSON: "+err.Error())
	}
	return nil
}
