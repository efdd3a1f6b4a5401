package gateway

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/cassiomorais/threeds-gateway/internal/domain/errors"
)

// passwordPlaceholder replaces the password in the config-check echo.
const passwordPlaceholder = "********"

// Placeholder identifiers used in the computed example endpoint.
const (
	exampleOrderID       = "{orderId}"
	exampleTransactionID = "{transactionId}"
)

var bundleValidate = newBundleValidator()

func newBundleValidator() *validator.Validate {
	v := validator.New()
	// Report violations under the wire-level field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ConfigBundle is a credential/config bundle submitted for validation.
type ConfigBundle struct {
	MerchantID string `json:"merchantId" validate:"required,max=40"`
	Username   string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required,min=8"`
	APIBaseURL string `json:"apiBaseUrl" validate:"required,url"`
	APIVersion string `json:"apiVersion"`
}

// ConfigCheckResponse echoes a validated bundle with the password masked,
// plus a computed example endpoint URL. No upstream call is involved.
type ConfigCheckResponse struct {
	Success         bool         `json:"success"`
	Message         string       `json:"message"`
	Config          ConfigBundle `json:"config"`
	ExampleEndpoint string       `json:"exampleEndpoint"`
}

// CheckConfig validates a bundle against the schema and, on success, returns
// the masked echo. On failure it returns a ValidationError carrying the first
// violated rule's message.
func CheckConfig(bundle ConfigBundle) (*ConfigCheckResponse, error) {
	if bundle.APIVersion == "" {
		bundle.APIVersion = DefaultAPIVersion
	}

	if err := bundleValidate.Struct(bundle); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok && len(ve) > 0 {
			return nil, apperrors.NewValidationError(ve[0].Field(), ruleMessage(ve[0]))
		}
		return nil, apperrors.NewValidationError("config", err.Error())
	}

	base := strings.TrimSuffix(bundle.APIBaseURL, "/")
	example := fmt.Sprintf("%s/api/rest/version/%s/merchant/%s/order/%s/transaction/%s",
		base, bundle.APIVersion, bundle.MerchantID, exampleOrderID, exampleTransactionID)

	echo := bundle
	echo.Password = passwordPlaceholder

	return &ConfigCheckResponse{
		Success:         true,
		Message:         "configuration is valid",
		Config:          echo,
		ExampleEndpoint: example,
	}, nil
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "url":
		return fmt.Sprintf("%s must be an absolute URL", fe.Field())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
