package observability

import "strings"

// Card payloads pass through this service in the clear, so every request or
// response body must go through MaskPayload before it reaches a log line.
//
// Masking rules:
//   - password   -> "****"
//   - cvv        -> "***"
//   - cardNumber -> first six and last four digits kept, middle starred

const maskedPassword = "****"
const maskedCVV = "***"

// MaskPayload returns a deep copy of a decoded JSON value with sensitive
// fields replaced. The input is never mutated; callers may log the result
// while still forwarding the original.
func MaskPayload(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			if masked, ok := maskField(k, child); ok {
				out[k] = masked
				continue
			}
			out[k] = MaskPayload(child)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = MaskPayload(child)
		}
		return out
	default:
		return v
	}
}

func maskField(key string, value any) (any, bool) {
	s, isString := value.(string)

	switch {
	case strings.EqualFold(key, "password"):
		return maskedPassword, true
	case strings.EqualFold(key, "cvv"), strings.EqualFold(key, "securityCode"):
		return maskedCVV, true
	case strings.EqualFold(key, "cardNumber"), strings.EqualFold(key, "number"):
		if !isString {
			return maskedPassword, true
		}
		return MaskCardNumber(s), true
	}
	return nil, false
}

// MaskCardNumber keeps the BIN and the last four digits of a PAN and stars
// the rest, e.g. "4111111111111111" -> "411111******1111". Values too short
// to carry both segments are starred entirely.
func MaskCardNumber(pan string) string {
	if len(pan) < 12 {
		return strings.Repeat("*", len(pan))
	}
	return pan[:6] + strings.Repeat("*", len(pan)-10) + pan[len(pan)-4:]
}
