package gateway

// Helpers for pulling a handful of well-known fields out of the raw upstream
// body. Upstream responses are treated as loosely-typed documents: a missing
// or differently-typed field is simply absent, never an error.

// valueAt walks nested JSON objects along path and reports whether the leaf
// exists.
func valueAt(body any, path ...string) (any, bool) {
	current := body
	for _, key := range path {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = obj[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// stringAt returns the string leaf at path, or "" when absent or not a string.
func stringAt(body any, path ...string) string {
	v, ok := valueAt(body, path...)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// redirectHTML extracts the 3DS challenge HTML from an authenticate-payer
// response. The gateway has shipped it under two different keys across API
// versions; the nested form wins when both are present. A nil return means
// no challenge was issued (frictionless flow).
func redirectHTML(body any) *string {
	if v, ok := valueAt(body, "authentication", "redirect", "html"); ok {
		if s, ok := v.(string); ok {
			return &s
		}
	}
	if v, ok := valueAt(body, "authentication", "redirectHtml"); ok {
		if s, ok := v.(string); ok {
			return &s
		}
	}
	return nil
}
