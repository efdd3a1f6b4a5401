package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueAt(t *testing.T) {
	body := map[string]any{
		"order": map[string]any{
			"amount": 10.5,
		},
	}

	v, ok := valueAt(body, "order", "amount")
	assert.True(t, ok)
	assert.Equal(t, 10.5, v)

	_, ok = valueAt(body, "order", "currency")
	assert.False(t, ok)

	_, ok = valueAt(body, "order", "amount", "deeper")
	assert.False(t, ok, "cannot descend into a scalar")

	_, ok = valueAt(nil, "order")
	assert.False(t, ok)
}

func TestStringAt(t *testing.T) {
	body := map[string]any{
		"response": map[string]any{"gatewayCode": "APPROVED"},
		"count":    float64(3),
	}

	assert.Equal(t, "APPROVED", stringAt(body, "response", "gatewayCode"))
	assert.Empty(t, stringAt(body, "count"), "non-string leaf reads as absent")
	assert.Empty(t, stringAt(body, "missing"))
}

func TestRedirectHTML_NonStringValuesIgnored(t *testing.T) {
	body := map[string]any{"authentication": map[string]any{
		"redirect":     map[string]any{"html": 42},
		"redirectHtml": "fallback",
	}}

	got := redirectHTML(body)
	assert.NotNil(t, got)
	assert.Equal(t, "fallback", *got)
}
