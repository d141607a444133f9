package domain

import (
	"fmt"
	"strings"
)

const (
	maxNextDeliveryLen = 1000
	maxRisksLen        = 2000
)

// NormalizeExtracted coerces an untrusted mapping (the parsed
// language-model response) into the canonical five-field status shape.
// Every field defaults to nil; unexpected keys are dropped. The
// transform is idempotent over its own output.
func NormalizeExtracted(raw map[string]any) StatusFields {
	var fields StatusFields

	fields.IsOnScope = coerceTriState(raw, "is_on_scope")
	fields.IsOnTime = coerceTriState(raw, "is_on_time")
	fields.IsOnBudget = coerceTriState(raw, "is_on_budget")
	fields.NextDelivery = coerceText(raw, "next_delivery", maxNextDeliveryLen)
	fields.Risks = coerceText(raw, "risks", maxRisksLen)

	return fields
}

var triStateStrings = map[string]bool{
	"true": true, "yes": true, "on": true, "1": true,
	"false": false, "no": false, "off": false, "0": false,
}

func coerceTriState(raw map[string]any, key string) *bool {
	value, ok := raw[key]
	if !ok || value == nil {
		return nil
	}
	switch v := value.(type) {
	case bool:
		b := v
		return &b
	case string:
		if b, ok := triStateStrings[strings.ToLower(v)]; ok {
			return &b
		}
		return nil
	default:
		return nil
	}
}

func coerceText(raw map[string]any, key string, limit int) *string {
	value, ok := raw[key]
	if !ok || !truthy(value) {
		return nil
	}
	text := strings.TrimSpace(stringify(value))
	if text == "" {
		return nil
	}
	if runes := []rune(text); len(runes) > limit {
		// Trim again: the cut can expose trailing whitespace, and the
		// output must survive re-normalization unchanged.
		text = strings.TrimSpace(string(runes[:limit]))
		if text == "" {
			return nil
		}
	}
	return &text
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0
	case int:
		return v != 0
	default:
		return true
	}
}

func stringify(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}
