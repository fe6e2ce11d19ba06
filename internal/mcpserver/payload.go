package mcpserver

import (
	"errors"

	"github.com/atlasagencia/crm-mcp/internal/crm"
)

// Error kinds exposed to callers. Human-readable detail travels next to the
// kind so the caller can diagnose without reading server logs.
const (
	kindValidation       = "validation"
	kindConfiguration    = "configuration"
	kindStoreUnavailable = "store_unavailable"
	kindNeedsInput       = "needs_input"
	kindInternal         = "internal"
)

func success(fields map[string]interface{}) map[string]interface{} {
	fields["success"] = true
	return fields
}

// errorPayload translates the typed error taxonomy into the dict-shaped
// response contract. NeedsInput is a re-solicitation, not a failure: it
// carries the field to ask for and the prompt to ask with.
func errorPayload(err error) map[string]interface{} {
	var (
		verr  *crm.ValidationError
		cerr  *crm.ConfigurationError
		serr  *crm.StoreUnavailableError
		needs *crm.NeedsInputError
	)
	switch {
	case errors.As(err, &needs):
		return map[string]interface{}{
			"success":     false,
			"needs_input": needs.Field,
			"message":     needs.Prompt,
		}
	case errors.As(err, &verr):
		return failurePayload(kindValidation, verr.Error())
	case errors.As(err, &cerr):
		return failurePayload(kindConfiguration, cerr.Error())
	case errors.As(err, &serr):
		return failurePayload(kindStoreUnavailable, serr.Error())
	default:
		return failurePayload(kindInternal, err.Error())
	}
}

func failurePayload(kind, message string) map[string]interface{} {
	return map[string]interface{}{
		"success": false,
		"error": map[string]interface{}{
			"kind":    kind,
			"message": message,
		},
	}
}
