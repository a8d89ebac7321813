package logging

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MaskHeader redacts sensitive header values based on header name.
// Credential-bearing headers (AccessKey, Authorization, API keys) show only
// the last four characters; password/secret headers are fully redacted;
// everything else passes through unchanged.
func MaskHeader(name, value string) string {
	lowerName := strings.ToLower(name)

	if strings.Contains(lowerName, "password") || strings.Contains(lowerName, "secret") {
		return "[REDACTED]"
	}

	switch lowerName {
	case "accesskey", "authorization", "x-api-key", "x-access-key":
		if len(value) < 4 {
			return "****"
		}
		return "****" + value[len(value)-4:]
	}

	return value
}

// MaskJSONBody redacts non-allowlisted primitive fields in a JSON body.
// A nil allowlist means everything is allowed. Objects and arrays are
// recursed into; primitives outside the allowlist become "[REDACTED]".
// On parse or re-serialize failure the original body is returned.
func MaskJSONBody(body []byte, allowlist []string) []byte {
	if allowlist == nil || len(body) == 0 {
		return body
	}

	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return body
	}

	allowed := make(map[string]bool, len(allowlist))
	for _, field := range allowlist {
		allowed[field] = true
	}

	masked := maskJSONValue(data, allowed)

	result, err := json.Marshal(masked)
	if err != nil {
		return body
	}
	return result
}

func maskJSONValue(value interface{}, allowed map[string]bool) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		result := make(map[string]interface{}, len(v))
		for key, val := range v {
			switch val.(type) {
			case map[string]interface{}, []interface{}:
				result[key] = maskJSONValue(val, allowed)
			default:
				if allowed[key] {
					result[key] = val
				} else {
					result[key] = "[REDACTED]"
				}
			}
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, item := range v {
			result[i] = maskJSONValue(item, allowed)
		}
		return result
	default:
		return value
	}
}

// FormatBinaryData formats non-UTF-8 request data for logging as a size
// indicator instead of raw bytes.
func FormatBinaryData(data []byte) string {
	return fmt.Sprintf("[BINARY: %d bytes]", len(data))
}
