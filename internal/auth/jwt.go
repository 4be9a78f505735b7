package auth

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// PayloadField extracts a string claim from a JWT access token without
// verifying the signature. Display use only (e.g. showing the account
// address before the profile has loaded); never an authorization decision.
func PayloadField(token, field string) (string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", fmt.Errorf("malformed token: expected 3 segments, got %d", len(parts))
	}

	decoded, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return "", fmt.Errorf("decoding token payload: %w", err)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(decoded, &payload); err != nil {
		return "", fmt.Errorf("parsing token payload: %w", err)
	}

	value, ok := payload[field].(string)
	if !ok {
		return "", fmt.Errorf("token payload has no string field %q", field)
	}

	return value, nil
}
