package services

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// EncodeShare serializes an estimate into the URL-safe payload carried by the
// share link's "q" query parameter: JSON, base64url, padding stripped.
func EncodeShare(est Estimate) (string, error) {
	raw, err := json.Marshal(est)
	if err != nil {
		return "", fmt.Errorf("marshal estimate: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// DecodeShare reverses EncodeShare. It tolerates payloads that kept their
// padding. Callers treat any error as "ignore the share link".
func DecodeShare(payload string) (Estimate, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(payload, "="))
	if err != nil {
		return Estimate{}, fmt.Errorf("decode share payload: %w", err)
	}
	var est Estimate
	if err := json.Unmarshal(raw, &est); err != nil {
		return Estimate{}, fmt.Errorf("unmarshal share payload: %w", err)
	}
	if est.Lines == nil {
		est.Lines = []LineItem{}
	}
	return est, nil
}
