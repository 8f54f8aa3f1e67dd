// Package link encodes assignments as URL-safe tokens for the static reveal
// page. A token is the base64url encoding (padding stripped) of the JSON
// object {"giver": ..., "recipient": ...}; the page decodes it entirely
// client-side, so a link reveals one pairing without any server involved.
//
// Decode also accepts the legacy two-parameter query form
// (?giver=...&recipient=...) the reveal page still supports.
package link

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrEmptyName is returned when an assignment is missing its giver or
// recipient. A verified mapping can never produce this; it guards direct
// callers.
var ErrEmptyName = errors.New("assignment giver and recipient must be non-empty")

// ErrBadToken is returned when a token cannot be decoded back to an assignment.
var ErrBadToken = errors.New("malformed assignment token")

// Assignment is one giver/recipient edge as it travels inside a link.
type Assignment struct {
	Giver     string `json:"giver"`
	Recipient string `json:"recipient"`
}

// Encode serializes an assignment to a URL-safe token. Encoding is stable:
// the same assignment always yields the same token.
func Encode(a Assignment) (string, error) {
	if a.Giver == "" || a.Recipient == "" {
		return "", ErrEmptyName
	}
	payload, err := json.Marshal(a)
	if err != nil {
		return "", fmt.Errorf("encode assignment: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(payload), nil
}

// Decode parses a token produced by Encode. Trailing base64 padding is
// optional; tokens copied with or without '=' characters both decode.
func Decode(token string) (Assignment, error) {
	trimmed := strings.TrimRight(token, "=")
	payload, err := base64.RawURLEncoding.DecodeString(trimmed)
	if err != nil {
		return Assignment{}, fmt.Errorf("%w: %v", ErrBadToken, err)
	}

	var a Assignment
	if err := json.Unmarshal(payload, &a); err != nil {
		return Assignment{}, fmt.Errorf("%w: %v", ErrBadToken, err)
	}
	if a.Giver == "" || a.Recipient == "" {
		return Assignment{}, fmt.Errorf("%w: missing giver or recipient", ErrBadToken)
	}
	return a, nil
}

// DecodeQuery recovers an assignment from reveal-page query parameters.
// The primary form carries a token in "data"; the legacy form carries the
// two names in plain text.
func DecodeQuery(q url.Values) (Assignment, error) {
	if token := q.Get("data"); token != "" {
		return Decode(token)
	}
	giver, recipient := q.Get("giver"), q.Get("recipient")
	if giver != "" && recipient != "" {
		return Assignment{Giver: giver, Recipient: recipient}, nil
	}
	return Assignment{}, fmt.Errorf("%w: query has neither data token nor giver/recipient pair", ErrBadToken)
}

// RevealURL builds the shareable link for one assignment.
func RevealURL(baseURL string, a Assignment) (string, error) {
	token, err := Encode(a)
	if err != nil {
		return "", err
	}
	return baseURL + "?data=" + token, nil
}
