// Package webhook delivers signed inquiry notifications to an operator endpoint.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"time"
)

var (
	// ErrReplayWindowExceeded is returned when the timestamp is too far from now.
	ErrReplayWindowExceeded = errors.New("timestamp outside replay window")
	// ErrInvalidSignature is returned when signature verification fails.
	ErrInvalidSignature = errors.New("invalid signature")
)

// DefaultReplayWindow bounds how old a signed notification may be.
const DefaultReplayWindow = 5 * time.Minute

// GenerateSignature signs "{timestamp}.{body}" with HMAC-SHA256, hex encoded.
func GenerateSignature(secret string, timestamp int64, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte{'.'})
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// ValidateSignature checks a received notification against now.
// Receivers use it; the server side only signs.
func ValidateSignature(secret, signature string, timestamp int64, body []byte, window time.Duration, now time.Time) error {
	skew := now.Unix() - timestamp
	if skew < 0 {
		skew = -skew
	}
	if skew > int64(window/time.Second) {
		return ErrReplayWindowExceeded
	}

	expected := GenerateSignature(secret, timestamp, body)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}
