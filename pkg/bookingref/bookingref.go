// Package bookingref turns booking ids into references that are safe to put
// in URLs. Sealed references are authenticated (and encrypted when a block key
// is configured). The legacy encoding is plain URL-safe base64 and exists only
// so that previously shared links keep resolving; it hides nothing.
package bookingref

import (
	"encoding/base64"
	"errors"
	"regexp"
	"strings"
	"time"

	apperrors "canteen/pkg/errors"

	"github.com/gorilla/securecookie"
)

const cookieName = "booking-ref"

var (
	ErrMalformed = errors.New("malformed booking reference")

	bookingIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,63}$`)
)

type Codec struct {
	sc           *securecookie.SecureCookie
	acceptLegacy bool
}

// New builds a codec. blockKey may be empty, in which case sealed references
// are signed but not encrypted.
func New(hashKey, blockKey []byte, maxAge time.Duration, acceptLegacy bool) *Codec {
	var block []byte
	if len(blockKey) > 0 {
		block = blockKey
	}
	sc := securecookie.New(hashKey, block)
	sc.MaxAge(int(maxAge.Seconds()))
	sc.SetSerializer(securecookie.JSONEncoder{})
	return &Codec{sc: sc, acceptLegacy: acceptLegacy}
}

func ValidBookingID(id string) bool {
	return bookingIDPattern.MatchString(id)
}

func (c *Codec) Seal(bookingID string) (string, error) {
	if !ValidBookingID(bookingID) {
		return "", ErrMalformed
	}
	return c.sc.Encode(cookieName, bookingID)
}

func (c *Codec) Open(token string) (string, error) {
	var bookingID string
	if err := c.sc.Decode(cookieName, token, &bookingID); err != nil {
		return "", err
	}
	if !ValidBookingID(bookingID) {
		return "", ErrMalformed
	}
	return bookingID, nil
}

// Resolve accepts whatever a client put in the URL and returns the booking id
// it names. Sealed references are tried first, then the legacy encoding, then
// the raw value as a plain id. With legacy enabled any plain id that is also
// valid base64 of another id is read as encoded, so legacy is opt-in.
func (c *Codec) Resolve(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", apperrors.InvalidInput("booking reference is required")
	}

	if id, err := c.Open(raw); err == nil {
		return id, nil
	}

	if c.acceptLegacy {
		if decoded, err := DecodeLegacy(raw); err == nil && ValidBookingID(decoded) {
			return decoded, nil
		}
	}

	if ValidBookingID(raw) {
		return raw, nil
	}

	return "", apperrors.InvalidInput("booking reference is not valid")
}

func EncodeLegacy(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

// DecodeLegacy reverses EncodeLegacy. Padded input is accepted as well.
func DecodeLegacy(s string) (string, error) {
	b, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
	if err != nil {
		return "", ErrMalformed
	}
	return string(b), nil
}
