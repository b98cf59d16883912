// Package totp implements RFC 6238 time-based one-time passwords with the
// profile used by common authenticator apps: HMAC-SHA1, 6 digits, 30 second
// period.
package totp

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base32"
	"encoding/binary"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/dtroode/identity-server/internal/model"
)

var _ model.TOTPEngine = (*Engine)(nil)

const (
	secretBytes = 20
	digits      = 6
	period      = 30
)

var b32 = base32.StdEncoding.WithPadding(base32.NoPadding)

// Engine generates secrets and verifies codes with a configurable
// clock-skew window.
type Engine struct {
	issuer string
	window int
}

// NewEngine creates an Engine. The window is the number of 30-second steps
// accepted on either side of the current one; window 1 gives the standard
// ±30s drift tolerance.
func NewEngine(issuer string, window int) *Engine {
	if window < 0 {
		window = 0
	}
	return &Engine{issuer: issuer, window: window}
}

// GenerateSecret returns a fresh base32 secret with 160 bits of entropy.
func (e *Engine) GenerateSecret() (string, error) {
	raw := make([]byte, secretBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate totp secret: %w", err)
	}
	return b32.EncodeToString(raw), nil
}

// ProvisioningURI builds the otpauth:// URI encoded into setup QR codes.
// QR rendering itself is up to the caller.
func (e *Engine) ProvisioningURI(secret, account string) string {
	label := url.PathEscape(e.issuer + ":" + account)

	v := url.Values{}
	v.Set("secret", secret)
	v.Set("issuer", e.issuer)
	v.Set("period", strconv.Itoa(period))
	v.Set("digits", strconv.Itoa(digits))
	v.Set("algorithm", "SHA1")

	return "otpauth://totp/" + label + "?" + v.Encode()
}

// VerifyCode checks a code against the secret. The code must be exactly six
// ASCII digits; anything else is rejected without error. A match at counter
// T±window is accepted and the matched counter is returned so callers can
// enforce replay protection.
func (e *Engine) VerifyCode(secret, code string, now time.Time) (bool, int64) {
	if len(code) != digits || !isDigits(code) {
		return false, 0
	}

	key, err := b32.DecodeString(secret)
	if err != nil || len(key) == 0 {
		return false, 0
	}

	base := now.Unix() / period
	for step := -e.window; step <= e.window; step++ {
		counter := base + int64(step)
		if counter < 0 {
			continue
		}
		generated := hotpCode(key, counter)
		if subtle.ConstantTimeCompare([]byte(generated), []byte(code)) == 1 {
			return true, counter
		}
	}

	return false, 0
}

// CodeAt computes the code for a secret at a given time. Exposed for tests
// and tooling.
func CodeAt(secret string, at time.Time) (string, error) {
	key, err := b32.DecodeString(secret)
	if err != nil {
		return "", fmt.Errorf("malformed totp secret: %w", err)
	}
	return hotpCode(key, at.Unix()/period), nil
}

func hotpCode(key []byte, counter int64) string {
	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], uint64(counter))

	mac := hmac.New(sha1.New, key)
	_, _ = mac.Write(msg[:])
	sum := mac.Sum(nil)

	offset := sum[len(sum)-1] & 0x0f
	bin := (int(sum[offset])&0x7f)<<24 |
		(int(sum[offset+1])&0xff)<<16 |
		(int(sum[offset+2])&0xff)<<8 |
		(int(sum[offset+3]) & 0xff)

	return fmt.Sprintf("%06d", bin%1000000)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
