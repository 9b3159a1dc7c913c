// Package captcha issues and checks the two-addend arithmetic challenge shown
// on the inquiry form. Challenges are stateless: the token carries the addends
// and expiry, signed with HMAC-SHA256.
package captcha

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMismatch     = errors.New("captcha answer is incorrect")
	ErrInvalidToken = errors.New("captcha token is invalid")
	ErrExpired      = errors.New("captcha has expired")
)

type Challenge struct {
	Num1  int
	Num2  int
	Token string
}

type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	digit  func() int
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
		digit:  func() int { return rand.IntN(10) },
	}
}

// WithClock and WithDigits replace the time and randomness sources.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	i.now = now
	return i
}

func (i *Issuer) WithDigits(digit func() int) *Issuer {
	i.digit = digit
	return i
}

// New generates a fresh pair of single-digit addends.
func (i *Issuer) New() Challenge {
	num1, num2 := i.digit(), i.digit()
	expires := i.now().Add(i.ttl).Unix()
	payload := fmt.Sprintf("%d:%d:%d", num1, num2, expires)
	token := base64.RawURLEncoding.EncodeToString([]byte(payload)) + "." + i.sign(payload)
	return Challenge{Num1: num1, Num2: num2, Token: token}
}

// Verify returns nil only when token is authentic, unexpired and answer == num1+num2.
func (i *Issuer) Verify(token string, answer int) error {
	encoded, sig, ok := strings.Cut(token, ".")
	if !ok {
		return ErrInvalidToken
	}
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return ErrInvalidToken
	}
	payload := string(raw)

	expected, err := hex.DecodeString(sig)
	if err != nil || !hmac.Equal(expected, i.mac(payload)) {
		return ErrInvalidToken
	}

	parts := strings.Split(payload, ":")
	if len(parts) != 3 {
		return ErrInvalidToken
	}
	num1, err1 := strconv.Atoi(parts[0])
	num2, err2 := strconv.Atoi(parts[1])
	expires, err3 := strconv.ParseInt(parts[2], 10, 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return ErrInvalidToken
	}

	if i.now().Unix() > expires {
		return ErrExpired
	}
	if answer != num1+num2 {
		return ErrMismatch
	}
	return nil
}

func (i *Issuer) mac(payload string) []byte {
	m := hmac.New(sha256.New, i.secret)
	m.Write([]byte(payload))
	return m.Sum(nil)
}

func (i *Issuer) sign(payload string) string {
	return hex.EncodeToString(i.mac(payload))
}
