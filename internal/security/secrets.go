package security

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	secretKeyLength   = 48
	secretKeyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	MinPasscodeLength = 4
)

var (
	ErrPasscodeTooShort = errors.New("passcode too short")
	errEmptyAlphabet    = errors.New("alphabet must not be empty")
)

// GenerateSecretKey returns a random signing key used when none is configured.
// Sessions signed with it do not survive a restart.
func GenerateSecretKey() (string, error) {
	return randomString(secretKeyLength, secretKeyAlphabet)
}

func randomString(length int, alphabet string) (string, error) {
	if len(alphabet) == 0 {
		return "", errEmptyAlphabet
	}
	if length <= 0 {
		return "", nil
	}

	limit := big.NewInt(int64(len(alphabet)))
	var builder strings.Builder
	builder.Grow(length)
	for builder.Len() < length {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		builder.WriteByte(alphabet[position.Int64()])
	}
	return builder.String(), nil
}

func HashPasscode(passcode string) (string, error) {
	if len(strings.TrimSpace(passcode)) < MinPasscodeLength {
		return "", ErrPasscodeTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func VerifyPasscode(hash string, passcode string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(passcode)) == nil
}
