package auth

import (
	"crypto/sha256"
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// Credentials holds the single configured admin account.
type Credentials struct {
	username     string
	password     string
	passwordHash string
}

// NewCredentials uses passwordHash (bcrypt) when set and password otherwise.
func NewCredentials(username, password, passwordHash string) Credentials {
	return Credentials{username: username, password: password, passwordHash: passwordHash}
}

// Verify reports whether both values match. Both comparisons always run so
// the response time does not reveal which one failed.
func (c Credentials) Verify(username, password string) bool {
	userOK := equal(username, c.username)
	var passOK bool
	if c.passwordHash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(c.passwordHash), []byte(password)) == nil
	} else {
		passOK = equal(password, c.password)
	}
	return userOK && passOK && c.username != ""
}

// equal compares digests so inputs of different lengths take the same path.
func equal(a, b string) bool {
	ha := sha256.Sum256([]byte(a))
	hb := sha256.Sum256([]byte(b))
	return subtle.ConstantTimeCompare(ha[:], hb[:]) == 1
}

// HashPassword returns a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
