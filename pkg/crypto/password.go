package crypto

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a bcrypt hash from the plaintext. The plaintext is
// never stored.
func HashPassword(plain string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
}

// ComparePassword checks plaintext against a stored bcrypt hash.
func ComparePassword(hash []byte, plain string) error {
	return bcrypt.CompareHashAndPassword(hash, []byte(plain))
}
