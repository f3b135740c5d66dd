package cli

import (
	"crypto/rand"
	"math/big"
)

// temporaryPasswordAlphabet leaves out look-alike characters (0/O, 1/l/I)
// so an operator can read a reset password out loud without ambiguity.
const temporaryPasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

const temporaryPasswordMinLength = 8

// generateTemporaryPassword draws each character uniformly with crypto/rand,
// rejecting modulo bias via rand.Int. Lengths below the minimum are raised
// to it rather than rejected.
func generateTemporaryPassword(length int) (string, error) {
	if length < temporaryPasswordMinLength {
		length = temporaryPasswordMinLength
	}

	limit := big.NewInt(int64(len(temporaryPasswordAlphabet)))
	password := make([]byte, length)
	for index := range password {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		password[index] = temporaryPasswordAlphabet[position.Int64()]
	}
	return string(password), nil
}
