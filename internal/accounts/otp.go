package accounts

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"resumecraft/internal/shared/util"
)

const otpDigits = 6

var otpRange = big.NewInt(900000)

// generateOTP returns a uniformly random code in [100000, 999999].
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, otpRange)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%0*d", otpDigits, n.Int64()+100000), nil
}

func hashOTP(code string) string {
	return util.SHA256Hex(code)
}

func otpMatches(code, storedHash string) bool {
	if storedHash == "" {
		return false
	}
	return util.EqualDigest(hashOTP(code), storedHash)
}
