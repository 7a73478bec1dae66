package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateOTP produces a uniformly random 6-digit code in [100000, 999999]
// from a cryptographic source.
func GenerateOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand only fails if the OS entropy source is broken
		panic(fmt.Sprintf("otp: rand.Int: %v", err))
	}

	return fmt.Sprintf("%06d", n.Int64()+100000)
}
