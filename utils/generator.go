package utils

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
)

const uniqueCodeLength = 10
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const maxCodeAttempts = 16

var ErrCodeSpaceExhausted = errors.New("could not find an unused certificate code")

// GenerateUniqueCode draws random codes until exists reports one unused.
// The unique index on unique_code remains the final arbiter under races.
func GenerateUniqueCode(ctx context.Context, exists func(ctx context.Context, code string) (bool, error)) (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code, err := randomCode()
		if err != nil {
			return "", err
		}

		taken, err := exists(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrCodeSpaceExhausted
}

func randomCode() (string, error) {
	alphabet := big.NewInt(int64(len(letterBytes)))
	b := make([]byte, uniqueCodeLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, alphabet)
		if err != nil {
			return "", err
		}
		b[i] = letterBytes[n.Int64()]
	}
	return string(b), nil
}
