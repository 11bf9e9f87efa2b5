package utils

import (
	"fmt"
	"math/rand"
	"time"
)

var rng = rand.New(rand.NewSource(time.Now().UnixNano()))

// GenClaimNumber generates a human-readable claim number.
func GenClaimNumber() string {
	chars := "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	code := make([]byte, 6)
	for i := range code {
		code[i] = chars[rng.Intn(len(chars))]
	}
	return fmt.Sprintf("CLM-%s-%s", time.Now().Format("20060102"), code)
}
