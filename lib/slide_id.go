package lib

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateSlideID generates a banner slide identifier in the format SL-XXXX
// where XXXX is a random 4-character alphanumeric string
func GenerateSlideID() string {
	// Use a local rand.Source + rand.Rand for thread safety
	src := rand.NewSource(time.Now().UnixNano())
	r := rand.New(src)

	const chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	const length = 4

	randomPart := make([]byte, length)
	for i := range randomPart {
		randomPart[i] = chars[r.Intn(len(chars))]
	}

	return fmt.Sprintf("SL-%s", string(randomPart))
}
