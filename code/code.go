// Package code generates short room codes that are easy to read aloud.
package code

import (
	"math/rand"
	"strings"
)

// Letters that are easy to confuse (0, O, I, l) are left out.
const letters = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

const Length = 6

func GenerateRandom() string {
	var b strings.Builder
	b.Grow(Length)
	for i := 0; i < Length; i++ {
		b.WriteByte(letters[rand.Intn(len(letters))])
	}
	return b.String()
}

// Valid reports whether s could have been produced by GenerateRandom.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(letters, rune(s[i])) {
			return false
		}
	}
	return true
}
