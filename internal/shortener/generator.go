package shortener

import (
	"fmt"

	"github.com/jaevor/go-nanoid"
)

// Alphabet is the set of symbols short codes are drawn from.
const Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// DefaultCodeLength is the length of generated codes unless configured otherwise.
const DefaultCodeLength = 6

// CodeGenerator generates candidate short codes.
type CodeGenerator func() string

// NewCodeGenerator returns a generator drawing length symbols uniformly from Alphabet.
// Every call is independent of the previous ones.
func NewCodeGenerator(length int) (CodeGenerator, error) {
	if length < 1 {
		return nil, fmt.Errorf("code length must be positive, got %d", length)
	}

	gen, err := nanoid.CustomASCII(Alphabet, length)
	if err != nil {
		return nil, fmt.Errorf("code generator of length %d: %w", length, err)
	}

	return gen, nil
}
