package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCouponCode(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 1000; i++ {
		code := GenerateCouponCode()
		require.Len(t, code, CouponCodeLength)

		for _, char := range code {
			assert.True(t, strings.ContainsRune(couponCharset, char),
				"code %q contains %q outside the charset", code, char)
		}

		seen[code] = true
	}

	// Collisions over 1000 draws from a 31^10 space would mean the
	// generator is broken.
	assert.Len(t, seen, 1000)
}

func TestCouponCharsetExcludesAmbiguousGlyphs(t *testing.T) {
	for _, ambiguous := range "0O1IL" {
		assert.False(t, strings.ContainsRune(couponCharset, ambiguous))
	}
}

func TestGenerateRandomString(t *testing.T) {
	value := GenerateRandomString(32)
	assert.Len(t, value, 32)
	assert.NotEqual(t, value, GenerateRandomString(32))
}
