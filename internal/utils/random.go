package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const (
	letterBytes  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	numberBytes  = "0123456789"
	alphanumeric = letterBytes + numberBytes

	// couponCharset drops 0/O/1/I/L so codes survive being read aloud or
	// retyped from a screenshot.
	couponCharset = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
)

func GenerateRandomString(length int) string {
	return generateRandom(length, alphanumeric)
}

func generateRandom(length int, charset string) string {
	result := make([]byte, length)
	charsetLength := big.NewInt(int64(len(charset)))

	for i := range result {
		num, _ := rand.Int(rand.Reader, charsetLength)
		result[i] = charset[num.Int64()]
	}

	return string(result)
}

// GenerateCouponCode returns a human-presentable redemption code. Uniqueness
// is enforced by the caller against the coupon collection before insert.
func GenerateCouponCode() string {
	return strings.ToUpper(generateRandom(CouponCodeLength, couponCharset))
}

