package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// VerificationCodeKey returns the cache key for an email verification code.
func (r *CacheKeyStruct) VerificationCodeKey(email string) string {
	return fmt.Sprintf("verify:%s", email)
}

// PasswordResetKey returns the cache key for a password reset code.
func (r *CacheKeyStruct) PasswordResetKey(email string) string {
	return fmt.Sprintf("pwreset:%s", email)
}

var CacheKey = NewCacheKeyStruct()
