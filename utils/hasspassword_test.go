package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassNeverStoresPlaintext(t *testing.T) {
	stored, err := HashPass("correct horse battery staple")
	require.NoError(t, err)

	assert.NotEqual(t, "correct horse battery staple", stored)
	assert.NotContains(t, stored, "correct horse")
	assert.True(t, strings.Contains(stored, "."), "stored value should be salt.hash")
}

func TestHashPassSaltsDiffer(t *testing.T) {
	a, err := HashPass("password123")
	require.NoError(t, err)
	b, err := HashPass("password123")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestComparePass(t *testing.T) {
	stored, err := HashPass("password123")
	require.NoError(t, err)

	assert.NoError(t, ComparePass("password123", stored))
	assert.ErrorIs(t, ComparePass("password124", stored), ErrWrongPassword)
	assert.ErrorIs(t, ComparePass("", stored), ErrWrongPassword)
}

func TestComparePassMalformedStored(t *testing.T) {
	tests := []struct {
		name   string
		stored string
	}{
		{"no separator", "abcdef"},
		{"empty", ""},
		{"bad base64 salt", "!!!.aGVsbG8="},
		{"bad base64 hash", "aGVsbG8=.!!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, ComparePass("password123", tt.stored), ErrWrongPassword)
		})
	}
}
