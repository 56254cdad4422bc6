package utils

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strings"

	"golang.org/x/crypto/argon2"
)

var ErrWrongPassword = errors.New("incorrect password")

// ComparePass checks a candidate password against a stored "salt.hash"
// value in constant time. Any malformed stored value is reported as a
// mismatch rather than an internal error so login keeps a single failure
// path.
func ComparePass(password, stored string) error {
	salt, hash, err := decodeStored(stored)
	if err != nil {
		return ErrWrongPassword
	}

	candidate := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	if len(hash) != len(candidate) || subtle.ConstantTimeCompare(hash, candidate) != 1 {
		return ErrWrongPassword
	}
	return nil
}

func decodeStored(stored string) (salt, hash []byte, err error) {
	saltPart, hashPart, ok := strings.Cut(stored, ".")
	if !ok {
		return nil, nil, errors.New("invalid hash format")
	}
	salt, err = base64.StdEncoding.DecodeString(saltPart)
	if err != nil {
		return nil, nil, err
	}
	hash, err = base64.StdEncoding.DecodeString(hashPart)
	if err != nil {
		return nil, nil, err
	}
	return salt, hash, nil
}
