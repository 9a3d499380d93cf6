package core

import "golang.org/x/crypto/bcrypt"

// maxPasswordBytes is the bcrypt input limit.
const maxPasswordBytes = 72

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(pw []byte) ([]byte, error)
	Compare(hash, pw []byte) error
}

type BcryptHasher struct{}

func (BcryptHasher) Hash(pw []byte) ([]byte, error) {
	return bcrypt.GenerateFromPassword(pw, bcrypt.DefaultCost)
}

func (BcryptHasher) Compare(hash, pw []byte) error {
	return bcrypt.CompareHashAndPassword(hash, pw)
}
