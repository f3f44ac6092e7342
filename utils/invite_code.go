package utils

import (
	"crypto/rand"
)

const inviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// InviteCodeLength is fixed; invite codes are typed by hand between friends.
const InviteCodeLength = 6

// GenerateInviteCode returns a random code over A-Z0-9. Uniqueness is the
// caller's job (retry against the users table).
func GenerateInviteCode() (string, error) {
	buf := make([]byte, InviteCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = inviteCodeAlphabet[int(b)%len(inviteCodeAlphabet)]
	}
	return string(buf), nil
}
