package utils

import (
	"math/rand"
	"time"
)

const tempPasswordChars = "abcdefghjkmnpqrstuvwxyzABCDEFGHJKMNPQRSTUVWXYZ23456789"

// GenerateTempPassword generates a random 10-character temporary password
func GenerateTempPassword() string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	password := make([]byte, 10)
	for i := range password {
		password[i] = tempPasswordChars[rng.Intn(len(tempPasswordChars))]
	}
	return string(password)
}
