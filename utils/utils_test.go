package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateTempPassword(t *testing.T) {
	password := GenerateTempPassword()
	assert.Len(t, password, 10)

	for _, r := range password {
		assert.True(t, strings.ContainsRune(tempPasswordChars, r), "unexpected character %q", r)
	}
}
