package handler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterValidateNormalizes(t *testing.T) {
	req := registerReq{Username: "  ana  ", Email: " Ana@Example.COM ", Password: "supersecret"}
	assert.Empty(t, req.validate())
	assert.Equal(t, "ana", req.Username)
	assert.Equal(t, "ana@example.com", req.Email)
}

func TestRegisterValidateUsernameBounds(t *testing.T) {
	req := registerReq{Username: "ab", Email: "a@b.com", Password: "supersecret"}
	assert.Contains(t, fieldNames(req.validate()), "username")

	req.Username = strings.Repeat("u", 51)
	assert.Contains(t, fieldNames(req.validate()), "username")

	req.Username = strings.Repeat("u", 50)
	assert.Empty(t, req.validate())
}

func TestRegisterValidateEmail(t *testing.T) {
	for _, raw := range []string{"", "no-at-sign", "two words@example.com"} {
		req := registerReq{Username: "ana", Email: raw, Password: "supersecret"}
		assert.Contains(t, fieldNames(req.validate()), "email", "input %q", raw)
	}
}

func TestRegisterValidatePasswordBounds(t *testing.T) {
	req := registerReq{Username: "ana", Email: "a@b.com", Password: "short"}
	assert.Contains(t, fieldNames(req.validate()), "password")

	req.Password = strings.Repeat("p", 101)
	assert.Contains(t, fieldNames(req.validate()), "password")

	req.Password = "12345678"
	assert.Empty(t, req.validate())
}
