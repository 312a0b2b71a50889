package accounts

import (
	"context"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTPIsSixDigits(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := generateOTP()
		require.NoError(t, err)
		require.Len(t, code, 6)
		assert.NotEqual(t, byte('0'), code[0])
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', code)
		}
	}
}

func TestOTPMatches(t *testing.T) {
	stored := hashOTP("123456")
	assert.True(t, otpMatches("123456", stored))
	assert.False(t, otpMatches("123457", stored))
	assert.False(t, otpMatches("123456", ""))
}

func TestSMTPMailerBuildsMessage(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	m := NewSMTPMailer("smtp.example.com", 587, "user", "pass", `"ResumeCraft" <no-reply@resumecraft.dev>`)
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		assert.NotNil(t, a)
		return nil
	}

	require.NoError(t, m.SendOTP(context.Background(), "ada@example.com", "654321"))
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "no-reply@resumecraft.dev", gotFrom)
	assert.Equal(t, []string{"ada@example.com"}, gotTo)
	assert.True(t, strings.Contains(string(gotMsg), "654321"))
	assert.True(t, strings.Contains(string(gotMsg), "Subject: Your Registration OTP"))
}

func TestHasherClampsCost(t *testing.T) {
	h := NewHasher(99)
	assert.Equal(t, 10, h.Cost)
}
