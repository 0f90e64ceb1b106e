package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTTL(t *testing.T) {
	tests := map[string]time.Duration{
		"":    24 * time.Hour,
		"15m": 15 * time.Minute,
		"2h":  2 * time.Hour,
		"20s": 20 * time.Second,
		"30":  30 * time.Minute,
	}
	for in, want := range tests {
		got, err := ParseTTL(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseTTL("soon")
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	token, exp, err := GenerateToken(42, "auth", "secret", time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	claims, err := VerifyToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.SubjectInt())
	assert.Equal(t, "auth", claims.Username)

	_, err = VerifyToken(token, "other-secret")
	assert.Error(t, err)
}

func TestTokenRequiresSecret(t *testing.T) {
	_, _, err := GenerateToken(1, "auth", "", time.Hour)
	assert.Error(t, err)

	_, err = VerifyToken("x", "")
	assert.Error(t, err)
}

func TestExpiredToken(t *testing.T) {
	token, _, err := GenerateToken(1, "auth", "secret", -time.Minute)
	require.NoError(t, err)

	_, err = VerifyToken(token, "secret")
	assert.Error(t, err)
}

func TestLoginURL(t *testing.T) {
	assert.Equal(t, "/login/?next=/create/", LoginURL("/create/"))
	assert.Equal(t, "/login/?next=/posts/5/edit/", LoginURL("/posts/5/edit/"))
	assert.Equal(t, "/login/?next=/%3Fpage%3D2%26x%3D1", LoginURL("/?page=2&x=1"))
}

func TestSafeNext(t *testing.T) {
	assert.Equal(t, "/create/", SafeNext("/create/", "/"))
	assert.Equal(t, "/", SafeNext("", "/"))
	assert.Equal(t, "/", SafeNext("https://evil.example/", "/"))
	assert.Equal(t, "/", SafeNext("//evil.example/", "/"))
}
