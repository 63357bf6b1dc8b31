package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTTL = 5 * time.Hour

func newTestManager(secret string) *TokenManager {
	return NewTokenManager(secret, "jobportal-test", testTTL)
}

func TestMintDecodeRoundTrip(t *testing.T) {
	tm := newTestManager("test-secret")
	now := time.Unix(1_700_000_000, 0)
	roles := []string{"ROLE_STUDENT", "ROLE_ADMIN"}

	token, err := tm.Mint("ann@x.com", roles, now)
	require.NoError(t, err)

	claims, err := tm.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", claims.Subject)
	assert.Equal(t, roles, claims.Roles)
	assert.Equal(t, now.Add(testTTL).Unix(), claims.ExpiresAt.Unix())
}

func TestDecodeWrongKey(t *testing.T) {
	token, err := newTestManager("key-one").Mint("ann@x.com", []string{"ROLE_STUDENT"}, time.Now())
	require.NoError(t, err)

	_, err = newTestManager("key-two").Decode(token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestDecodeTamperedSignature(t *testing.T) {
	tm := newTestManager("test-secret")
	token, err := tm.Mint("ann@x.com", []string{"ROLE_STUDENT"}, time.Now())
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = tm.Decode(tampered)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestDecodeMalformed(t *testing.T) {
	tm := newTestManager("test-secret")
	for _, token := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, err := tm.Decode(token)
		assert.ErrorIs(t, err, ErrMalformedToken, "token %q", token)
	}
}

func TestClaimsExpiredBoundary(t *testing.T) {
	tm := newTestManager("test-secret")
	minted := time.Unix(1_700_000_000, 0)
	expiry := minted.Add(testTTL)

	token, err := tm.Mint("ann@x.com", []string{"ROLE_STUDENT"}, minted)
	require.NoError(t, err)

	claims, err := tm.Decode(token)
	require.NoError(t, err)

	assert.False(t, claims.Expired(minted), "fresh token must not be expired")
	assert.False(t, claims.Expired(expiry), "expiry exactly equal to now is not expired")
	assert.True(t, claims.Expired(expiry.Add(time.Second)), "past expiry must be expired")
}

func TestDecodeDoesNotEnforceExpiry(t *testing.T) {
	tm := newTestManager("test-secret")
	minted := time.Now().Add(-2 * testTTL)

	token, err := tm.Mint("ann@x.com", []string{"ROLE_STUDENT"}, minted)
	require.NoError(t, err)

	claims, err := tm.Decode(token)
	require.NoError(t, err, "decode verifies the signature; expiry is the caller's check")
	assert.True(t, claims.Expired(time.Now()))
}
