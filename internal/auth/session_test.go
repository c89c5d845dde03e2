// internal/auth/session_test.go
package auth

import (
	"crypto/ed25519"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatTokenRoundTrip(t *testing.T) {
	require.NoError(t, Init(0))
	user, gid := uuid.New(), uuid.New()

	tok, err := CreateSeatToken(user, gid)
	require.NoError(t, err)

	gotUser, gotGame, err := AuthenticateSeatToken(tok)
	require.NoError(t, err)
	assert.Equal(t, user, gotUser)
	assert.Equal(t, gid, gotGame)
}

func TestSeatTokenExpired(t *testing.T) {
	require.NoError(t, Init(time.Hour))
	tok, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, jwt.MapClaims{
		"sub": uuid.NewString(),
		"gid": uuid.NewString(),
		"exp": time.Now().Add(-time.Minute).Unix(),
	}).SignedString(privateKey)
	require.NoError(t, err)
	_, _, err = AuthenticateSeatToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSeatTokenRejectsForeignKey(t *testing.T) {
	require.NoError(t, Init(0))
	tok, err := CreateSeatToken(uuid.New(), uuid.New())
	require.NoError(t, err)

	require.NoError(t, Init(0))
	_, _, err = AuthenticateSeatToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSeatTokenRejectsHMAC(t *testing.T) {
	require.NoError(t, Init(0))
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": uuid.NewString(),
		"gid": uuid.NewString(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, _, err = AuthenticateSeatToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSeatTokenMissingGame(t *testing.T) {
	require.NoError(t, Init(0))
	tok, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, jwt.MapClaims{
		"sub": uuid.NewString(),
	}).SignedString(privateKey)
	require.NoError(t, err)
	_, _, err = AuthenticateSeatToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestInitFromPath(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	dir := t.TempDir()
	privPath := filepath.Join(dir, "key")
	pubPath := filepath.Join(dir, "key.pub")
	require.NoError(t, os.WriteFile(privPath, priv, 0o600))
	require.NoError(t, os.WriteFile(pubPath, pub, 0o644))

	require.NoError(t, InitFromPath(privPath, pubPath, time.Hour))
	tok, err := CreateSeatToken(uuid.New(), uuid.New())
	require.NoError(t, err)
	_, _, err = AuthenticateSeatToken(tok)
	assert.NoError(t, err)

	assert.Error(t, InitFromPath(filepath.Join(dir, "missing"), pubPath, 0))
}
