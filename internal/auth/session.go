// internal/auth/session.go
package auth

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// privateKey and publicKey are used for signing and verifying seat tokens.
var (
	privateKey ed25519.PrivateKey
	publicKey  ed25519.PublicKey

	// tokenExpire is the seat token lifetime (0 => never).
	tokenExpire time.Duration
)

var ErrInvalidToken = errors.New("invalid seat token")

// Init generates a fresh ed25519 key pair at runtime and sets the token expiration.
func Init(expire time.Duration) error {
	var err error
	publicKey, privateKey, err = ed25519.GenerateKey(nil)
	if err != nil {
		return fmt.Errorf("failed to generate ed25519 key pair: %w", err)
	}
	tokenExpire = expire
	return nil
}

// InitFromPath reads ed25519 private/public keys from file and sets the token expiration.
func InitFromPath(privatePath, publicPath string, expire time.Duration) error {
	privateKeyData, err := os.ReadFile(privatePath)
	if err != nil {
		return fmt.Errorf("failed to read private key file: %w", err)
	}
	publicKeyData, err := os.ReadFile(publicPath)
	if err != nil {
		return fmt.Errorf("failed to read public key file: %w", err)
	}
	if len(privateKeyData) != ed25519.PrivateKeySize || len(publicKeyData) != ed25519.PublicKeySize {
		return fmt.Errorf("ed25519 key files have the wrong size")
	}

	privateKey = ed25519.PrivateKey(privateKeyData)
	publicKey = ed25519.PublicKey(publicKeyData)
	tokenExpire = expire
	return nil
}

// CreateSeatToken signs a token with "sub" = userID and "gid" = gameID. It admits the
// holder to that one game.
func CreateSeatToken(userID, gameID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"gid": gameID.String(),
		"iat": time.Now().Unix(),
	}
	if tokenExpire > 0 {
		claims["exp"] = time.Now().Add(tokenExpire).Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	return token.SignedString(privateKey)
}

// AuthenticateSeatToken verifies a seat token and returns its user and game ids.
func AuthenticateSeatToken(tokenString string) (userID, gameID uuid.UUID, err error) {
	t, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodEd25519); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return publicKey, nil
	})
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !t.Valid {
		return uuid.Nil, uuid.Nil, ErrInvalidToken
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, uuid.Nil, fmt.Errorf("%w: bad claims", ErrInvalidToken)
	}
	userID, err = uuidClaim(claims, "sub")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	gameID, err = uuidClaim(claims, "gid")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return userID, gameID, nil
}

func uuidClaim(claims jwt.MapClaims, name string) (uuid.UUID, error) {
	s, ok := claims[name].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: missing %s", ErrInvalidToken, name)
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s: %v", ErrInvalidToken, name, err)
	}
	return id, nil
}
