package auth

import (
	"fmt"
	"time"

	jwtlib "github.com/dgrijalva/jwt-go"
)

// TokenTTL is the fixed lifetime of an issued token. Expiry is the only
// lifecycle control; there is no revocation list.
const TokenTTL = 30 * time.Minute

// IssueToken signs a bearer token binding the username as identity.
func IssueToken(username, secret string) (string, error) {
	token := jwtlib.New(jwtlib.GetSigningMethod("HS256"))
	token.Claims = jwtlib.MapClaims{
		"sub": username,
		"exp": time.Now().Add(TokenTTL).Unix(),
	}
	return token.SignedString([]byte(secret))
}

// VerifyToken validates a raw token string and returns the bound identity.
func VerifyToken(raw, secret string) (string, error) {
	token, err := jwtlib.Parse(raw, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return sub, nil
}
