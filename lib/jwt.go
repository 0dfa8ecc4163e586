package lib

import (
	"cblls_server/structs"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	AccessCookieName  = "cblls_access"
	RefreshCookieName = "cblls_refresh"
	CSRFCookieName    = "csrf"
)

// ParseToken parses and validates a JWT token string and returns the claims
func ParseToken(tokenStr string, secret string) (*structs.AuthClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrInvalidKey
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, fmt.Errorf("invalid sub claim")
	}

	email, ok := claims["email"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid email claim")
	}

	// name is optional, an absent claim decodes to the empty string
	name, _ := claims["name"].(string)

	roleStr, ok := claims["role"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid role claim")
	}

	verified, ok := claims["verified"].(bool)
	if !ok {
		return nil, fmt.Errorf("invalid verified claim")
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, fmt.Errorf("invalid iat claim")
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, fmt.Errorf("invalid exp claim")
	}

	jtiStr, ok := claims["jti"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid jti claim")
	}

	jti, err := uuid.Parse(jtiStr)
	if err != nil {
		return nil, fmt.Errorf("invalid UUID in jti claim: %w", err)
	}

	return &structs.AuthClaims{
		Sub:      sub,
		Email:    email,
		Name:     name,
		Role:     structs.Role(roleStr),
		Verified: verified,
		Iat:      time.Unix(int64(iat), 0),
		Exp:      time.Unix(int64(exp), 0),
		Jti:      jti,
	}, nil
}

// SignToken issues an HS256 session token for the given user.
func SignToken(user *structs.User, expiry time.Time, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      user.Uid,
		"email":    user.Email,
		"name":     user.Name,
		"role":     string(user.Role),
		"verified": user.Verified,
		"iat":      time.Now().Unix(),
		"exp":      expiry.Unix(),
		"jti":      uuid.New().String(),
	})
	return token.SignedString([]byte(secret))
}

func ExtractClaims(r *http.Request, secret string) (*structs.AuthClaims, error) {
	accessToken, err := GetCookieValue(AccessCookieName, r)
	if err != nil {
		return nil, err
	}

	claims, err := ParseToken(accessToken, secret)
	if err != nil {
		return nil, err
	}

	return claims, nil
}
