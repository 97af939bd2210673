package services

import (
	"errors"
	"fmt"
	"time"

	"main/utils"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("token is invalid or expired")

// TokenClaims is the identity carried by both access and refresh tokens.
type TokenClaims struct {
	UserID   string
	Username string
}

// GenerateToken issues a short-lived access token for the user.
func GenerateToken(userID, username string) (string, error) {
	expirationTime := time.Now().Add(time.Duration(utils.JWTExpirationTime) * time.Second)

	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"exp":      expirationTime.Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(utils.JWTSecretKey))
}

// GenerateRefreshToken issues a long-lived refresh token carrying the same
// identity claims plus a type discriminator so it cannot pass as an access
// token.
func GenerateRefreshToken(userID, username string) (string, error) {
	expirationTime := time.Now().Add(time.Duration(utils.RefreshTokenExpirationTime) * time.Second)

	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"type":     "refresh",
		"exp":      expirationTime.Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(utils.JWTRefreshSecret))
}

// VerifyAccessToken validates signature, expiration and token type, and
// returns the identity claims.
func VerifyAccessToken(tokenString string) (*TokenClaims, error) {
	return verify(tokenString, utils.JWTSecretKey, "")
}

// VerifyRefreshToken validates a refresh token against the refresh secret.
func VerifyRefreshToken(tokenString string) (*TokenClaims, error) {
	return verify(tokenString, utils.JWTRefreshSecret, "refresh")
}

func verify(tokenString, secret, wantType string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["user_id"] == nil || claims["exp"] == nil {
		return nil, ErrInvalidToken
	}

	tokenType, _ := claims["type"].(string)
	if tokenType != wantType {
		return nil, ErrInvalidToken
	}

	// jwt.Parse already rejects expired tokens; this guards tokens with a
	// malformed exp claim that slipped past the parser.
	if exp, ok := claims["exp"].(float64); !ok || time.Now().Unix() > int64(exp) {
		return nil, ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, ErrInvalidToken
	}
	username, _ := claims["username"].(string)

	return &TokenClaims{UserID: userID, Username: username}, nil
}
