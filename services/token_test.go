package services

import (
	"os"
	"testing"

	"main/utils"
)

func TestMain(m *testing.M) {
	os.Setenv("GO_ENV", "test")
	utils.InitJWT()
	os.Exit(m.Run())
}

func TestAccessTokenRoundtrip(t *testing.T) {
	token, err := GenerateToken("user-1", "alice")
	if err != nil {
		t.Fatal(err)
	}

	claims, err := VerifyAccessToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != "user-1" || claims.Username != "alice" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestRefreshTokenRoundtrip(t *testing.T) {
	token, err := GenerateRefreshToken("user-1", "alice")
	if err != nil {
		t.Fatal(err)
	}

	claims, err := VerifyRefreshToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != "user-1" || claims.Username != "alice" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestRefreshTokenRejectedAsAccessToken(t *testing.T) {
	token, err := GenerateRefreshToken("user-1", "alice")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := VerifyAccessToken(token); err == nil {
		t.Error("refresh token accepted as access token")
	}
}

func TestAccessTokenRejectedAsRefreshToken(t *testing.T) {
	token, err := GenerateToken("user-1", "alice")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := VerifyRefreshToken(token); err == nil {
		t.Error("access token accepted as refresh token")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	saved := utils.JWTExpirationTime
	utils.JWTExpirationTime = -60
	defer func() { utils.JWTExpirationTime = saved }()

	token, err := GenerateToken("user-1", "alice")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := VerifyAccessToken(token); err == nil {
		t.Error("expired token verified")
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	token, err := GenerateToken("user-1", "alice")
	if err != nil {
		t.Fatal(err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := VerifyAccessToken(tampered); err == nil {
		t.Error("tampered token verified")
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	if _, err := VerifyAccessToken("not.a.token"); err == nil {
		t.Error("garbage token verified")
	}
}
