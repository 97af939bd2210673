package services

import (
	"strings"
	"testing"
)

func TestHashPasswordRoundtrip(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatal(err)
	}

	if hash == "secret123" || !strings.Contains(hash, "$") {
		t.Fatalf("hash %q does not look like salt$hash", hash)
	}

	match, err := VerifyPassword(hash, "secret123")
	if err != nil {
		t.Fatal(err)
	}
	if !match {
		t.Error("correct password did not verify")
	}

	match, err = VerifyPassword(hash, "wrong-password")
	if err != nil {
		t.Fatal(err)
	}
	if match {
		t.Error("wrong password verified")
	}
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	first, err := HashPassword("secret123")
	if err != nil {
		t.Fatal(err)
	}
	second, err := HashPassword("secret123")
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Error("two hashes of the same password share a salt")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	if _, err := VerifyPassword("not-a-valid-hash", "whatever"); err == nil {
		t.Error("expected error for malformed stored hash")
	}
}

func TestComparePasswords(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatal(err)
	}
	if !ComparePasswords(hash, "secret123") {
		t.Error("ComparePasswords rejected the right password")
	}
	if ComparePasswords(hash, "other") {
		t.Error("ComparePasswords accepted the wrong password")
	}
	if ComparePasswords("garbage", "other") {
		t.Error("ComparePasswords accepted a malformed hash")
	}
}
