package utils

import "testing"

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("S3curePassw0rd!")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "S3curePassw0rd!" {
		t.Fatal("Hash must not equal the plaintext password")
	}

	if !CheckPasswordHash("S3curePassw0rd!", hash) {
		t.Fatal("Expected matching password to verify")
	}
	if CheckPasswordHash("wrong-password", hash) {
		t.Fatal("Expected non-matching password to fail verification")
	}
}
