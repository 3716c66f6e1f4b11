package password

import (
	"errors"
	"testing"
)

func TestGetHash(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "regular password",
			password: "password123",
		},
		{
			name:     "password with special chars",
			password: "p@ssw0rd!@#$%^&*()",
		},
		{
			name:     "unicode password",
			password: "пароль-Test123!",
		},
		{
			name:     "empty password",
			password: "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotHash, err := GetHash(tt.password)

			if (err != nil) != tt.wantErr {
				t.Fatalf("GetHash() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrEmptyPassword) {
					t.Errorf("GetHash() error = %v, want ErrEmptyPassword", err)
				}
				return
			}
			if gotHash == "" || gotHash == tt.password {
				t.Error("GetHash() returned empty or plain hash")
			}
			if err := CompareHash(gotHash, tt.password); err != nil {
				t.Errorf("Generated hash doesn't work with original password: %v", err)
			}
		})
	}
}

func TestMatches(t *testing.T) {
	correctHash, err := GetHash("correct_password")
	if err != nil {
		t.Fatalf("Failed to create test hash: %v", err)
	}

	tests := []struct {
		name        string
		hash        string
		password    string
		shouldMatch bool
	}{
		{
			name:        "matching password",
			hash:        correctHash,
			password:    "correct_password",
			shouldMatch: true,
		},
		{
			name:     "wrong password",
			hash:     correctHash,
			password: "wrong_password",
		},
		{
			name:     "empty password",
			hash:     correctHash,
			password: "",
		},
		{
			name:     "empty hash",
			hash:     "",
			password: "correct_password",
		},
		{
			name:     "garbage hash",
			hash:     "not-a-bcrypt-hash",
			password: "correct_password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.hash, tt.password); got != tt.shouldMatch {
				t.Errorf("Matches() = %v, want %v", got, tt.shouldMatch)
			}
		})
	}
}

func TestGetHash_SamePasswordProducesDifferentHashes(t *testing.T) {
	hash1, err := GetHash("password1")
	if err != nil {
		t.Fatalf("GetHash failed: %v", err)
	}

	hash2, err := GetHash("password1")
	if err != nil {
		t.Fatalf("GetHash failed: %v", err)
	}

	if hash1 == hash2 {
		t.Error("Salted hashes of the same password must differ")
	}
}
