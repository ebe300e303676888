package ticket

import (
	"strings"
	"testing"
	"time"
)

func testConfig() *Config {
	return &Config{
		Secret: []byte("test-secret-change-me"),
		Issuer: "talkroom-test",
		TTL:    time.Hour,
	}
}

func TestIssueValidateRoundTrip(t *testing.T) {
	cfg := testConfig()

	tk, err := Issue(cfg, "ABCD", "ALICE")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := Validate(cfg, tk)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Room != "ABCD" || claims.Name != "ALICE" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestValidateRejectsTampered(t *testing.T) {
	cfg := testConfig()

	tk, err := Issue(cfg, "ABCD", "ALICE")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	tampered := tk[:len(tk)-2] + "xx"
	if _, err := Validate(cfg, tampered); err == nil {
		t.Fatal("expected tampered ticket to fail validation")
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	cfg := testConfig()

	tk, err := Issue(cfg, "ABCD", "ALICE")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	other := testConfig()
	other.Secret = []byte("another-secret")
	if _, err := Validate(other, tk); err == nil {
		t.Fatal("expected wrong-secret validation to fail")
	}
}

func TestValidateRejectsExpired(t *testing.T) {
	cfg := testConfig()
	cfg.TTL = -time.Minute

	tk, err := Issue(cfg, "ABCD", "ALICE")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := Validate(cfg, tk); err == nil {
		t.Fatal("expected expired ticket to fail validation")
	}
	if _, err := Validate(cfg, tk); err != nil && !strings.Contains(err.Error(), "parse ticket") {
		t.Fatalf("unexpected error shape: %v", err)
	}
}
