package auth

import (
	"errors"
	"testing"
	"time"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	p := &Principal{Username: "Domenico", Clinics: []string{"pta_centro", "villa_ginestre"}}
	token, err := svc.Issue(p)
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	got, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if got.Username != "Domenico" {
		t.Errorf("expected username Domenico, got %s", got.Username)
	}
	if len(got.Clinics) != 2 {
		t.Fatalf("expected 2 clinics, got %d", len(got.Clinics))
	}
	if got.Clinics[0] != "pta_centro" || got.Clinics[1] != "villa_ginestre" {
		t.Errorf("unexpected clinics: %v", got.Clinics)
	}
}

func TestTokenService_VerifyExpired(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute)

	token, err := svc.Issue(&Principal{Username: "Giovanna", Clinics: []string{"pta_centro"}})
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	_, err = svc.Verify(token)
	if !errors.Is(err, ErrExpiredToken) {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestTokenService_VerifyGarbage(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	_, err := svc.Verify("not.a.token")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_VerifyWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := issuer.Issue(&Principal{Username: "Oriana", Clinics: []string{"pta_centro"}})
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	_, err = verifier.Verify(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestPrincipal_CanAccess(t *testing.T) {
	p := &Principal{Username: "Giovanna", Clinics: []string{"pta_centro"}}

	if !p.CanAccess("pta_centro") {
		t.Error("expected access to pta_centro")
	}
	if p.CanAccess("villa_ginestre") {
		t.Error("expected no access to villa_ginestre")
	}
	if err := p.Authorize("villa_ginestre"); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
	if err := p.Authorize("pta_centro"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestPrincipal_ID(t *testing.T) {
	cases := []struct {
		username string
		want     string
	}{
		{"Domenico", "domenico"},
		{"G.Domenico", "g_domenico"},
	}
	for _, tc := range cases {
		p := &Principal{Username: tc.username}
		if got := p.ID(); got != tc.want {
			t.Errorf("ID(%q) = %q, want %q", tc.username, got, tc.want)
		}
	}
}
