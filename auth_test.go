package inkwell

import (
	"context"
	"testing"
)

func TestVerify(t *testing.T) {
	s := setupTestStore(t)
	if err := s.SeedCredential(context.Background(), "admin", "correct horse"); err != nil {
		t.Fatalf("SeedCredential failed: %v", err)
	}
	v := NewVerifier(s)

	tok, ok := v.Verify(context.Background(), "admin", "correct horse")
	if !ok {
		t.Fatal("Verify with correct credentials should succeed")
	}
	if !tok.Granted() {
		t.Error("a successful Verify should issue a granted capability")
	}
	if tok.Token() == "" {
		t.Error("issued capability should carry a token")
	}
}

func TestVerifyFailuresAreIndistinguishable(t *testing.T) {
	s := setupTestStore(t)
	if err := s.SeedCredential(context.Background(), "admin", "correct horse"); err != nil {
		t.Fatalf("SeedCredential failed: %v", err)
	}
	v := NewVerifier(s)

	// Wrong password and unknown user come back identical: zero capability,
	// false, no error to inspect.
	wrongPass, ok1 := v.Verify(context.Background(), "admin", "wrong")
	unknownUser, ok2 := v.Verify(context.Background(), "ghost", "anything")

	if ok1 || ok2 {
		t.Fatalf("Verify should fail for both cases, got %v/%v", ok1, ok2)
	}
	if wrongPass.Granted() || unknownUser.Granted() {
		t.Error("failed Verify must not grant a capability")
	}
	if wrongPass != unknownUser {
		t.Error("wrong password and unknown user must return the same zero value")
	}
}

func TestSeedCredentialReplaces(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	if err := s.SeedCredential(ctx, "admin", "old"); err != nil {
		t.Fatalf("SeedCredential failed: %v", err)
	}
	if err := s.SeedCredential(ctx, "admin", "new"); err != nil {
		t.Fatalf("re-seed failed: %v", err)
	}
	v := NewVerifier(s)

	if _, ok := v.Verify(ctx, "admin", "old"); ok {
		t.Error("old password should no longer verify")
	}
	if _, ok := v.Verify(ctx, "admin", "new"); !ok {
		t.Error("new password should verify")
	}
}

func TestCapabilityFromToken(t *testing.T) {
	if CapabilityFromToken("").Granted() {
		t.Error("empty token must yield a denied capability")
	}
	tok := CapabilityFromToken("abc")
	if !tok.Granted() || tok.Token() != "abc" {
		t.Errorf("round trip failed: granted=%v token=%q", tok.Granted(), tok.Token())
	}
}
