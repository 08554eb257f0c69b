package auth

import "testing"

func TestIssueAndRevoke(t *testing.T) {
	registry := NewRegistry()

	identity := registry.IssueAnonymous()
	if identity == "" {
		t.Fatal("expected non-empty identity")
	}
	if !registry.Valid(identity) {
		t.Fatal("freshly issued identity must be valid")
	}

	other := registry.IssueAnonymous()
	if other == identity {
		t.Fatal("identities must be unique")
	}

	registry.Revoke(identity)
	if registry.Valid(identity) {
		t.Fatal("revoked identity must be invalid")
	}
	if !registry.Valid(other) {
		t.Fatal("revoking one identity must not affect another")
	}
}

func TestValidEmptyIdentity(t *testing.T) {
	if NewRegistry().Valid("") {
		t.Fatal("empty identity is never valid")
	}
}
