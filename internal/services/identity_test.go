package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestResolveVoterAuthenticated(t *testing.T) {
	r := NewIdentityResolver("salt")
	userID := uuid.New()
	ctx := WithUserID(context.Background(), userID)

	got := r.ResolveVoter(ctx, "203.0.113.7")
	if got != "user-"+userID.String() {
		t.Errorf("ResolveVoter() = %q, want user-prefixed id", got)
	}
}

func TestResolveVoterAnonymous(t *testing.T) {
	r := NewIdentityResolver("salt")
	ctx := context.Background()

	got := r.ResolveVoter(ctx, "203.0.113.7")
	if !strings.HasPrefix(got, "ip-") {
		t.Fatalf("ResolveVoter() = %q, want ip- prefix", got)
	}
	if strings.Contains(got, "203.0.113.7") {
		t.Error("raw client address leaked into voter identity")
	}

	// Stable for the same address, distinct across addresses.
	if again := r.ResolveVoter(ctx, "203.0.113.7"); again != got {
		t.Errorf("same address resolved differently: %q vs %q", got, again)
	}
	if other := r.ResolveVoter(ctx, "203.0.113.8"); other == got {
		t.Error("distinct addresses resolved to the same identity")
	}
}

func TestResolveVoterSaltChangesIdentity(t *testing.T) {
	ctx := context.Background()
	a := NewIdentityResolver("salt-a").ResolveVoter(ctx, "203.0.113.7")
	b := NewIdentityResolver("salt-b").ResolveVoter(ctx, "203.0.113.7")
	if a == b {
		t.Error("different salts produced the same identity")
	}
}

func TestResolveVoterEmptyAddress(t *testing.T) {
	r := NewIdentityResolver("salt")

	got := r.ResolveVoter(context.Background(), "")
	if !strings.HasPrefix(got, "ip-") || len(got) <= len("ip-") {
		t.Errorf("empty address should still resolve to a hashed identity, got %q", got)
	}
}
