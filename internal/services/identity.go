package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
)

// IdentityResolver derives the opaque voter identifier used for vote
// deduplication. Authenticated requests resolve to "user-<id>";
// anonymous requests resolve to a salted one-way hash of the client
// address so raw addresses are never stored.
type IdentityResolver struct {
	salt string
}

func NewIdentityResolver(salt string) *IdentityResolver {
	return &IdentityResolver{salt: salt}
}

// ResolveVoter always produces a value. An unavailable client address
// degrades to the hash of the empty string: every such client shares
// one identity and gets one collective vote per poll. Known
// limitation, kept deliberately rather than silently rejected.
func (r *IdentityResolver) ResolveVoter(ctx context.Context, clientAddr string) string {
	if userID, ok := UserIDFromContext(ctx); ok {
		return "user-" + userID.String()
	}
	sum := sha256.Sum256([]byte(r.salt + clientAddr))
	return "ip-" + hex.EncodeToString(sum[:])
}
