// Package tenant resolves the company a user acts for and gates every
// downstream query on it. All data access goes through a resolved
// Scope; an unresolved scope short-circuits to empty results instead
// of ever issuing an unscoped query.
package tenant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mhzindev/sunsetflow/internal/core"
)

// ErrNoTenantAssociation marks a user without a linked company. The
// HTTP layer renders this as a restricted-access state, not a hard
// failure.
var ErrNoTenantAssociation = errors.New("user has no company association")

// Scope identifies the tenant a request operates on and what the user
// may do inside it.
type Scope struct {
	TenantID    string
	AccessLevel core.AccessLevel
}

// Resolved reports whether the scope carries a usable tenant.
func (s Scope) Resolved() bool {
	return s.TenantID != "" && s.AccessLevel != core.AccessNone
}

// ProfileReader is the slice of the store the resolver needs.
type ProfileReader interface {
	GetProfileByUser(ctx context.Context, userID string) (*core.Profile, error)
}

type Resolver struct {
	profiles ProfileReader
}

func NewResolver(profiles ProfileReader) *Resolver {
	return &Resolver{profiles: profiles}
}

// Resolve maps a user id onto a tenant scope. Users without a company
// resolve to ErrNoTenantAssociation; lookups that fail for other
// reasons keep their original error kind.
func (r *Resolver) Resolve(ctx context.Context, userID string) (Scope, error) {
	if strings.TrimSpace(userID) == "" {
		return Scope{}, ErrNoTenantAssociation
	}

	profile, err := r.profiles.GetProfileByUser(ctx, userID)
	if err != nil {
		if core.KindOf(err) == core.KindNotFound {
			return Scope{}, ErrNoTenantAssociation
		}
		return Scope{}, fmt.Errorf("resolve tenant for user %s: %w", userID, err)
	}

	if profile.TenantID == "" || profile.AccessLevel == core.AccessNone {
		slog.DebugContext(ctx, "User has no tenant association", "user_id", userID)
		return Scope{}, ErrNoTenantAssociation
	}

	return Scope{TenantID: profile.TenantID, AccessLevel: profile.AccessLevel}, nil
}
