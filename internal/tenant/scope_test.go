package tenant

import (
	"context"
	"errors"
	"testing"

	"github.com/mhzindev/sunsetflow/internal/core"
)

type stubProfiles struct {
	profile *core.Profile
	err     error
}

func (s *stubProfiles) GetProfileByUser(ctx context.Context, userID string) (*core.Profile, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.profile, nil
}

func TestResolve(t *testing.T) {
	cases := []struct {
		name     string
		profiles *stubProfiles
		userID   string
		wantErr  error
		tenantID string
	}{
		{
			name:     "member resolves",
			profiles: &stubProfiles{profile: &core.Profile{ID: "p1", TenantID: "t1", AccessLevel: core.AccessMember}},
			userID:   "u1",
			tenantID: "t1",
		},
		{
			name:     "empty user id",
			profiles: &stubProfiles{},
			userID:   "",
			wantErr:  ErrNoTenantAssociation,
		},
		{
			name:     "unlinked profile",
			profiles: &stubProfiles{profile: &core.Profile{ID: "p1", AccessLevel: core.AccessNone}},
			userID:   "u1",
			wantErr:  ErrNoTenantAssociation,
		},
		{
			name:     "missing profile",
			profiles: &stubProfiles{err: core.NotFoundErr("profile not found")},
			userID:   "u1",
			wantErr:  ErrNoTenantAssociation,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			scope, err := NewResolver(tc.profiles).Resolve(context.Background(), tc.userID)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				if scope.Resolved() {
					t.Fatal("failed resolution must not produce a resolved scope")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if scope.TenantID != tc.tenantID || !scope.Resolved() {
				t.Fatalf("unexpected scope %+v", scope)
			}
		})
	}
}

func TestResolveTransientErrorKeepsKind(t *testing.T) {
	r := NewResolver(&stubProfiles{err: core.TransientErr("backend unavailable", errors.New("dial tcp"))})
	_, err := r.Resolve(context.Background(), "u1")
	if err == nil || core.KindOf(err) != core.KindTransient {
		t.Fatalf("expected transient error, got %v", err)
	}
}
