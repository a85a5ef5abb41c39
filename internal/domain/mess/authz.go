package mess

import "context"

// Authorization predicates shared by every gated operation. Handlers call
// these once and pass the resolved member/mess down; no operation does its
// own ad hoc role check.

// RequireMember resolves the caller and fails unless they belong to a mess.
func (s *Service) RequireMember(ctx context.Context, memberID string) (*Member, error) {
	return requireMember(ctx, s.repo, memberID)
}

// RequireAdmin resolves the caller and fails unless they are an admin of
// their own mess. Admin rights never extend to another mess.
func (s *Service) RequireAdmin(ctx context.Context, memberID string) (*Member, error) {
	return requireAdmin(ctx, s.repo, memberID)
}

func requireMember(ctx context.Context, repo Repository, memberID string) (*Member, error) {
	member, err := repo.GetMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member.MessID == nil {
		return nil, ErrNotInMess
	}
	return member, nil
}

func requireAdmin(ctx context.Context, repo Repository, memberID string) (*Member, error) {
	member, err := requireMember(ctx, repo, memberID)
	if err != nil {
		return nil, err
	}
	if !member.IsAdmin() {
		return nil, ErrAdminRequired
	}
	return member, nil
}
