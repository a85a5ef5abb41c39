package mess

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	GetMess(ctx context.Context, messID string) (*Mess, error)
	GetMessByCode(ctx context.Context, code string) (*Mess, error)
	GetMember(ctx context.Context, memberID string) (*Member, error)
	ListMembers(ctx context.Context, messID string) ([]Member, error)
	CountMembers(ctx context.Context, messID string) (int64, error)
	CreateMess(ctx context.Context, m *Mess) error
	CreateMember(ctx context.Context, member *Member) error
	UpdateMemberMess(ctx context.Context, memberID string, messID *string, role string) error
	UpdateMemberRole(ctx context.Context, memberID, role string) error
	UpdateMemberProfile(ctx context.Context, memberID, name, email string) error
	DeleteMess(ctx context.Context, messID string) error
	IsCodeTaken(ctx context.Context, code string) (bool, error)
}
