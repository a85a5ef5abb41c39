package mess

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"mess-manager-go/internal/domain/notification"

	"github.com/google/uuid"
)

const (
	messCodeLength   = 6
	messCodeAttempts = 10
)

type Service struct {
	repo     Repository
	notifier notification.Notifier
}

func NewService(repo Repository, notifier notification.Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// EnsureMember creates or refreshes the member row for an authenticated
// identity. Called from the auth middleware on every request.
func (s *Service) EnsureMember(ctx context.Context, memberID, email, name string) error {
	member, err := s.repo.GetMember(ctx, memberID)
	if err != nil {
		if !errors.Is(err, ErrMemberNotFound) {
			return err
		}
		return s.repo.CreateMember(ctx, &Member{
			ID:    memberID,
			Name:  name,
			Email: email,
			Role:  RoleMember,
		})
	}

	// Blank claims keep the stored profile.
	if name == "" {
		name = member.Name
	}
	if email == "" {
		email = member.Email
	}
	if member.Name != name || member.Email != email {
		return s.repo.UpdateMemberProfile(ctx, memberID, name, email)
	}
	return nil
}

func (s *Service) GetMember(ctx context.Context, memberID string) (*Member, error) {
	return s.repo.GetMember(ctx, memberID)
}

func (s *Service) GetMessByMember(ctx context.Context, memberID string) (*Mess, error) {
	member, err := s.repo.GetMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member.MessID == nil {
		return nil, ErrNotInMess
	}
	return s.repo.GetMess(ctx, *member.MessID)
}

func (s *Service) CreateMess(ctx context.Context, memberID, name string) (*Mess, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	var result Mess
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		member, err := tx.GetMember(ctx, memberID)
		if err != nil {
			return err
		}
		if member.MessID != nil {
			return ErrAlreadyInMess
		}

		code, err := generateUniqueCode(ctx, tx)
		if err != nil {
			return err
		}

		m := Mess{
			ID:        uuid.NewString(),
			Name:      name,
			Code:      code,
			CreatedBy: memberID,
		}
		if err := tx.CreateMess(ctx, &m); err != nil {
			return err
		}

		if err := tx.UpdateMemberMess(ctx, memberID, &m.ID, RoleAdmin); err != nil {
			return err
		}

		result = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *Service) JoinMess(ctx context.Context, memberID, code string) (*Mess, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, fmt.Errorf("code is required")
	}

	var (
		result     Mess
		joinerName string
	)
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		member, err := tx.GetMember(ctx, memberID)
		if err != nil {
			return err
		}
		if member.MessID != nil {
			return ErrAlreadyInMess
		}

		m, err := tx.GetMessByCode(ctx, code)
		if err != nil {
			return err
		}

		if err := tx.UpdateMemberMess(ctx, memberID, &m.ID, RoleMember); err != nil {
			return err
		}

		result = *m
		joinerName = member.Name
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.NotifyMess(ctx, result.ID, notification.Note{
		Title:   "New Member Joined",
		Message: fmt.Sprintf("%s joined the mess.", joinerName),
		Event:   notification.MemberAddedEvent{MemberID: memberID},
	})

	return &result, nil
}

// LeaveMess detaches the member from their mess. Meal and deposit history is
// kept: ledger rows reference the member and mess by id and are never touched.
func (s *Service) LeaveMess(ctx context.Context, memberID string) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		member, err := tx.GetMember(ctx, memberID)
		if err != nil {
			return err
		}
		if member.MessID == nil {
			return ErrNotInMess
		}
		messID := *member.MessID

		if err := tx.UpdateMemberMess(ctx, memberID, nil, RoleMember); err != nil {
			return err
		}

		count, err := tx.CountMembers(ctx, messID)
		if err != nil {
			return err
		}
		if count == 0 {
			return tx.DeleteMess(ctx, messID)
		}
		return nil
	})
}

func (s *Service) ListMembers(ctx context.Context, memberID string) ([]Member, error) {
	member, err := s.repo.GetMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member.MessID == nil {
		return nil, ErrNotInMess
	}
	return s.repo.ListMembers(ctx, *member.MessID)
}

// RemoveMember detaches another member from the caller's mess, admin only.
// Historical meal and deposit records are preserved.
func (s *Service) RemoveMember(ctx context.Context, callerID, targetID string) error {
	if callerID == targetID {
		return ErrCannotRemoveSelf
	}

	var messID, callerName, targetName string
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		caller, err := requireAdmin(ctx, tx, callerID)
		if err != nil {
			return err
		}

		target, err := tx.GetMember(ctx, targetID)
		if err != nil {
			return err
		}
		if !target.InMess(*caller.MessID) {
			return ErrMemberNotFound
		}

		messID = *caller.MessID
		callerName = caller.Name
		targetName = target.Name
		return tx.UpdateMemberMess(ctx, targetID, nil, RoleMember)
	})
	if err != nil {
		return err
	}

	// The target is detached by now, so the mess fan-out reaches only the
	// remaining members; the removed member is told directly.
	s.notifier.NotifyMess(ctx, messID, notification.Note{
		Title:   "Member Removed",
		Message: fmt.Sprintf("%s removed %s from the mess.", callerName, targetName),
		Event:   notification.MemberRemovedEvent{RemovedBy: callerID},
	})
	s.notifier.NotifyMember(ctx, messID, targetID, notification.Note{
		Title:   "Removed from Mess",
		Message: fmt.Sprintf("You have been removed from the mess by %s.", callerName),
		Event:   notification.MemberRemovedEvent{RemovedBy: callerID},
	})

	return nil
}

// PromoteMember grants another member of the caller's mess the admin role.
func (s *Service) PromoteMember(ctx context.Context, callerID, targetID string) error {
	var messID, callerName, targetName string
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		caller, err := requireAdmin(ctx, tx, callerID)
		if err != nil {
			return err
		}

		target, err := tx.GetMember(ctx, targetID)
		if err != nil {
			return err
		}
		if !target.InMess(*caller.MessID) {
			return ErrMemberNotFound
		}

		messID = *caller.MessID
		callerName = caller.Name
		targetName = target.Name
		return tx.UpdateMemberRole(ctx, targetID, RoleAdmin)
	})
	if err != nil {
		return err
	}

	s.notifier.NotifyMember(ctx, messID, targetID, notification.Note{
		Title:   "Promoted to Admin",
		Message: fmt.Sprintf("You have been promoted to admin by %s.", callerName),
		Event:   notification.RoleChangedEvent{MemberID: targetID, Role: RoleAdmin, ChangedBy: callerID},
	})
	s.notifier.NotifyMess(ctx, messID, notification.Note{
		Title:   "New Admin",
		Message: fmt.Sprintf("%s has been promoted to admin.", targetName),
		Event:   notification.RoleChangedEvent{MemberID: targetID, Role: RoleAdmin, ChangedBy: callerID},
	})

	return nil
}

// DemoteMember revokes another admin's role. Self-demotion is refused so a
// mess can never be left without reachable admin rights by accident.
func (s *Service) DemoteMember(ctx context.Context, callerID, targetID string) error {
	if callerID == targetID {
		return ErrCannotDemoteSelf
	}

	var messID, callerName, targetName string
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		caller, err := requireAdmin(ctx, tx, callerID)
		if err != nil {
			return err
		}

		target, err := tx.GetMember(ctx, targetID)
		if err != nil {
			return err
		}
		if !target.InMess(*caller.MessID) {
			return ErrMemberNotFound
		}
		if !target.IsAdmin() {
			return ErrMemberNotAdmin
		}

		messID = *caller.MessID
		callerName = caller.Name
		targetName = target.Name
		return tx.UpdateMemberRole(ctx, targetID, RoleMember)
	})
	if err != nil {
		return err
	}

	s.notifier.NotifyMember(ctx, messID, targetID, notification.Note{
		Title:   "Role Changed",
		Message: fmt.Sprintf("Your admin privileges have been revoked by %s.", callerName),
		Event:   notification.RoleChangedEvent{MemberID: targetID, Role: RoleMember, ChangedBy: callerID},
	})
	s.notifier.NotifyMess(ctx, messID, notification.Note{
		Title:   "Admin Role Changed",
		Message: fmt.Sprintf("%s has been changed to the member role.", targetName),
		Event:   notification.RoleChangedEvent{MemberID: targetID, Role: RoleMember, ChangedBy: callerID},
	})

	return nil
}

func generateUniqueCode(ctx context.Context, repo Repository) (string, error) {
	for i := 0; i < messCodeAttempts; i++ {
		code, err := generateCode(messCodeLength)
		if err != nil {
			return "", err
		}
		taken, err := repo.IsCodeTaken(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrCodeGenerationFailed
}

func generateCode(length int) (string, error) {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	max := big.NewInt(int64(len(alphabet)))

	var builder strings.Builder
	builder.Grow(length)

	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		builder.WriteByte(alphabet[n.Int64()])
	}

	return builder.String(), nil
}
