package mess

import (
	"context"
	"errors"

	messdomain "mess-manager-go/internal/domain/mess"

	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(messdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GetMess(ctx context.Context, messID string) (*messdomain.Mess, error) {
	var m messdomain.Mess
	if err := r.db.WithContext(ctx).Where("id = ?", messID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, messdomain.ErrMessNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *PostgresRepository) GetMessByCode(ctx context.Context, code string) (*messdomain.Mess, error) {
	var m messdomain.Mess
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, messdomain.ErrMessCodeNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *PostgresRepository) GetMember(ctx context.Context, memberID string) (*messdomain.Member, error) {
	var member messdomain.Member
	if err := r.db.WithContext(ctx).Where("id = ?", memberID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, messdomain.ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *PostgresRepository) ListMembers(ctx context.Context, messID string) ([]messdomain.Member, error) {
	var members []messdomain.Member
	if err := r.db.WithContext(ctx).
		Where("mess_id = ?", messID).
		Order("created_at asc").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *PostgresRepository) CountMembers(ctx context.Context, messID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&messdomain.Member{}).
		Where("mess_id = ?", messID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) CreateMess(ctx context.Context, m *messdomain.Mess) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *PostgresRepository) CreateMember(ctx context.Context, member *messdomain.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *PostgresRepository) UpdateMemberMess(ctx context.Context, memberID string, messID *string, role string) error {
	return r.db.WithContext(ctx).
		Model(&messdomain.Member{}).
		Where("id = ?", memberID).
		Updates(map[string]interface{}{
			"mess_id": messID,
			"role":    role,
		}).Error
}

func (r *PostgresRepository) UpdateMemberRole(ctx context.Context, memberID, role string) error {
	return r.db.WithContext(ctx).
		Model(&messdomain.Member{}).
		Where("id = ?", memberID).
		Update("role", role).Error
}

func (r *PostgresRepository) UpdateMemberProfile(ctx context.Context, memberID, name, email string) error {
	return r.db.WithContext(ctx).
		Model(&messdomain.Member{}).
		Where("id = ?", memberID).
		Updates(map[string]interface{}{
			"name":  name,
			"email": email,
		}).Error
}

func (r *PostgresRepository) DeleteMess(ctx context.Context, messID string) error {
	return r.db.WithContext(ctx).Delete(&messdomain.Mess{}, "id = ?", messID).Error
}

func (r *PostgresRepository) IsCodeTaken(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&messdomain.Mess{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
