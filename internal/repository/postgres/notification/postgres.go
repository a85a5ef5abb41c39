package notification

import (
	"context"

	messdomain "mess-manager-go/internal/domain/mess"
	notificationdomain "mess-manager-go/internal/domain/notification"

	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateBatch(ctx context.Context, notifications []notificationdomain.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&notifications).Error
}

func (r *PostgresRepository) List(ctx context.Context, memberID string, filter notificationdomain.ListFilter) ([]notificationdomain.Notification, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&notificationdomain.Notification{}).
		Where("member_id = ?", memberID)
	if filter.UnreadOnly {
		query = query.Where("is_read = false")
	}

	var unread int64
	if err := r.db.WithContext(ctx).
		Model(&notificationdomain.Notification{}).
		Where("member_id = ? AND is_read = false", memberID).
		Count(&unread).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at desc")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var items []notificationdomain.Notification
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, unread, nil
}

func (r *PostgresRepository) MarkRead(ctx context.Context, memberID, notificationID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&notificationdomain.Notification{}).
		Where("id = ? AND member_id = ?", notificationID, memberID).
		Update("is_read", true)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) MarkAllRead(ctx context.Context, memberID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&notificationdomain.Notification{}).
		Where("member_id = ? AND is_read = false", memberID).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *PostgresRepository) ListMessMemberIDs(ctx context.Context, messID string) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&messdomain.Member{}).
		Where("mess_id = ?", messID).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
