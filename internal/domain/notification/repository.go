package notification

import "context"

type Repository interface {
	CreateBatch(ctx context.Context, notifications []Notification) error
	List(ctx context.Context, memberID string, filter ListFilter) ([]Notification, int64, error)
	MarkRead(ctx context.Context, memberID, notificationID string) (bool, error)
	MarkAllRead(ctx context.Context, memberID string) (int64, error)
	ListMessMemberIDs(ctx context.Context, messID string) ([]string, error)
}
