package notification

import (
	"context"
	"encoding/json"

	"mess-manager-go/pkg/logger"

	"github.com/google/uuid"
)

// Notifier is the fire-and-forget delivery interface the other domains use.
// Delivery failures are logged, never propagated: group activity must not
// fail because a notification could not be written.
type Notifier interface {
	NotifyMember(ctx context.Context, messID, memberID string, note Note)
	NotifyMess(ctx context.Context, messID string, note Note)
}

type Service struct {
	repo Repository
	log  logger.Logger
}

func NewService(repo Repository, log logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) NotifyMember(ctx context.Context, messID, memberID string, note Note) {
	record, err := buildNotification(messID, memberID, note)
	if err != nil {
		s.log.InternalError("notification: build failed", err, "mess_id", messID, "member_id", memberID)
		return
	}
	if err := s.repo.CreateBatch(ctx, []Notification{record}); err != nil {
		s.log.InternalError("notification: create failed", err, "mess_id", messID, "member_id", memberID)
	}
}

func (s *Service) NotifyMess(ctx context.Context, messID string, note Note) {
	memberIDs, err := s.repo.ListMessMemberIDs(ctx, messID)
	if err != nil {
		s.log.InternalError("notification: list members failed", err, "mess_id", messID)
		return
	}
	if len(memberIDs) == 0 {
		return
	}

	records := make([]Notification, 0, len(memberIDs))
	for _, memberID := range memberIDs {
		record, err := buildNotification(messID, memberID, note)
		if err != nil {
			s.log.InternalError("notification: build failed", err, "mess_id", messID, "member_id", memberID)
			return
		}
		records = append(records, record)
	}

	if err := s.repo.CreateBatch(ctx, records); err != nil {
		s.log.InternalError("notification: batch create failed", err, "mess_id", messID, "count", len(records))
	}
}

func (s *Service) List(ctx context.Context, memberID string, filter ListFilter) ([]Notification, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return s.repo.List(ctx, memberID, filter)
}

func (s *Service) MarkRead(ctx context.Context, memberID, notificationID string) error {
	updated, err := s.repo.MarkRead(ctx, memberID, notificationID)
	if err != nil {
		return err
	}
	if !updated {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *Service) MarkAllRead(ctx context.Context, memberID string) (int64, error) {
	return s.repo.MarkAllRead(ctx, memberID)
}

func buildNotification(messID, memberID string, note Note) (Notification, error) {
	category := CategorySystem
	var data json.RawMessage
	if note.Event != nil {
		category = note.Event.Category()
		encoded, err := json.Marshal(note.Event)
		if err != nil {
			return Notification{}, err
		}
		data = encoded
	}

	return Notification{
		ID:       uuid.NewString(),
		MemberID: memberID,
		MessID:   messID,
		Category: category,
		Title:    note.Title,
		Message:  note.Message,
		Data:     data,
	}, nil
}
