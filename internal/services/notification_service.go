package services

import (
	"gorm.io/gorm"

	"chatlink_backend/internal/repositories"
	"chatlink_backend/internal/services/dto"
	"chatlink_backend/pkg/apperrors"
)

const notificationListLimit = 50

type NotificationService interface {
	ListNotifications(db *gorm.DB, userID string) (*dto.NotificationListResponse, error)
	UnreadCount(db *gorm.DB, userID string) (int64, error)
	MarkAllRead(db *gorm.DB, userID string) error
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) ListNotifications(db *gorm.DB, userID string) (*dto.NotificationListResponse, error) {
	notifications, err := s.notificationRepo.FindUserNotifications(db, userID, notificationListLimit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	unread, err := s.notificationRepo.CountUnread(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		n := &notifications[i]
		responses = append(responses, dto.NotificationResponse{
			ID:        n.ID,
			Type:      n.Type,
			Message:   n.Message,
			ContactID: n.ContactID,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}

	return &dto.NotificationListResponse{
		Notifications: responses,
		UnreadCount:   unread,
	}, nil
}

func (s *notificationService) UnreadCount(db *gorm.DB, userID string) (int64, error) {
	count, err := s.notificationRepo.CountUnread(db, userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

func (s *notificationService) MarkAllRead(db *gorm.DB, userID string) error {
	if err := s.notificationRepo.MarkAllAsRead(db, userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
