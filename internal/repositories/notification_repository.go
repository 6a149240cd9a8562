package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"chatlink_backend/internal/models"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationRepository interface {
	Create(db *gorm.DB, notification *models.Notification) error
	FindUserNotifications(db *gorm.DB, userID string, limit int) ([]models.Notification, error)
	CountUnread(db *gorm.DB, userID string) (int64, error)
	MarkAllAsRead(db *gorm.DB, userID string) error

	// Factory methods for the contact-transition notifications
	CreateContactRequestNotification(db *gorm.DB, contact *models.Contact, requesterUsername string) error
	CreateContactAcceptedNotification(db *gorm.DB, requesterID, accepterUsername string) error
}

type NotificationRepositoryImpl struct{}

func NewNotificationRepository() NotificationRepository {
	return &NotificationRepositoryImpl{}
}

func (r *NotificationRepositoryImpl) Create(db *gorm.DB, notification *models.Notification) error {
	if notification.UserID == "" || notification.Message == "" {
		return errors.New("invalid notification data")
	}
	return db.Create(notification).Error
}

func (r *NotificationRepositoryImpl) FindUserNotifications(db *gorm.DB, userID string, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	query := db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepositoryImpl) CountUnread(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepositoryImpl) MarkAllAsRead(db *gorm.DB, userID string) error {
	return db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		}).Error
}

func (r *NotificationRepositoryImpl) CreateContactRequestNotification(db *gorm.DB, contact *models.Contact, requesterUsername string) error {
	data, _ := json.Marshal(map[string]string{"requester_id": contact.RequesterID})
	return r.Create(db, &models.Notification{
		UserID:    contact.RecipientID,
		Type:      models.NotificationTypeContactRequest,
		Message:   fmt.Sprintf("%s sent you a contact request", requesterUsername),
		ContactID: &contact.ID,
		Data:      datatypes.JSON(data),
	})
}

func (r *NotificationRepositoryImpl) CreateContactAcceptedNotification(db *gorm.DB, requesterID, accepterUsername string) error {
	return r.Create(db, &models.Notification{
		UserID:  requesterID,
		Type:    models.NotificationTypeContactAccepted,
		Message: fmt.Sprintf("%s accepted your contact request", accepterUsername),
	})
}
