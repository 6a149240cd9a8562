package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"chatlink_backend/internal/models"
)

var ErrContactNotFound = errors.New("contact not found")

type ContactRepository interface {
	Create(db *gorm.DB, contact *models.Contact) error
	FindBetween(db *gorm.DB, userA, userB string) (*models.Contact, error)
	FindPendingForRecipient(db *gorm.DB, requestID, recipientID string) (*models.Contact, error)
	UpdateStatus(db *gorm.DB, contactID string, status models.ContactStatus) error
	DeleteAcceptedBetween(db *gorm.DB, userA, userB string) error
	FindAcceptedForUser(db *gorm.DB, userID string) ([]models.Contact, error)
	FindPendingIncoming(db *gorm.DB, userID string) ([]models.Contact, error)
}

type ContactRepositoryImpl struct{}

func NewContactRepository() ContactRepository {
	return &ContactRepositoryImpl{}
}

func (r *ContactRepositoryImpl) Create(db *gorm.DB, contact *models.Contact) error {
	return db.Create(contact).Error
}

// FindBetween looks up the single record for the unordered pair via the
// normalized pair columns.
func (r *ContactRepositoryImpl) FindBetween(db *gorm.DB, userA, userB string) (*models.Contact, error) {
	lo, hi := userA, userB
	if lo > hi {
		lo, hi = hi, lo
	}

	var contact models.Contact
	err := db.Where("user_lo = ? AND user_hi = ?", lo, hi).First(&contact).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return &contact, nil
}

// FindPendingForRecipient filters by id, recipient and pending status in one
// lookup, which makes responses naturally single-fire.
func (r *ContactRepositoryImpl) FindPendingForRecipient(db *gorm.DB, requestID, recipientID string) (*models.Contact, error) {
	var contact models.Contact
	err := db.
		Where("id = ? AND recipient_id = ? AND status = ?", requestID, recipientID, models.ContactStatusPending).
		First(&contact).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return &contact, nil
}

func (r *ContactRepositoryImpl) UpdateStatus(db *gorm.DB, contactID string, status models.ContactStatus) error {
	result := db.Model(&models.Contact{}).Where("id = ?", contactID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrContactNotFound
	}
	return nil
}

// DeleteAcceptedBetween removes the accepted relationship regardless of who
// originally requested it. Deleting an absent pair is not an error.
func (r *ContactRepositoryImpl) DeleteAcceptedBetween(db *gorm.DB, userA, userB string) error {
	lo, hi := userA, userB
	if lo > hi {
		lo, hi = hi, lo
	}
	return db.
		Where("user_lo = ? AND user_hi = ? AND status = ?", lo, hi, models.ContactStatusAccepted).
		Delete(&models.Contact{}).Error
}

func (r *ContactRepositoryImpl) FindAcceptedForUser(db *gorm.DB, userID string) ([]models.Contact, error) {
	var contacts []models.Contact
	err := db.
		Preload("Requester").Preload("Recipient").
		Where("(requester_id = ? OR recipient_id = ?) AND status = ?", userID, userID, models.ContactStatusAccepted).
		Order("created_at DESC").
		Find(&contacts).Error
	return contacts, err
}

func (r *ContactRepositoryImpl) FindPendingIncoming(db *gorm.DB, userID string) ([]models.Contact, error) {
	var contacts []models.Contact
	err := db.
		Preload("Requester").
		Where("recipient_id = ? AND status = ?", userID, models.ContactStatusPending).
		Order("created_at DESC").
		Find(&contacts).Error
	return contacts, err
}

// IsDuplicatePairError reports whether err is the unique pair index firing,
// i.e. a concurrent request created the record first.
func IsDuplicatePairError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
