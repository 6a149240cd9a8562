package services

import (
	"gorm.io/gorm"

	"chatlink_backend/internal/models"
	"chatlink_backend/internal/repositories"
	"chatlink_backend/internal/services/dto"
	"chatlink_backend/pkg/apperrors"
)

func userSummary(u *models.User) dto.UserSummary {
	return dto.UserSummary{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName(),
		Email:    u.Email,
	}
}

// handleUserLookupError maps a repository miss to the 404 AppError and
// everything else to an internal error.
func handleUserLookupError(err error) error {
	if apperrors.Is(err, repositories.ErrUserNotFound) {
		return apperrors.ErrRecipientNotFound
	}
	return apperrors.InternalError(err)
}

// beginTx starts a transaction, translating driver failure.
func beginTx(db *gorm.DB) (*gorm.DB, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	return tx, nil
}
