package repositories

import (
	"errors"

	"gorm.io/gorm"

	"chatlink_backend/internal/models"
)

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileAlreadyExists = errors.New("profile already exists for this user")
)

type ProfileRepository interface {
	Create(db *gorm.DB, profile *models.Profile) error
	FindByUserID(db *gorm.DB, userID string) (*models.Profile, error)
	Update(db *gorm.DB, profile *models.Profile) error
}

type ProfileRepositoryImpl struct{}

func NewProfileRepository() ProfileRepository {
	return &ProfileRepositoryImpl{}
}

func (r *ProfileRepositoryImpl) Create(db *gorm.DB, profile *models.Profile) error {
	var existing models.Profile
	if err := db.Where("user_id = ?", profile.UserID).First(&existing).Error; err == nil {
		return ErrProfileAlreadyExists
	}
	return db.Create(profile).Error
}

func (r *ProfileRepositoryImpl) FindByUserID(db *gorm.DB, userID string) (*models.Profile, error) {
	var profile models.Profile
	err := db.First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) Update(db *gorm.DB, profile *models.Profile) error {
	result := db.Model(profile).Updates(map[string]interface{}{
		"avatar_path": profile.AvatarPath,
		"bio":         profile.Bio,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}
