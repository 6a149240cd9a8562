package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"chatlink_backend/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByUsername(db *gorm.DB, username string) (*models.User, error)
	Create(db *gorm.DB, user *models.User) error
	Update(db *gorm.DB, user *models.User) error
	UpdatePassword(db *gorm.DB, userID, passwordHash string) error
	EmailInUse(db *gorm.DB, email, excludeUserID string) (bool, error)
	Search(db *gorm.DB, callerID, query string, limit int) ([]models.User, error)
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.Preload("Profile").First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByUsername(db *gorm.DB, username string) (*models.User, error) {
	var user models.User
	err := db.Preload("Profile").First(&user, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	var existing models.User
	if err := db.Where("username = ?", user.Username).First(&existing).Error; err == nil {
		return ErrUserAlreadyExists
	}
	return db.Create(user).Error
}

func (r *UserRepositoryImpl) Update(db *gorm.DB, user *models.User) error {
	result := db.Model(user).Updates(map[string]interface{}{
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdatePassword(db *gorm.DB, userID, passwordHash string) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).
		Update("password_hash", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) EmailInUse(db *gorm.DB, email, excludeUserID string) (bool, error) {
	var count int64
	err := db.Model(&models.User{}).
		Where("email = ? AND id <> ?", email, excludeUserID).
		Count(&count).Error
	return count > 0, err
}

// Search matches username, first/last name or email substrings,
// case-insensitively, excluding the caller.
func (r *UserRepositoryImpl) Search(db *gorm.DB, callerID, query string, limit int) ([]models.User, error) {
	var users []models.User
	pattern := "%" + strings.ToLower(query) + "%"
	err := db.
		Where("id <> ?", callerID).
		Where(
			db.Session(&gorm.Session{NewDB: true}).
				Where("LOWER(username) LIKE ?", pattern).
				Or("LOWER(first_name) LIKE ?", pattern).
				Or("LOWER(last_name) LIKE ?", pattern).
				Or("LOWER(email) LIKE ?", pattern),
		).
		Order("username ASC").
		Limit(limit).
		Find(&users).Error
	return users, err
}
