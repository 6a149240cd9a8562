package models

type User struct {
	BaseModel
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	Email        string `gorm:"index" json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	PasswordHash string `gorm:"not null" json:"-"`

	Profile *Profile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
}

// FullName mirrors the display name used across conversation and search
// responses. Empty when neither name part is set.
func (u *User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.LastName
	}
}

// Profile is the per-user bio/avatar record, one-to-one with User.
// It is created in the same transaction as the user itself.
type Profile struct {
	BaseModel
	UserID     string `gorm:"uniqueIndex;not null" json:"user_id"`
	AvatarPath string `json:"avatar_path"`
	Bio        string `gorm:"type:varchar(500)" json:"bio"`
}
