package dto

type UpdateProfileRequest struct {
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
	Email     string `json:"email" validate:"omitempty,email"`
	Bio       string `json:"bio" validate:"max=500"`
}

type ChangePasswordRequest struct {
	OldPassword             string `json:"old_password" validate:"required"`
	NewPassword             string `json:"new_password" validate:"required"`
	NewPasswordConfirmation string `json:"new_password_confirmation" validate:"required"`
}

type ProfileResponse struct {
	User      UserSummary `json:"user"`
	Bio       string      `json:"bio"`
	AvatarURL string      `json:"avatar_url,omitempty"`
}
