package validators

import "strings"

type UserRegistrationRequest struct {
	DisplayName string `json:"display_name" validate:"required,min=2,max=50"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,strong_password"`
}

type UserLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,strong_password"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ProfileUpdateRequest struct {
	DisplayName string `json:"display_name" validate:"required,min=2,max=50"`
}

func ValidateUserRegistration(req *UserRegistrationRequest) ValidationErrors {
	if req.Email != "" {
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}
	req.DisplayName = strings.TrimSpace(req.DisplayName)

	return ValidateStruct(req)
}

func ValidateUserLogin(req *UserLoginRequest) ValidationErrors {
	if req.Email != "" {
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}

	return ValidateStruct(req)
}

func ValidateProfileUpdate(req *ProfileUpdateRequest) ValidationErrors {
	req.DisplayName = strings.TrimSpace(req.DisplayName)

	return ValidateStruct(req)
}

func ValidatePasswordChange(req *PasswordChangeRequest) ValidationErrors {
	errors := ValidateStruct(req)

	if req.CurrentPassword != "" && req.CurrentPassword == req.NewPassword {
		errors = append(errors, ValidationError{
			Field:   "new_password",
			Message: "New password must be different from current password",
		})
	}

	return errors
}
