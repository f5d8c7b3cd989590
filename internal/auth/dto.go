// AngelaMos | 2026
// dto.go

package auth

type RegisterRequest struct {
	Email        string `json:"email"        validate:"required,email_pattern"`
	Password     string `json:"password"     validate:"required,min=6,max=72"`
	Subscription string `json:"subscription" validate:"omitempty,oneof=starter pro business"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email_pattern"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required,email_pattern"`
}

type ProfileResponse struct {
	Email        string `json:"email"`
	Subscription string `json:"subscription"`
}

type LoginResponse struct {
	Token string          `json:"token"`
	User  ProfileResponse `json:"user"`
}
