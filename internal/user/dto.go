// AngelaMos | 2026
// dto.go

package user

type UpdateSubscriptionRequest struct {
	Subscription string `json:"subscription" validate:"required,oneof=starter pro business"`
}

type SubscriptionResponse struct {
	Email        string `json:"email"`
	Subscription string `json:"subscription"`
}

type AvatarResponse struct {
	AvatarURL string `json:"avatarURL"`
}

func ToSubscriptionResponse(u *User) SubscriptionResponse {
	return SubscriptionResponse{
		Email:        u.Email,
		Subscription: u.Subscription,
	}
}
