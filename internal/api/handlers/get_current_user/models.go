package get_current_user

import "github.com/m04kA/SMC-RoomBookingService/internal/domain"

// CurrentUserResponse HTTP response model
type CurrentUserResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

func fromIdentity(identity domain.Identity) CurrentUserResponse {
	return CurrentUserResponse{
		UserID: identity.UserID,
		Email:  identity.Email,
		Name:   identity.DisplayName(),
	}
}
