package delete_reservation

// DeleteReservationResponse HTTP response model
type DeleteReservationResponse struct {
	Success bool `json:"success"`
}
