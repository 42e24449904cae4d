package user

// GetDataResponse represents the response payload for the data operation.
type GetDataResponse struct {
	ID       string
	Name     string
	Email    string
	Password string
}
