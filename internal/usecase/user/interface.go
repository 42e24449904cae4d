package user

import "context"

// Usecase defines the interface for the data retrieval operation.
type Usecase interface {
	// GetData returns the sample user record. It never fails and the
	// result does not depend on ctx, which only carries logging fields.
	GetData(ctx context.Context) *GetDataResponse
}
