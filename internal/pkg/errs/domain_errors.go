package errs

import "errors"

// Shared sentinel errors for CQRS usecase layers
var (
	// Request errors
	ErrRequestNotFound = errors.New("test drive request not found")
	ErrVehicleNotFound = errors.New("vehicle not found")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
