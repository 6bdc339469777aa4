package domain

import "errors"

// Domain errors as sentinel values
var (
	// Material errors
	ErrMaterialNotFound    = errors.New("material not found")
	ErrInvalidTitle        = errors.New("material title must be between 3 and 100 characters")
	ErrInvalidDescription  = errors.New("material description must be between 3 and 1000 characters")
	ErrMissingCategory     = errors.New("material category is required")
	ErrMissingOwner        = errors.New("material owner is required")
	ErrTooManyTags         = errors.New("material cannot have more than 20 tags")
	ErrRejectReasonMissing = errors.New("reject reason cannot be empty")
	ErrRejectReasonTooLong = errors.New("reject reason cannot exceed 500 characters")

	// Moderation errors
	ErrAlreadyApproved = errors.New("material is already approved")
	ErrAlreadyRejected = errors.New("material is already rejected")
	ErrVersionConflict = errors.New("material was modified concurrently")

	// Lookup errors
	ErrCategoryNotFound = errors.New("category not found")
	ErrUserNotFound     = errors.New("user not found")

	// Access errors
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("operation not permitted")
	ErrAccountBlocked  = errors.New("account is blocked")

	// Upload errors
	ErrEmptyFile       = errors.New("uploaded file is empty")
	ErrFileTooLarge    = errors.New("uploaded file exceeds the size limit")
	ErrUnsupportedType = errors.New("uploaded file type is not supported")
	ErrInvalidFileName = errors.New("uploaded file name is invalid")
)
