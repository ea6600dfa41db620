package schemas

// CustomError is the coarse error shape exposed on the wire. The specific
// internal cause stays in the logs; clients only ever see a catalog entry.
type CustomError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var (
	// BadRequest covers malformed or invalid request bodies. The message is
	// replaced with field details by the validation middleware.
	BadRequest = &CustomError{
		Code:    "ERR-001",
		Message: "The request body is invalid. Please check the request body and try again.",
	}
	// UsernameTaken is returned when a registration collides with an
	// existing username, compared case-insensitively.
	UsernameTaken = &CustomError{
		Code:    "ERR-002",
		Message: "The username is already taken. Please try another username.",
	}
	// InvalidCredentials is the uniform login failure. Absent users and
	// wrong passwords produce this exact error and status.
	InvalidCredentials = &CustomError{
		Code:    "ERR-003",
		Message: "The credentials are invalid. Please check the username and password and try again.",
	}
	// Unauthorized is the uniform guard failure for missing, malformed,
	// expired or forged bearer tokens.
	Unauthorized = &CustomError{
		Code:    "ERR-004",
		Message: "The request is unauthorized. Please login to your account.",
	}
	UserNotFound = &CustomError{
		Code:    "ERR-005",
		Message: "The user was not found. Please check the username and try again.",
	}
	PhotoNotFound = &CustomError{
		Code:    "ERR-006",
		Message: "The photo was not found. Please check the photo id and try again.",
	}
	Forbidden = &CustomError{
		Code:    "ERR-007",
		Message: "You do not have permission to modify this resource.",
	}
	AlreadyLiked = &CustomError{
		Code:    "ERR-008",
		Message: "You have already liked this user.",
	}
	DatabaseError = &CustomError{
		Code:    "ERR-009",
		Message: "A database error occurred. Please try again later.",
	}
	InternalServerError = &CustomError{
		Code:    "ERR-010",
		Message: "An internal server error occurred. Please try again later.",
	}
	FileError = &CustomError{
		Code:    "ERR-011",
		Message: "The uploaded file could not be processed. Please try again.",
	}
	MainPhotoImmutable = &CustomError{
		Code:    "ERR-012",
		Message: "The main photo cannot be deleted. Set another photo as main first.",
	}
	AlreadyMainPhoto = &CustomError{
		Code:    "ERR-013",
		Message: "This photo is already the main photo.",
	}
	SelfLike = &CustomError{
		Code:    "ERR-014",
		Message: "You cannot like yourself.",
	}
)

// WithMessage returns a copy of the catalog error with a more specific
// message, keeping the stable code.
func (e *CustomError) WithMessage(message string) *CustomError {
	return &CustomError{Code: e.Code, Message: message}
}
