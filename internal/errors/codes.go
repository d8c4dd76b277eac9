package errors

// Code classifies an error for the layer that renders it. Domain rule
// violations (NotFound, InvalidArgument, AlreadyExists, FailedPrecondition)
// are surfaced to the caller verbatim; Unavailable and Internal are reported
// generically and logged.
type Code string

// Error codes
const (
	CodeOK                 Code = "OK"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}
