package api

// Result is the only value ever returned to a caller of a client operation.
// Exactly one branch is populated: Ok == true means Data holds the decoded
// success payload; Ok == false means Message holds a human-intended
// explanation and Error, when present, the classified failure.
type Result[T any] struct {
	Ok      bool
	Data    T
	Message string
	Error   *Error
}

// Success returns an Ok result carrying data.
func Success[T any](data T) Result[T] {
	return Result[T]{Ok: true, Data: data}
}

// Failure returns a failed result from a classified error.
// The result message mirrors the error message.
func Failure[T any](err *Error) Result[T] {
	return Result[T]{Ok: false, Message: err.Message, Error: err}
}

// Reject returns a failed result with a message only, used for requests
// rejected before any network call is made.
func Reject[T any](message string) Result[T] {
	return Result[T]{Ok: false, Message: message}
}
