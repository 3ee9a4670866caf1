package domain

// ResultBase is the uniform contract of every fallible operation: failures
// travel as data, never as panics, so call sites branch on IsSuccess.
type ResultBase struct {
	IsSuccess bool
	Errors    []string
}

// OkBase returns a successful ResultBase.
func OkBase() ResultBase {
	return ResultBase{IsSuccess: true}
}

// FailBase returns a failed ResultBase carrying the given messages.
func FailBase(errors ...string) ResultBase {
	return ResultBase{IsSuccess: len(errors) == 0, Errors: errors}
}

// Result carries a payload alongside the success/error contract.
type Result[T any] struct {
	ResultBase
	Data T
}

// Ok wraps data in a successful Result.
func Ok[T any](data T) Result[T] {
	return Result[T]{ResultBase: OkBase(), Data: data}
}

// Fail returns a failed Result with a zero-value payload.
func Fail[T any](errors ...string) Result[T] {
	return Result[T]{ResultBase: FailBase(errors...)}
}

// FailFrom propagates another operation's failure untouched.
func FailFrom[T any](base ResultBase) Result[T] {
	return Result[T]{ResultBase: base}
}
