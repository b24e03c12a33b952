package pipeline

// Status is the enumerated outcome of a pipeline stage. Callers branch on
// it instead of overloading nil/empty values with failure meanings.
type Status int

const (
	// StatusOk carries a usable value.
	StatusOk Status = iota
	// StatusEmpty means the stage ran but produced nothing worth keeping
	// (no text, no keyword match, summary too short).
	StatusEmpty
	// StatusTransient means the stage failed in a way worth retrying on the
	// next run (network error, inconclusive classifier).
	StatusTransient
	// StatusPermanent means the input can never succeed (malformed content).
	StatusPermanent
)

// Result pairs a stage outcome with its value or error.
type Result[T any] struct {
	Status Status
	Value  T
	Err    error
}

func Ok[T any](value T) Result[T] {
	return Result[T]{Status: StatusOk, Value: value}
}

func Empty[T any]() Result[T] {
	return Result[T]{Status: StatusEmpty}
}

func Transient[T any](err error) Result[T] {
	return Result[T]{Status: StatusTransient, Err: err}
}

func Permanent[T any](err error) Result[T] {
	return Result[T]{Status: StatusPermanent, Err: err}
}
