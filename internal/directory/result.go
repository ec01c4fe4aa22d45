package directory

// Status is the outcome of a directory lookup.
type Status int

const (
	// StatusNotFound means the CRM answered and nothing matched.
	StatusNotFound Status = iota
	// StatusFound means a match was selected.
	StatusFound
	// StatusTransportError means the CRM could not be queried.
	StatusTransportError
)

func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusNotFound:
		return "not_found"
	case StatusTransportError:
		return "transport_error"
	default:
		return "unknown"
	}
}

// Result carries the outcome of one lookup. Callers that only care about
// "match or no match" use Found; NotFound and TransportError stay
// distinguishable for logging.
type Result[T any] struct {
	Status Status
	Match  *T
	Err    error
}

// Found returns the match, or nil for both NotFound and TransportError.
func (r Result[T]) Found() *T {
	if r.Status != StatusFound {
		return nil
	}
	return r.Match
}

func found[T any](m T) Result[T] {
	return Result[T]{Status: StatusFound, Match: &m}
}

func notFound[T any]() Result[T] {
	return Result[T]{Status: StatusNotFound}
}

func transportError[T any](err error) Result[T] {
	return Result[T]{Status: StatusTransportError, Err: err}
}
