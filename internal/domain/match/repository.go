package match

import "context"

// WindowQuery carries the caller's requested range. Live sources fetch a
// fixed trailing window and ignore the dates; the mock source honors them.
type WindowQuery struct {
	DateFrom     string
	DateTo       string
	Competitions string
}

// Source provides match data, either from the live provider or from the
// deterministic mock generator.
type Source interface {
	FetchWindow(ctx context.Context, query WindowQuery) ([]Match, error)
	FetchByID(ctx context.Context, id string) (Match, bool, error)
}
