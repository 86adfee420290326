package search

import "context"

type Response struct {
	Total        int                 `json:"total"`
	Aggregations map[string][]Bucket `json:"aggregations"`
}

// Backend executes a composed query. Retry and timeout policy belong to the
// implementation.
type Backend interface {
	Execute(ctx context.Context, q *Query) (*Response, error)
}

type BackendFunc func(ctx context.Context, q *Query) (*Response, error)

func (f BackendFunc) Execute(ctx context.Context, q *Query) (*Response, error) {
	return f(ctx, q)
}
