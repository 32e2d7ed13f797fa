package query

import "context"

// Notifier receives user-facing outcome messages.
type Notifier interface {
	Success(msg string)
	Error(msg string, err error)
}

// Mutation describes the side effects of a successful write.
type Mutation struct {
	// Invalidates lists the key families whose cached data the write affects.
	Invalidates []string
	Success     string
	Failure     string
}

// Mutate runs fn. On success it invalidates m.Invalidates and reports
// m.Success; on failure it reports m.Failure. Mutations are not serialized.
func Mutate[T any](ctx context.Context, c *Client, n Notifier, m Mutation, fn func(ctx context.Context) (T, error)) (T, error) {
	v, err := fn(ctx)
	if err != nil {
		if n != nil && m.Failure != "" {
			n.Error(m.Failure, err)
		}
		return v, err
	}
	c.Invalidate(m.Invalidates...)
	if n != nil && m.Success != "" {
		n.Success(m.Success)
	}
	return v, nil
}
