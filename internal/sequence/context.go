package sequence

import "context"

type contextSource struct {
	ctx context.Context
	src Source
}

// WithContext returns a Source that stops with ctx.Err() once ctx is done.
// The context is checked before every record.
func WithContext(ctx context.Context, src Source) Source {
	return &contextSource{ctx: ctx, src: src}
}

func (c *contextSource) Next() (*Record, error) {
	if err := c.ctx.Err(); err != nil {
		return nil, err
	}
	return c.src.Next()
}
