package services

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Page is one slice of a user's rows plus the total row count.
type Page[T any] struct {
	Items  []T
	Total  int
	Limit  int
	Offset int
}

// fetchPage runs the list and count queries concurrently.
func fetchPage[T any](
	ctx context.Context,
	limit, offset int,
	list func(ctx context.Context) ([]T, error),
	count func(ctx context.Context) (int, error),
) (*Page[T], error) {
	page := &Page[T]{Limit: limit, Offset: offset}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := list(ctx)
		page.Items = items
		return err
	})
	g.Go(func() error {
		total, err := count(ctx)
		page.Total = total
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return page, nil
}
