// Package dbtest provides a database.Transactor for tests that run without postgres.
package dbtest

import "context"

// Transactor runs fn directly and counts commits and rollbacks.
type Transactor struct {
	Commits   int
	Rollbacks int
}

func (t *Transactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		t.Rollbacks++
		return err
	}
	t.Commits++
	return nil
}
