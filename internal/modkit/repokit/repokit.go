// Package repokit is the shared surface of every repository: the query seam, binders and error mapping
package repokit

import "recordkeeper/internal/platform/store"

type (
	// Queryer is what a repository runs statements on, pool or transaction
	Queryer = store.RowQuerier
	// TxRunner runs a function inside one transaction
	TxRunner = store.TxRunner
)

// Binder binds a repository to the Queryer of the current transaction
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a constructor to Binder
type BindFunc[T any] func(Queryer) T

// Bind calls f
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }
