// Package pgquery holds the hand-written SQL used by the postgres repositories.
package pgquery

type Queries struct{}

func New() *Queries {
	return &Queries{}
}
