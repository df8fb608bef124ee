/*
Package random defines the uniform random source consumed by sampling
and permutation operations. The source is an explicit capability passed
by the caller into every call that needs randomness; the engine keeps no
global random state.
*/
package random

import "golang.org/x/exp/rand"

/*
Source produces uniform random integers and permutations.

Its Intn method returns a uniform random integer in [0, n); n must be
positive. Its Shuffle method applies a uniform random permutation to a
sequence of length n through the given swap function.
*/
type Source interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

/*
New returns a Source seeded with the given value. Two sources with the
same seed produce the same stream.
*/
func New(seed uint64) Source {
	return rand.New(rand.NewSource(seed))
}
