// SPDX-License-Identifier: MIT

package dynamics

// cell memoizes one successful computation. Failed computations are not
// stored, so a cancelled context does not poison the cache.
type cell[T any] struct {
	ok  bool
	val T
}

func (c *cell[T]) get(compute func() (T, error)) (T, error) {
	if c.ok {
		return c.val, nil
	}
	v, err := compute()
	if err != nil {
		var zero T
		return zero, err
	}
	c.val, c.ok = v, true

	return v, nil
}

func (c *cell[T]) reset() { *c = cell[T]{} }
