package cache

// Memoize wraps a pure function with the given cache. Misses call through
// and populate; errors are never cached. Correctness requires fn to be
// deterministic and side-effect free for equal keys; that precondition is
// documented, not enforced.
func Memoize[K comparable, V any](c *LRU[K, V], fn func(K) (V, error)) func(K) (V, error) {
	return func(key K) (V, error) {
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		v, err := fn(key)
		if err != nil {
			var zero V
			return zero, err
		}
		c.Put(key, v)
		return v, nil
	}
}
