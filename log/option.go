package log

import "sync"

// Option changes one setting of a Logger's configuration.
type Option func(config) config

func apply(c config, opts ...Option) config {
	for _, o := range opts {
		c = o(c)
	}

	return c
}

// update wraps fn as an Option that edits the config under its write lock,
// giving the config a mutex first if it has none.
func update(fn func(*config)) Option {
	return func(c config) config {
		if c.mutex == nil {
			c.mutex = new(sync.RWMutex)
			fn(&c)

			return c
		}

		c.mutex.Lock()
		defer c.mutex.Unlock()

		fn(&c)

		return c
	}
}
