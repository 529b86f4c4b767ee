package examplemcp

// CloseLine is a line of closers that are run in the order they were added.
type CloseLine struct {
	closers []func()
}

// Add adds a closer to the close line.
func (c *CloseLine) Add(closer func()) {
	c.closers = append(c.closers, closer)
}

// AddE adds a closer whose error is ignored.
func (c *CloseLine) AddE(closeWithError func() error) {
	c.closers = append(c.closers, func() { _ = closeWithError() })
}

// Close runs all the closers and empties the line.
func (c *CloseLine) Close() {
	closers := c.closers
	c.closers = nil
	for _, f := range closers {
		if f != nil {
			f()
		}
	}
}
