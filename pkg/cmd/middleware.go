package cmd

// Middleware decorates a command (logging, access checks, ...).
type Middleware func(Command) Command

// Apply wraps c with mws. The last middleware ends up outermost, so it runs first.
func Apply(c Command, mws ...Middleware) Command {
	for _, mw := range mws {
		c = mw(c)
	}
	return c
}
