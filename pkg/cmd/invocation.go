// Package cmd is the transport-agnostic command core shared by the Discord bot
// and the CLI. A command has a name, a description and Run; each transport
// decides how to register it and what to put into Invocation.Data.
package cmd

import "context"

// Invocation is what a transport hands to a command: positional arguments and
// an opaque, transport-specific payload.
type Invocation struct {
	Args []string
	Data any
}

// Arg returns the i-th argument or "".
func (inv *Invocation) Arg(i int) string {
	if inv == nil || i < 0 || i >= len(inv.Args) {
		return ""
	}
	return inv.Args[i]
}

type Command interface {
	Name() string
	Description() string
	Run(ctx context.Context, inv *Invocation) error
}
