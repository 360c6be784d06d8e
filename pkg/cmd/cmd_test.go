package cmd

import (
	"context"
	"strings"
	"testing"
)

type echoCommand struct {
	name string
	ran  []string
}

func (e *echoCommand) Name() string        { return e.name }
func (e *echoCommand) Description() string { return "echo " + e.name }
func (e *echoCommand) Run(_ context.Context, inv *Invocation) error {
	e.ran = append(e.ran, strings.Join(inv.Args, " "))
	return nil
}

func tag(trace *[]string, label string) Middleware {
	return func(c Command) Command {
		return Wrap(c, func(ctx context.Context, inv *Invocation) error {
			*trace = append(*trace, label)
			return c.Run(ctx, inv)
		})
	}
}

func TestApplyOrder(t *testing.T) {
	var trace []string
	inner := &echoCommand{name: "echo"}
	c := Apply(inner, tag(&trace, "first"), tag(&trace, "second"))

	if err := c.Run(context.Background(), &Invocation{Args: []string{"hi"}}); err != nil {
		t.Fatal(err)
	}
	if strings.Join(trace, ",") != "second,first" {
		t.Errorf("trace = %v, want [second first]", trace)
	}
	if len(inner.ran) != 1 || inner.ran[0] != "hi" {
		t.Errorf("inner ran %v", inner.ran)
	}
	if c.Name() != "echo" || c.Description() != "echo echo" {
		t.Errorf("identity lost: %q %q", c.Name(), c.Description())
	}
	if Root(c) != Command(inner) {
		t.Errorf("Root() did not reach the inner command")
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(&echoCommand{name: "b"})
	r.Register(&echoCommand{name: "a"})
	r.Register(&echoCommand{name: "b"})

	all := r.GetAll()
	if len(all) != 2 || all[0].Name() != "a" || all[1].Name() != "b" {
		t.Errorf("GetAll() = %v", all)
	}
	if r.Get("missing") != nil {
		t.Error("Get(missing) should be nil")
	}
}

func TestInvocationArg(t *testing.T) {
	inv := &Invocation{Args: []string{"x", "y"}}
	if inv.Arg(1) != "y" || inv.Arg(2) != "" || inv.Arg(-1) != "" {
		t.Errorf("Arg() mismatch")
	}
	var nilInv *Invocation
	if nilInv.Arg(0) != "" {
		t.Errorf("nil Arg() should be empty")
	}
}
