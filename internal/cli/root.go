package cli

import (
	"fmt"

	"github.com/keshon/voice-follow/internal/storage"
	"github.com/keshon/voice-follow/internal/version"
	"github.com/keshon/voice-follow/pkg/cmd"

	"github.com/spf13/cobra"
)

// Opener opens the datastore for a single command run.
type Opener func() (*storage.Storage, error)

// NewRootCommand exposes every command of reg as a cobra subcommand.
func NewRootCommand(reg *cmd.Registry, open Opener) *cobra.Command {
	root := &cobra.Command{
		Use:           "voice-follow-cli",
		Short:         "Inspect and edit " + version.AppName + " guild data offline",
		Long:          version.AppDescription + "\n\nRun this while the bot is stopped: both write the same datastore file.",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	for _, c := range reg.GetAll() {
		root.AddCommand(subcommand(c, open))
	}
	return root
}

func subcommand(c cmd.Command, open Opener) *cobra.Command {
	sub := &cobra.Command{
		Use:   c.Name(),
		Short: c.Description(),
		RunE: func(cc *cobra.Command, args []string) (err error) {
			store, err := open()
			if err != nil {
				return fmt.Errorf("failed to open datastore: %w", err)
			}
			defer func() {
				if cerr := store.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()

			return c.Run(cc.Context(), &cmd.Invocation{
				Args: args,
				Data: &Env{Store: store, Out: cc.OutOrStdout()},
			})
		},
	}
	if u, ok := c.(Usage); ok {
		sub.Use = c.Name() + " " + u.ArgsUsage()
		sub.Args = cobra.ExactArgs(u.NArgs())
	}
	return sub
}
