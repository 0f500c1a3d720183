package main

import (
	"fmt"
	"strings"

	"github.com/brettbedarf/navcore"
	"github.com/brettbedarf/navcore/completion"
	"github.com/brettbedarf/navcore/filesystem"
	"github.com/spf13/cobra"
)

func newCompleteCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <prefix>",
		Short: "Print the completions of a path prefix",
		Long: `Complete lists the entries matching the last element of prefix, one per line.
Directories end in a slash. Glob patterns like "src/*.go" are accepted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}

			prefix := args[0]
			provider := completion.NewProvider(filesystem.NewDefaultRegistry(), nil, cfg)
			matches, err := provider.Candidates(cmd.Context(), navcore.Path{}, prefix)
			if err != nil {
				return fmt.Errorf("failed to complete %s: %w", prefix, err)
			}

			head := prefix[:strings.LastIndex(prefix, "/")+1]
			for _, e := range matches {
				name := head + e.Name()
				if e.IsDir {
					name += "/"
				}
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
