package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve NAME...",
	Short: "Print the feature index of each comuna name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("table"); err != nil {
			return err
		}
		tbl, err := loadTable(cfg)
		if err != nil {
			return err
		}
		r, err := newResolver(cfg, tbl)
		if err != nil {
			return err
		}

		ids, err := r.ResolveAll(tbl, args)
		if err != nil {
			return err
		}
		for i, id := range ids {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\n", args[i], id, r.Normalize(args[i]))
		}
		return nil
	},
}

func init() { rootCmd.AddCommand(resolveCmd) }
