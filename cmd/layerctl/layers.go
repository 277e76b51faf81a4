package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var layersCmd = &cobra.Command{
	Use:   "layers",
	Short: "List the layers of the stack, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "INDEX\tISOLATED\tKEYS")
		all := a.Stack.Layers()
		for i := len(all) - 1; i >= 0; i-- {
			l := all[i]
			keys := l.Keys()
			for j, key := range keys {
				if slot, _ := l.Get(key); slot.IsDeferred() {
					keys[j] = key + "*"
				}
			}
			fmt.Fprintf(w, "%d\t%t\t%s\n", i, l.Isolated(), strings.Join(keys, ", "))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(layersCmd)
}
