package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	gohttp "github.com/km-arc/go-layers/framework/http"
	"github.com/km-arc/go-layers/framework/layers"
)

var (
	resolveMode string
	resolveJSON bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [key]",
	Short: "Resolve a key against the stack",
	Long: `Resolve a key by name, or by type when the key is a registered type
identifier. The search mode defaults to LAYERS_MODE.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}

		mode := a.DefaultMode()
		if resolveMode != "" {
			if mode, err = layers.ParseMode(resolveMode); err != nil {
				return err
			}
		}

		v, err := a.Stack.Resolve(args[0], mode)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if resolveJSON {
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(map[string]any{
				"key":   args[0],
				"type":  layers.TypeKey(v),
				"value": gohttp.Encodable(v),
			})
		}
		_, err = fmt.Fprintln(out, v)
		return err
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().StringVarP(&resolveMode, "mode", "m", "", "Search mode: same, parents, children or both")
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "Output in JSON format")
}
