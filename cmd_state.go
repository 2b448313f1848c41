package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"entropy/internal/config"
	"entropy/internal/windowstate"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Inspect or reset the saved window geometry",
}

var stateShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved window state",
	Args:  cobra.NoArgs,
	RunE:  runStateShow,
}

var stateResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget saved window positions",
	Args:  cobra.NoArgs,
	RunE:  runStateReset,
}

func init() {
	stateShowCmd.Flags().String("format", "json", "Output format: json or yaml")
	stateCmd.AddCommand(stateShowCmd)
	stateCmd.AddCommand(stateResetCmd)
}

func stateStore() *windowstate.Store {
	return windowstate.NewStore(config.Path(windowstate.StateFileName), Log)
}

func runStateShow(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	return writeState(cmd.OutOrStdout(), stateStore().Load(), format)
}

func runStateReset(cmd *cobra.Command, args []string) error {
	store := stateStore()
	if err := store.Reset(); err != nil {
		return fmt.Errorf("reset window state: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", store.Path())
	return nil
}

// writeState renders st as indented JSON or YAML.
func writeState(w io.Writer, st windowstate.State, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(st); err != nil {
			return fmt.Errorf("json encode: %w", err)
		}
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(st); err != nil {
			return fmt.Errorf("yaml encode: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format: %s (use json or yaml)", format)
	}
	return nil
}
