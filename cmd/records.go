package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"stopwatch_tui/internal/record"
)

func newListCmd(deps *Deps, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print stored records",
		Long:  `Print every stored record, oldest first, one per line.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(flags)
			if err != nil {
				return err
			}
			defer e.Close()

			value, _, err := e.store.GetItem(e.cfg.Storage.Key)
			if err != nil {
				return fmt.Errorf("failed to read records: %w", err)
			}
			records, err := record.Decode(value)
			if err != nil {
				e.logger.Warn("stored records unreadable", "err", err)
				_, _ = fmt.Fprintln(deps.Stderr, "Warning: stored records are unreadable and will be replaced on the next change")
				records = nil
			}

			if len(records) == 0 {
				_, _ = fmt.Fprintln(deps.Stdout, "No records")
				return nil
			}
			for _, r := range records {
				_, _ = fmt.Fprintln(deps.Stdout, r)
			}
			return nil
		},
	}
}

func newClearCmd(deps *Deps, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all stored records",
		Long:  `Remove all stored records. The store keeps the key with an empty marker.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(flags)
			if err != nil {
				return err
			}
			defer e.Close()

			value, _, err := e.store.GetItem(e.cfg.Storage.Key)
			if err != nil {
				return fmt.Errorf("failed to read records: %w", err)
			}
			records, _ := record.Decode(value)

			if err := e.store.SetItem(e.cfg.Storage.Key, record.Null); err != nil {
				return fmt.Errorf("failed to clear records: %w", err)
			}
			e.logger.Info("records cleared", "count", len(records))
			_, _ = fmt.Fprintf(deps.Stdout, "Cleared %d %s\n", len(records), pluralize("record", len(records)))
			return nil
		},
	}
}

// pluralize returns the singular or plural form of a word based on count
func pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}
