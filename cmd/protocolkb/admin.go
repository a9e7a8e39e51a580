package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"protocolkb/internal/core"
)

type validationReport struct {
	Protocols    int      `json:"protocols"`
	ConfigValid  bool     `json:"config_valid"`
	ConfigErrors []string `json:"config_errors,omitempty"`
}

func newValidateCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the bundled catalog and the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := loadCatalog()
			if err != nil {
				return err
			}
			report := validationReport{Protocols: catalog.Len(), ConfigValid: true}
			cfgErr := root.cfg.Validate()
			if cfgErr != nil {
				report.ConfigValid = false
				report.ConfigErrors = splitJoined(cfgErr)
			}

			out := cmd.OutOrStdout()
			if root.format == "json" {
				if err := writeJSON(out, report); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(out, "catalog: %d protocols valid\n", report.Protocols)
				if report.ConfigValid {
					fmt.Fprintln(out, "config: ok")
				}
				for _, msg := range report.ConfigErrors {
					fmt.Fprintf(out, "config: %s\n", msg)
				}
			}
			if cfgErr != nil {
				return fmt.Errorf("invalid config")
			}
			return nil
		},
	}
}

func splitJoined(err error) []string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, e.Error())
		}
		return out
	}
	return []string{err.Error()}
}

func newAuditCommand(root *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Print recent export audit entries from the configured store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := core.OpenAuditStore(cmd.Context(), root.cfg.AuditOptions())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()
			entries, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if root.format == "json" {
				return writeJSON(out, map[string]any{"entries": entries})
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tACTION\tSUBJECT\tSTATUS\tACTOR")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.OccurredAt.Format(time.RFC3339), e.Action, e.Subject, e.Status, e.Actor)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum entries, newest first (0 for all)")
	return cmd
}
