package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"protocolkb/internal/adapters/protocols"
	"protocolkb/internal/core"
	"protocolkb/pkg/protocolapi"
)

func newListCommand(root *rootOptions) *cobra.Command {
	var (
		q     core.Query
		asCSV bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List protocols, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := root.service()
			if err != nil {
				return err
			}
			found := svc.Search(cmd.Context(), q)
			out := cmd.OutOrStdout()
			switch {
			case asCSV:
				return protocols.WriteCSV(out, found)
			case root.format == "json":
				return writeJSON(out, map[string]any{"protocols": found})
			}
			return writeProtocolTable(out, found)
		},
	}
	cmd.Flags().StringVar(&q.Ailment, "ailment", "", "ailment tag, e.g. digestive_issues")
	cmd.Flags().StringVar(&q.Intensity, "intensity", "", "gentle, moderate or intensive")
	cmd.Flags().StringVar(&q.Evidence, "evidence", "", "traditional, anecdotal, clinical_studies or who_approved")
	cmd.Flags().StringVar(&q.Region, "region", "", "region tag; worldwide protocols always match")
	cmd.Flags().StringVar(&q.Category, "category", "", "traditional, ayurvedic, modern or combination")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "write CSV instead of a table")
	return cmd
}

func newShowCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one protocol in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := root.service()
			if err != nil {
				return err
			}
			p, ok := svc.Protocol(cmd.Context(), args[0])
			if !ok {
				return fmt.Errorf("protocol %q not found", args[0])
			}
			if root.format == "json" {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"protocol": p})
			}
			return writeProtocolDetail(cmd.OutOrStdout(), p)
		},
	}
}

func newRecommendCommand(root *rootOptions) *cobra.Command {
	var req core.RecommendationRequest
	cmd := &cobra.Command{
		Use:   "recommend [condition...]",
		Short: "Rank protocols against reported conditions",
		Example: `  protocolkb recommend digestive_issues fatigue --region north_america
  protocolkb recommend bloating --exclude pregnancy`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := root.service()
			if err != nil {
				return err
			}
			req.Conditions = args
			recs := svc.Recommend(cmd.Context(), req)
			out := cmd.OutOrStdout()
			if root.format == "json" {
				return writeJSON(out, map[string]any{"recommendations": recs})
			}
			if len(recs) == 0 {
				_, err := fmt.Fprintln(out, "no matching protocols")
				return err
			}
			for i, rec := range recs {
				if _, err := fmt.Fprintf(out, "%d. %s (%s) score %d\n   %s\n",
					i+1, rec.Protocol.Name, rec.Protocol.ID, rec.MatchScore, rec.Reasoning); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Region, "region", "", "only protocols available in this region")
	cmd.Flags().StringSliceVar(&req.Exclusions, "exclude", nil, "drop protocols contraindicated for these tags")
	return cmd
}

func newFacetsCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "facets",
		Short: "Print the selectable filter values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := root.service()
			if err != nil {
				return err
			}
			f := svc.Facets(cmd.Context())
			out := cmd.OutOrStdout()
			if root.format == "json" {
				return writeJSON(out, map[string]any{"facets": f})
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "protocols\t%d\n", f.Total)
			fmt.Fprintf(tw, "ailments\t%s\n", strings.Join(f.Ailments, ", "))
			fmt.Fprintf(tw, "regions\t%s\n", strings.Join(f.Regions, ", "))
			fmt.Fprintf(tw, "parasites\t%s\n", strings.Join(f.TargetParasites, ", "))
			fmt.Fprintf(tw, "contraindications\t%s\n", strings.Join(f.Contraindications, ", "))
			for _, c := range protocolapi.Categories() {
				fmt.Fprintf(tw, "category %s\t%d\n", c, f.Categories[string(c)])
			}
			for _, level := range protocolapi.Intensities() {
				fmt.Fprintf(tw, "intensity %s\t%d\n", level, f.Intensities[string(level)])
			}
			for _, e := range protocolapi.EvidenceTiers() {
				fmt.Fprintf(tw, "evidence %s\t%d\n", e, f.EvidenceTiers[string(e)])
			}
			return tw.Flush()
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeProtocolTable(w io.Writer, ps []protocolapi.Protocol) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tINTENSITY\tEVIDENCE\tDAYS")
	for _, p := range ps {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n", p.ID, p.Name, p.Category, p.Intensity, p.Evidence, p.Duration.Recommended)
	}
	return tw.Flush()
}

func writeProtocolDetail(w io.Writer, p protocolapi.Protocol) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n%s\n\n", p.Name, p.ID, p.Description)
	fmt.Fprintf(&b, "Category:  %s\nIntensity: %s\nEvidence:  %s\n", p.Category, p.Intensity, p.Evidence)
	fmt.Fprintf(&b, "Duration:  %d-%d days (recommended %d)\n", p.Duration.Minimum, p.Duration.Maximum, p.Duration.Recommended)
	fmt.Fprintf(&b, "Effectiveness: protozoa %g%%, helminths %g%%, flukes %g%%\n\n",
		p.Effectiveness.Protozoa, p.Effectiveness.Helminths, p.Effectiveness.Flukes)
	b.WriteString("Herbs:\n")
	for _, h := range p.PrimaryHerbs {
		fmt.Fprintf(&b, "  - %s (%s): %s, %s\n", h.Name, h.LatinName, h.Dosage, h.Timing)
	}
	b.WriteString("Phases:\n")
	for _, ph := range p.Protocol {
		fmt.Fprintf(&b, "  %d. %s, %d days: %s\n", ph.Phase, ph.Name, ph.Duration, ph.Objective)
	}
	fmt.Fprintf(&b, "Targets:           %s\n", strings.Join(p.AilmentTargets, ", "))
	fmt.Fprintf(&b, "Contraindications: %s\n", strings.Join(p.Contraindications, ", "))
	fmt.Fprintf(&b, "Side effects:      %s\n", strings.Join(p.SideEffects, ", "))
	fmt.Fprintf(&b, "Availability:      %s\n", strings.Join(p.RegionalAvailability, ", "))
	_, err := io.WriteString(w, b.String())
	return err
}
