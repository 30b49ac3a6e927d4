package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sundayezeilo/websitio/clientslug"
	"github.com/sundayezeilo/websitio/internal/siteconfig"
)

func seedCommand(open opener) *cobra.Command {
	var (
		file  string
		reset bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create configs from a YAML file",
		Long: "Create one config per entry of a YAML list. Entries use the same field names as the JSON API.\n" +
			"With --reset every config except the homepage and demo templates is deleted first.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read seed file: %w", err)
			}
			inputs, err := parseSeed(raw)
			if err != nil {
				return fmt.Errorf("parse %s: %w", file, err)
			}

			ctx := cmd.Context()
			be, err := open(ctx, false)
			if err != nil {
				return err
			}
			defer be.Close()

			report, err := be.Service.Seed(ctx, inputs, reset)
			if err != nil {
				return fmt.Errorf("seed: %w", err)
			}

			out := cmd.OutOrStdout()
			if reset {
				fmt.Fprintf(out, "Deleted %d configs.\n", len(report.Deleted))
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tTEMPLATE\tSLUG")
			for _, cfg := range report.Created {
				slug, ok := clientslug.Canonical(cfg.Name, cfg.ID)
				if !ok {
					slug = "-"
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", cfg.ID, cfg.Name, dash(string(cfg.TemplateType)), slug)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML seed file")
	cmd.Flags().BoolVar(&reset, "reset", false, "Delete non-protected configs before seeding")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// parseSeed reads a YAML list of config inputs. The YAML is converted to JSON
// first so nested types keep the API's camelCase field names.
func parseSeed(raw []byte) ([]siteconfig.Input, error) {
	var doc []map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	asJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(asJSON))
	dec.DisallowUnknownFields()
	var inputs []siteconfig.Input
	if err := dec.Decode(&inputs); err != nil {
		return nil, err
	}
	return inputs, nil
}
