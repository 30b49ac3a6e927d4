package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sundayezeilo/websitio/clientslug"
)

// slugCommand groups the offline slug helpers. None of them touch storage.
func slugCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slug",
		Short: "Encode, decode and validate client URL slugs",
	}

	cmd.AddCommand(encodeSlugCommand())
	cmd.AddCommand(decodeSlugCommand())
	cmd.AddCommand(validateSlugCommand())
	return cmd
}

func encodeSlugCommand() *cobra.Command {
	var (
		name string
		id   int64
	)

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Print the canonical slug for a business name and client id",
		RunE: func(cmd *cobra.Command, _ []string) error {
			slug, err := clientslug.Encode(name, id)
			if err != nil {
				return fmt.Errorf("encode %q: %w", name, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), slug)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Business name")
	cmd.Flags().Int64Var(&id, "id", 0, "Client id")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func decodeSlugCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <slug>",
		Short: "Split a slug into its name part and client id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := clientslug.Decode(args[0])
			id := "-"
			if p.HasID {
				id = strconv.FormatInt(p.ID, 10)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "name\t%s\nid\t%s\n", p.Name, id)
			return nil
		},
	}
}

func validateSlugCommand() *cobra.Command {
	var (
		name string
		id   int64
	)

	cmd := &cobra.Command{
		Use:   "validate <slug>",
		Short: "Check that a slug is the canonical address for a name and id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if clientslug.Validate(args[0], name, id) {
				fmt.Fprintln(cmd.OutOrStdout(), "valid")
				return nil
			}
			want, ok := clientslug.Canonical(name, id)
			if !ok {
				return fmt.Errorf("invalid: %q has no slug characters", name)
			}
			return fmt.Errorf("invalid: expected %s", want)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Business name")
	cmd.Flags().Int64Var(&id, "id", 0, "Client id")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
