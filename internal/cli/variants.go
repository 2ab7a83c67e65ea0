package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	bkio "github.com/matzehuels/bannerkit/pkg/io"
	"github.com/matzehuels/bannerkit/pkg/variant"
)

// variantsCommand creates the variants command.
func (c *CLI) variantsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "variants",
		Short: "List the registered layout variants",
		Long: `List the layout variants in registration order. When two variants leave the
same margin on a canvas, the one listed first wins.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vs := variant.Default().List()
			if asJSON {
				return bkio.WriteJSON(newVariantEntries(vs), cmd.OutOrStdout())
			}
			fmt.Fprintln(cmd.OutOrStdout(), variantTable(vs))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the variants as JSON")

	return cmd
}
