package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/andy/garagebill/internal/render"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render [invoice.yaml]",
	Short: "Render an invoice document as printable HTML",
	Long: `Render an invoice document as printable HTML.

Examples:
  garagebill render job.yaml                 # HTML to stdout
  garagebill render job.yaml -o job.html     # HTML to a file
  garagebill render job.yaml --print         # write to the output directory and run print.command`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := loadInvoiceDoc(args[0], appInstance.Config.Shop(), time.Now())
		if err != nil {
			return fmt.Errorf("failed to load invoice: %w", err)
		}

		if printIt, _ := cmd.Flags().GetBool("print"); printIt {
			path, err := appInstance.Printer.Print(inv)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Invoice %s written to %s\n", inv.InvoiceNo, path)
			return nil
		}

		html, err := render.PrintHTML(inv, appInstance.RenderOptions())
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("output")
		if out == "" {
			_, err := fmt.Fprint(cmd.OutOrStdout(), html)
			return err
		}
		if err := os.WriteFile(out, []byte(html), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Invoice %s written to %s\n", inv.InvoiceNo, out)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringP("output", "o", "", "Write HTML to this file instead of stdout")
	renderCmd.Flags().Bool("print", false, "Write to the output directory and run the configured print command")
}
