package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/andy/garagebill/internal/export"
	"github.com/andy/garagebill/internal/render"
	"github.com/spf13/cobra"
)

var bookCmd = &cobra.Command{
	Use:   "book [invoice.yaml...]",
	Short: "Save invoice documents and export them as a spreadsheet",
	Long: `Save each invoice document into a fresh invoice book and export it as xlsx.
Documents without a customer name are rejected, as in the editor.

Examples:
  garagebill book jobs/*.yaml -o may.xlsx`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		svc := appInstance.InvoiceService

		for _, path := range args {
			inv, err := loadInvoiceDoc(path, appInstance.Config.Shop(), time.Now())
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if inv.InvoiceNo == "" {
				if inv.InvoiceNo, err = svc.NextInvoiceNo(ctx); err != nil {
					return err
				}
			}
			if _, err := svc.Save(ctx, inv); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
		}

		invoices, err := svc.Search(ctx, "")
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("output")
		if err := export.WriteBook(out, invoices, appInstance.Config.Invoice.Currency); err != nil {
			return err
		}

		sum, err := svc.Summary(ctx)
		if err != nil {
			return err
		}
		cur := appInstance.RenderOptions().Currency
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %d invoice(s) exported to %s\n", sum.Count, out)
		fmt.Fprintf(cmd.OutOrStdout(), "  Parts: %s  Labour: %s  Total: %s\n",
			render.Money(cur, sum.Parts), render.Money(cur, sum.Labour), render.Money(cur, sum.Grand))
		return nil
	},
}

func init() {
	bookCmd.Flags().StringP("output", "o", "invoice-book.xlsx", "Spreadsheet path")
}
