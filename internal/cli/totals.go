package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/andy/garagebill/internal/render"
	"github.com/spf13/cobra"
)

var totalsCmd = &cobra.Command{
	Use:   "totals [invoice.yaml]",
	Short: "Show line item and invoice totals for a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := loadInvoiceDoc(args[0], appInstance.Config.Shop(), time.Now())
		if err != nil {
			return fmt.Errorf("failed to load invoice: %w", err)
		}

		cur := appInstance.RenderOptions().Currency
		w := cmd.OutOrStdout()

		fmt.Fprintf(w, "Invoice %s  %s\n", inv.InvoiceNo, inv.CustomerName)
		fmt.Fprintln(w, strings.Repeat("-", 72))
		fmt.Fprintf(w, "%-4s %-30s %12s %12s %12s\n", "#", "Description", "Parts", "Labour", "Total")
		for i, item := range inv.Items {
			fmt.Fprintf(w, "%-4d %-30s %12s %12s %12s\n",
				i+1,
				truncate(item.Description, 30),
				render.Money(cur, item.Parts),
				render.Money(cur, item.Labour),
				render.Money(cur, item.Total()),
			)
		}
		fmt.Fprintln(w, strings.Repeat("-", 72))

		t := inv.Totals()
		fmt.Fprintf(w, "%-35s %12s %12s %12s\n", "TOTAL",
			render.Money(cur, t.Parts),
			render.Money(cur, t.Labour),
			render.Money(cur, t.Grand),
		)
		return nil
	},
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
