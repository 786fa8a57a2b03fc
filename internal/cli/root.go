package cli

import (
	"github.com/andy/garagebill/internal/app"
	"github.com/spf13/cobra"
)

var appInstance *app.App

var rootCmd = &cobra.Command{
	Use:   "garagebill",
	Short: "Invoices for an auto-repair workshop",
	Long: `Garagebill writes service invoices for a vehicle workshop: line items with
parts and labour costs, live totals, a searchable invoice book and printable
HTML invoices.

By default, running garagebill without arguments launches the interactive TUI.
Saved invoices last for the session only; print or export them before quitting.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		// Default behavior: launch TUI
		launchTUI(cmd, args)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetApp sets the app instance for commands to use
func SetApp(a *app.App) {
	appInstance = a
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(totalsCmd)
	rootCmd.AddCommand(bookCmd)
	rootCmd.AddCommand(configCmd)
}
