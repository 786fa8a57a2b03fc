package cli

import (
	"fmt"
	"os"

	"github.com/andy/garagebill/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the terminal UI",
	Long:  `Launch the interactive invoice editor and invoice book.`,
	Run:   launchTUI,
}

func launchTUI(cmd *cobra.Command, args []string) {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "garagebill needs an interactive terminal.")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "For scripted use, try:")
		fmt.Fprintln(os.Stderr, "  garagebill render invoice.yaml -o invoice.html")
		fmt.Fprintln(os.Stderr, "  garagebill totals invoice.yaml")
		fmt.Fprintln(os.Stderr, "  garagebill book *.yaml -o book.xlsx")
		os.Exit(1)
	}

	if err := tui.Run(appInstance); err != nil {
		fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
		os.Exit(1)
	}
}
