// Package export hands invoices to the outside world: printable HTML files
// and the invoice book spreadsheet.
package export

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/andy/garagebill/internal/domain"
	"github.com/andy/garagebill/internal/render"
	"go.uber.org/zap"
)

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Printer writes the print document for an invoice and optionally opens it
type Printer struct {
	outputDir string
	command   []string
	opts      render.Options
	logger    *zap.Logger

	// start launches the opener without waiting for it
	start func(name string, args ...string) error
}

// NewPrinter creates a printer writing into outputDir. command may be empty;
// otherwise it is split on whitespace and the file path is appended.
func NewPrinter(outputDir, command string, opts render.Options, logger *zap.Logger) *Printer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Printer{
		outputDir: outputDir,
		command:   strings.Fields(command),
		opts:      opts,
		logger:    logger,
		start:     startDetached,
	}
}

// Print renders inv and writes it to <outputDir>/<invoiceNo>.html.
// A failing opener is logged but does not fail the print.
func (p *Printer) Print(inv domain.Invoice) (string, error) {
	html, err := render.PrintHTML(inv, p.opts)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(p.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(p.outputDir, FileName(inv.InvoiceNo, ".html"))
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		return "", fmt.Errorf("failed to write invoice: %w", err)
	}

	p.logger.Info("invoice printed",
		zap.String("invoice_no", inv.InvoiceNo),
		zap.String("path", path))

	if len(p.command) > 0 {
		args := append(append([]string{}, p.command[1:]...), path)
		if err := p.start(p.command[0], args...); err != nil {
			p.logger.Warn("print command failed",
				zap.String("command", p.command[0]),
				zap.Error(err))
		}
	}

	return path, nil
}

// FileName turns an invoice number into a safe file name
func FileName(invoiceNo, ext string) string {
	name := strings.Trim(unsafeFileChars.ReplaceAllString(invoiceNo, "_"), "._")
	if name == "" {
		name = "invoice"
	}
	return name + ext
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}
