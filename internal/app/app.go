package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/andy/garagebill/internal/config"
	"github.com/andy/garagebill/internal/db"
	"github.com/andy/garagebill/internal/export"
	"github.com/andy/garagebill/internal/logging"
	"github.com/andy/garagebill/internal/render"
	"github.com/andy/garagebill/internal/repository"
	"github.com/andy/garagebill/internal/service"
	"go.uber.org/zap"
)

// App is the dependency injection container for all application components
type App struct {
	Config *config.Config
	DB     *db.DB
	Logger *zap.Logger

	closeLog func()

	// Repositories
	InvoiceRepo repository.InvoiceRepository

	// Services
	InvoiceService service.InvoiceService
	Printer        *export.Printer
}

// New creates a new App instance, initializing all dependencies
// It handles:
// 1. Loading config
// 2. Building the logger
// 3. Opening the in-memory session database
// 4. Creating repositories and services
func New(ctx context.Context) (*App, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewWithConfig(ctx, cfg)
}

// NewWithConfig creates an App with a provided config (useful for testing)
func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	// Saved invoices live only as long as the process
	database, err := db.OpenMemory()
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}

	invoiceRepo := repository.NewInvoiceRepo(database)
	invoiceService := service.NewInvoiceService(invoiceRepo, service.NumberingOptions{
		Prefix: cfg.Invoice.NumberPrefix,
		Width:  cfg.Invoice.NumberWidth,
	}, logger)

	printer := export.NewPrinter(cfg.Invoice.OutputDir, cfg.Print.Command,
		render.Options{Currency: cfg.Invoice.Currency}, logger)

	logger.Debug("app initialized",
		zap.String("output_dir", cfg.Invoice.OutputDir),
		zap.String("workshop", cfg.Workshop.Name))

	return &App{
		Config:         cfg,
		DB:             database,
		Logger:         logger,
		closeLog:       closeLog,
		InvoiceRepo:    invoiceRepo,
		InvoiceService: invoiceService,
		Printer:        printer,
	}, nil
}

// NewSession starts the interactive session with a fresh draft
func (a *App) NewSession(ctx context.Context) (*service.Session, error) {
	return service.NewSession(ctx, a.InvoiceService, a.Config.Shop())
}

// RenderOptions returns the print formatting from config
func (a *App) RenderOptions() render.Options {
	cur := a.Config.Invoice.Currency
	if cur == "" {
		cur = render.DefaultCurrency
	}
	return render.Options{Currency: cur}
}

// ExportBook writes every saved invoice to a timestamped workbook in the output directory
func (a *App) ExportBook(ctx context.Context) (string, error) {
	invoices, err := a.InvoiceService.Search(ctx, "")
	if err != nil {
		return "", err
	}
	if err := a.Config.EnsureDirectories(); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(a.Config.Invoice.OutputDir,
		fmt.Sprintf("invoice-book-%s.xlsx", time.Now().Format("20060102-150405")))
	if err := export.WriteBook(path, invoices, a.Config.Invoice.Currency); err != nil {
		return "", err
	}

	a.Logger.Info("invoice book exported",
		zap.String("path", path),
		zap.Int("invoices", len(invoices)))
	return path, nil
}

// Close cleanly shuts down the application
func (a *App) Close() error {
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	if a.closeLog != nil {
		a.closeLog()
		a.closeLog = nil
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

// SaveConfig saves the current configuration to disk
func (a *App) SaveConfig() error {
	return a.Config.Save(config.DefaultConfigPath())
}
