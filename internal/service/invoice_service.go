package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andy/garagebill/internal/domain"
	"github.com/andy/garagebill/internal/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var ErrInvoiceNotFound = errors.New("saved invoice not found")

// BookSummary aggregates the invoice book
type BookSummary struct {
	Count  int
	Parts  decimal.Decimal
	Labour decimal.Decimal
	Grand  decimal.Decimal
}

// InvoiceService manages the session's invoice book
type InvoiceService interface {
	// Save snapshots the invoice with computed totals and puts it at the head of the book
	Save(ctx context.Context, inv domain.Invoice) (*domain.SavedInvoice, error)

	// Search filters the book by customer name, invoice number or vehicle number
	Search(ctx context.Context, term string) ([]*domain.SavedInvoice, error)

	// Get retrieves one saved invoice
	Get(ctx context.Context, id int64) (*domain.SavedInvoice, error)

	// Count returns how many invoices have been saved this session
	Count(ctx context.Context) (int, error)

	// NextInvoiceNo suggests a number for a new draft
	NextInvoiceNo(ctx context.Context) (string, error)

	// Summary totals the whole book
	Summary(ctx context.Context) (*BookSummary, error)
}

// NumberingOptions controls invoice number suggestions
type NumberingOptions struct {
	Prefix string
	Width  int
}

type invoiceService struct {
	invoiceRepo repository.InvoiceRepository
	numbering   NumberingOptions
	now         func() time.Time
	logger      *zap.Logger
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	numbering NumberingOptions,
	logger *zap.Logger,
) InvoiceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		numbering:   numbering,
		now:         time.Now,
		logger:      logger,
	}
}

func (s *invoiceService) Save(ctx context.Context, inv domain.Invoice) (*domain.SavedInvoice, error) {
	if err := inv.ValidateForSave(); err != nil {
		return nil, err
	}

	saved := domain.NewSavedInvoice(&inv, s.now())
	if err := s.invoiceRepo.Create(ctx, saved); err != nil {
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	s.logger.Info("invoice saved",
		zap.Int64("id", saved.ID),
		zap.String("invoice_no", saved.InvoiceNo),
		zap.Int("items", len(saved.Items)),
		zap.String("grand_total", saved.Totals.Grand.StringFixed(2)))

	return saved, nil
}

func (s *invoiceService) Search(ctx context.Context, term string) ([]*domain.SavedInvoice, error) {
	all, err := s.invoiceRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if term == "" {
		return all, nil
	}

	matches := make([]*domain.SavedInvoice, 0, len(all))
	for _, inv := range all {
		if inv.Matches(term) {
			matches = append(matches, inv)
		}
	}
	return matches, nil
}

func (s *invoiceService) Get(ctx context.Context, id int64) (*domain.SavedInvoice, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrInvoiceNotFound, id)
		}
		return nil, err
	}
	return inv, nil
}

func (s *invoiceService) Count(ctx context.Context) (int, error) {
	return s.invoiceRepo.Count(ctx)
}

func (s *invoiceService) NextInvoiceNo(ctx context.Context) (string, error) {
	n, err := s.invoiceRepo.Count(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to generate invoice number: %w", err)
	}
	return SuggestInvoiceNo(s.numbering.Prefix, s.numbering.Width, n), nil
}

func (s *invoiceService) Summary(ctx context.Context) (*BookSummary, error) {
	all, err := s.invoiceRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	sum := &BookSummary{
		Count:  len(all),
		Parts:  decimal.Zero,
		Labour: decimal.Zero,
		Grand:  decimal.Zero,
	}
	for _, inv := range all {
		sum.Parts = sum.Parts.Add(inv.Totals.Parts)
		sum.Labour = sum.Labour.Add(inv.Totals.Labour)
		sum.Grand = sum.Grand.Add(inv.Totals.Grand)
	}
	return sum, nil
}
