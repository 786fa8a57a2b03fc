package service

import (
	"context"
	"errors"
	"time"

	"github.com/andy/garagebill/internal/domain"
)

// ErrNotInList is returned when a saved invoice is opened from outside the invoice book
var ErrNotInList = errors.New("saved invoices can only be opened from the invoice book")

// View is the screen the operator is on
type View int

const (
	ViewCreate View = iota
	ViewList
	ViewDetail
)

// String returns the view name
func (v View) String() string {
	switch v {
	case ViewCreate:
		return "create"
	case ViewList:
		return "list"
	case ViewDetail:
		return "view"
	default:
		return "unknown"
	}
}

// Session is the per-process state of the invoice tool: the draft, the
// invoice book and where the operator is. It is created at startup and
// discarded on exit.
type Session struct {
	invoices InvoiceService
	draft    *Draft
	view     View
	selected *domain.SavedInvoice
	search   string
	now      func() time.Time
}

// NewSession seeds the first draft with a suggested invoice number
func NewSession(ctx context.Context, invoices InvoiceService, shop domain.ShopIdentity) (*Session, error) {
	s := &Session{
		invoices: invoices,
		view:     ViewCreate,
		now:      time.Now,
	}
	no, err := invoices.NextInvoiceNo(ctx)
	if err != nil {
		return nil, err
	}
	s.draft = NewDraft(shop, no, s.now())
	return s, nil
}

// Draft returns the invoice being edited
func (s *Session) Draft() *Draft {
	return s.draft
}

// View returns the current screen
func (s *Session) View() View {
	return s.view
}

// Selected returns the invoice open in the detail view, if any
func (s *Session) Selected() *domain.SavedInvoice {
	return s.selected
}

// SearchTerm returns the list filter
func (s *Session) SearchTerm() string {
	return s.search
}

// SetSearch changes the list filter
func (s *Session) SetSearch(term string) {
	s.search = term
}

// Visible returns the saved invoices matching the current search term
func (s *Session) Visible(ctx context.Context) ([]*domain.SavedInvoice, error) {
	return s.invoices.Search(ctx, s.search)
}

// SavedCount returns the size of the invoice book
func (s *Session) SavedCount(ctx context.Context) (int, error) {
	return s.invoices.Count(ctx)
}

// UpdateField edits a draft field. Clearing the invoice number brings back
// the suggested one.
func (s *Session) UpdateField(ctx context.Context, name domain.Field, value string) error {
	s.draft.UpdateField(name, value)
	if name == domain.FieldInvoiceNo && value == "" {
		no, err := s.invoices.NextInvoiceNo(ctx)
		if err != nil {
			return err
		}
		s.draft.UpdateField(domain.FieldInvoiceNo, no)
	}
	return nil
}

// Save stores the current draft in the invoice book. The draft stays as is.
func (s *Session) Save(ctx context.Context) (*domain.SavedInvoice, error) {
	return s.invoices.Save(ctx, s.draft.Snapshot())
}

// ViewAll moves from the editor to the invoice book
func (s *Session) ViewAll() {
	s.view = ViewList
	s.selected = nil
}

// BackToCreate returns to the editor with the draft untouched
func (s *Session) BackToCreate() {
	s.view = ViewCreate
	s.selected = nil
}

// NewInvoice resets the draft and opens the editor
func (s *Session) NewInvoice(ctx context.Context) error {
	no, err := s.invoices.NextInvoiceNo(ctx)
	if err != nil {
		return err
	}
	s.draft.Reset(no, s.now())
	s.view = ViewCreate
	s.selected = nil
	return nil
}

// Select opens a saved invoice read-only from the invoice book. An unknown
// ID, or any other view, leaves the session as it was.
func (s *Session) Select(ctx context.Context, id int64) error {
	if s.view != ViewList {
		return ErrNotInList
	}
	inv, err := s.invoices.Get(ctx, id)
	if err != nil {
		return err
	}
	s.selected = inv
	s.view = ViewDetail
	return nil
}

// BackToList closes the detail view
func (s *Session) BackToList() {
	s.view = ViewList
	s.selected = nil
}
