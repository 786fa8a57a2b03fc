package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/andy/garagebill/internal/domain"
	"github.com/andy/garagebill/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mock implementation
type mockInvoiceRepo struct {
	invoices []*domain.SavedInvoice // newest first
	nextID   int64
	failList error
}

func (m *mockInvoiceRepo) Create(ctx context.Context, invoice *domain.SavedInvoice) error {
	m.nextID++
	invoice.ID = m.nextID
	m.invoices = append([]*domain.SavedInvoice{invoice}, m.invoices...)
	return nil
}

func (m *mockInvoiceRepo) GetByID(ctx context.Context, id int64) (*domain.SavedInvoice, error) {
	for _, inv := range m.invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return nil, fmt.Errorf("%w: %d", repository.ErrNotFound, id)
}

func (m *mockInvoiceRepo) List(ctx context.Context) ([]*domain.SavedInvoice, error) {
	if m.failList != nil {
		return nil, m.failList
	}
	out := make([]*domain.SavedInvoice, len(m.invoices))
	copy(out, m.invoices)
	return out, nil
}

func (m *mockInvoiceRepo) Count(ctx context.Context) (int, error) {
	return len(m.invoices), nil
}

var testShop = domain.ShopIdentity{
	WorkshopName: "AUTO SERVICE CENTER",
	Address:      "Jakatnaka, Surat, Gujarat",
	Phone:        "+91 98765 43210",
	Email:        "info@autoservice.com",
}

func newTestService(repo *mockInvoiceRepo) *invoiceService {
	svc := NewInvoiceService(repo, NumberingOptions{}, nil).(*invoiceService)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }
	return svc
}

func draftInvoice(customer, no, vehicle string) domain.Invoice {
	inv := domain.NewInvoice(testShop, no, time.Now())
	inv.CustomerName = customer
	inv.VehicleNo = vehicle
	inv.Items[0] = domain.NewLineItem("Oil Change Service", domain.ParseAmount("800"), domain.ParseAmount("200"), "")
	return *inv
}

func TestSave_RejectsBlankCustomer(t *testing.T) {
	repo := &mockInvoiceRepo{}
	svc := newTestService(repo)

	for _, name := range []string{"", "   ", "\t"} {
		_, err := svc.Save(context.Background(), draftInvoice(name, "INV-0001", ""))
		assert.ErrorIs(t, err, domain.ErrCustomerNameRequired)
	}
	assert.Empty(t, repo.invoices)
}

func TestSave_PrependsWithFrozenTotals(t *testing.T) {
	ctx := context.Background()
	repo := &mockInvoiceRepo{}
	svc := newTestService(repo)

	first, err := svc.Save(ctx, draftInvoice("Asha", "INV-0001", "GJ01"))
	require.NoError(t, err)

	inv := draftInvoice("Raj Patel", "INV-0002", "GJ05")
	inv.Items = append(inv.Items, domain.NewLineItem("Brake Pad", domain.ParseAmount("450"), domain.ParseAmount("150"), ""))
	second, err := svc.Save(ctx, inv)
	require.NoError(t, err)

	require.Len(t, repo.invoices, 2)
	assert.Same(t, second, repo.invoices[0])
	assert.Same(t, first, repo.invoices[1])
	assert.NotEqual(t, first.ID, second.ID)

	want := domain.CalculateTotals(inv.Items)
	assert.True(t, second.Totals.Grand.Equal(want.Grand))
	assert.Equal(t, "1600", second.Totals.Grand.String())
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), second.SavedAt)

	// later edits to the source do not reach the snapshot
	inv.Items[0].Parts = domain.ParseAmount("1")
	assert.Equal(t, "800", second.Items[0].Parts.String())
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	repo := &mockInvoiceRepo{}
	svc := newTestService(repo)

	for _, inv := range []domain.Invoice{
		draftInvoice("Raj Patel", "INV-0001", "GJ05AB1234"),
		draftInvoice("Suresh", "INV-0002", "MH12RAJ9"),
		draftInvoice("Meena", "INV-0003", "DL3C0001"),
	} {
		_, err := svc.Save(ctx, inv)
		require.NoError(t, err)
	}

	tests := []struct {
		term string
		want []string
	}{
		{"", []string{"Meena", "Suresh", "Raj Patel"}},
		{"raj", []string{"Suresh", "Raj Patel"}},
		{"RAJ", []string{"Suresh", "Raj Patel"}},
		{"inv-0003", []string{"Meena"}},
		{"dl3c", []string{"Meena"}},
		{"nobody", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got, err := svc.Search(ctx, tt.term)
			require.NoError(t, err)
			names := make([]string, 0, len(got))
			for _, inv := range got {
				names = append(names, inv.CustomerName)
			}
			assert.Equal(t, tt.want, names)
		})
	}

	assert.Len(t, repo.invoices, 3)
}

func TestSearch_PropagatesRepoError(t *testing.T) {
	repo := &mockInvoiceRepo{failList: errors.New("boom")}
	svc := newTestService(repo)

	_, err := svc.Search(context.Background(), "x")
	assert.Error(t, err)
}

func TestGet_NotFound(t *testing.T) {
	svc := newTestService(&mockInvoiceRepo{})

	_, err := svc.Get(context.Background(), 9)
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
}

func TestNextInvoiceNo(t *testing.T) {
	ctx := context.Background()
	repo := &mockInvoiceRepo{}
	svc := newTestService(repo)

	no, err := svc.NextInvoiceNo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV-0001", no)

	_, err = svc.Save(ctx, draftInvoice("Raj", no, ""))
	require.NoError(t, err)

	no, err = svc.NextInvoiceNo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV-0002", no)
}

func TestSuggestInvoiceNo(t *testing.T) {
	assert.Equal(t, "INV-0001", SuggestInvoiceNo("", 0, 0))
	assert.Equal(t, "INV-0010", SuggestInvoiceNo("INV", 4, 9))
	assert.Equal(t, "JOB-012", SuggestInvoiceNo("JOB", 3, 11))
	assert.Equal(t, "INV-10000", SuggestInvoiceNo("INV", 4, 9999))
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	repo := &mockInvoiceRepo{}
	svc := newTestService(repo)

	_, err := svc.Save(ctx, draftInvoice("A", "INV-0001", ""))
	require.NoError(t, err)
	_, err = svc.Save(ctx, draftInvoice("B", "INV-0002", ""))
	require.NoError(t, err)

	sum, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Count)
	assert.Equal(t, "1600", sum.Parts.String())
	assert.Equal(t, "400", sum.Labour.String())
	assert.Equal(t, "2000", sum.Grand.String())
}
