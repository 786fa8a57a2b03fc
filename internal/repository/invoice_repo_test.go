package repository

import (
	"context"
	"testing"
	"time"

	"github.com/andy/garagebill/internal/db"
	"github.com/andy/garagebill/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *InvoiceRepo {
	t.Helper()
	database, err := db.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return NewInvoiceRepo(database)
}

func sampleInvoice(customer, no string, items ...domain.LineItem) *domain.SavedInvoice {
	inv := domain.NewInvoice(domain.ShopIdentity{WorkshopName: "AUTO SERVICE CENTER"}, no, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	inv.CustomerName = customer
	inv.VehicleNo = "GJ05AB1234"
	inv.Items = items
	return domain.NewSavedInvoice(inv, time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC))
}

func TestInvoiceRepo_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	oil := domain.NewLineItem("Oil Change Service", domain.ParseAmount("800"), domain.ParseAmount("200"), "")
	brake := domain.NewLineItem("Brake Pad", domain.ParseAmount("450.50"), domain.ParseAmount("150"), "front")
	saved := sampleInvoice("Raj Patel", "INV-0001", oil, brake)

	require.NoError(t, repo.Create(ctx, saved))
	require.NotZero(t, saved.ID)

	got, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)

	assert.Equal(t, "Raj Patel", got.CustomerName)
	assert.Equal(t, "INV-0001", got.InvoiceNo)
	assert.Equal(t, "2024-05-01", got.DateString())
	assert.True(t, got.SavedAt.Equal(saved.SavedAt))
	assert.Equal(t, "1250.5", got.Totals.Parts.String())
	assert.Equal(t, "350", got.Totals.Labour.String())
	assert.Equal(t, "1600.5", got.Totals.Grand.String())

	require.Len(t, got.Items, 2)
	assert.Equal(t, oil.ID, got.Items[0].ID)
	assert.Equal(t, "Brake Pad", got.Items[1].Description)
	assert.Equal(t, "front", got.Items[1].Remark)
	assert.Equal(t, "450.5", got.Items[1].Parts.String())
}

func TestInvoiceRepo_GetByID_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInvoiceRepo_Create_RejectsBlankCustomer(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	err := repo.Create(ctx, sampleInvoice("  ", "INV-0001"))
	assert.ErrorIs(t, err, domain.ErrCustomerNameRequired)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestInvoiceRepo_List_NewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	for _, name := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Create(ctx, sampleInvoice(name, "INV-"+name, domain.NewBlankLineItem())))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "third", list[0].CustomerName)
	assert.Equal(t, "second", list[1].CustomerName)
	assert.Equal(t, "first", list[2].CustomerName)
	for _, inv := range list {
		assert.Len(t, inv.Items, 1)
	}

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestInvoiceRepo_EmptyItems(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	saved := sampleInvoice("Raj Patel", "INV-0001")
	require.NoError(t, repo.Create(ctx, saved))

	got, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.Items)
	assert.Empty(t, got.Items)
	assert.True(t, got.Totals.Grand.IsZero())
}
