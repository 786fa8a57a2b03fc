package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMemory_AppliesSchema(t *testing.T) {
	database, err := OpenMemory()
	require.NoError(t, err)
	defer database.Close()

	var version int
	require.NoError(t, database.QueryRow("SELECT MAX(version) FROM schema_version").Scan(&version))
	assert.Equal(t, len(migrations), version)

	for _, table := range []string{"invoices", "invoice_items"} {
		var name string
		err := database.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		require.NoError(t, err, "table %s", table)
	}
}

func TestRunMigrations_Idempotent(t *testing.T) {
	database, err := OpenMemory()
	require.NoError(t, err)
	defer database.Close()

	assert.NoError(t, database.RunMigrations())
}

func TestOpenMemory_SessionsAreIsolated(t *testing.T) {
	a, err := OpenMemory()
	require.NoError(t, err)
	defer a.Close()

	b, err := OpenMemory()
	require.NoError(t, err)
	defer b.Close()

	_, err = a.Exec("INSERT INTO invoices (invoice_no, customer_name, saved_at) VALUES ('INV-0001', 'Raj', '2024-01-01T00:00:00Z')")
	require.NoError(t, err)

	var count int
	require.NoError(t, b.QueryRow("SELECT COUNT(*) FROM invoices").Scan(&count))
	assert.Zero(t, count)
}
