package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fadedpez/bankroll/pkg/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMemory(t *testing.T) {
	stores, err := Open(context.Background(), &Options{Type: TypeMemory})
	require.NoError(t, err)

	assert.NoError(t, stores.Close())
}

func TestOpenSQLite(t *testing.T) {
	ctx := context.Background()
	opts := NewOptions()
	opts.Path = filepath.Join(t.TempDir(), "nested", "bankroll.db")

	stores, err := Open(ctx, opts)
	require.NoError(t, err)

	record := entities.NewCurrencyRecord("user-1")
	record.CurrencyTotal = 42
	require.NoError(t, stores.Currency.Save(ctx, record))
	require.NoError(t, stores.OptOuts.Save(ctx, &entities.OptOut{UserID: "user-1", Currency: true}))
	require.NoError(t, stores.Close())

	// reopening applies no migrations twice and keeps the data
	stores, err = Open(ctx, opts)
	require.NoError(t, err)
	defer stores.Close()

	got, err := stores.Currency.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.CurrencyTotal)

	optOut, err := stores.OptOuts.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, optOut.Currency)
}

func TestOpenUnknownType(t *testing.T) {
	_, err := Open(context.Background(), &Options{Type: "postgres"})

	assert.Error(t, err)
}
