package sqlite

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/etnz/stocks"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s, path
}

func TestStore_Empty(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	l, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, l.Len())
}

func TestStore_SaveLoad(t *testing.T) {
	t.Parallel()

	s, path := newTestStore(t)

	l := stocks.NewLedger()
	_, err := l.MergeLot("AAPL", stocks.Q(10), stocks.M(100))
	require.NoError(t, err)
	_, err = l.MergeLot("AAPL", stocks.Q(10), stocks.M(200))
	require.NoError(t, err)
	_, err = l.MergeLot("brk.b", stocks.Q(0.1234), stocks.M(412.555))
	require.NoError(t, err)
	require.NoError(t, s.Save(l))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "BRK.B"}, got.Tickers())
	p, _ := got.Position("BRK.B")
	assert.Equal(t, "0.1234", p.Quantity.String())
	assert.Equal(t, "412.56", p.AverageCost.Fixed())

	// a new connection sees the same state
	require.NoError(t, s.Close())
	s2, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s2.Close() })

	got, err = s2.Load()
	require.NoError(t, err)
	p, _ = got.Position("AAPL")
	assert.Equal(t, "20", p.Quantity.String())
	assert.Equal(t, "150.00", p.AverageCost.Fixed())

	// saving replaces the whole snapshot
	require.NoError(t, l.RemovePosition("AAPL"))
	require.NoError(t, s2.Save(l))
	got, err = s2.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"BRK.B"}, got.Tickers())
}

func TestStore_Corrupt(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		quantity string
		price    string
	}{
		{"Not a number", "ten", "1"},
		{"Zero quantity", "0", "1"},
		{"Negative price", "1", "-3"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, path := newTestStore(t)

			db, err := sql.Open("sqlite3", path)
			require.NoError(t, err)
			t.Cleanup(func() { _ = db.Close() })
			_, err = db.Exec(`INSERT INTO positions (ticker, quantity, buy_price) VALUES (?, ?, ?)`, "AAPL", tc.quantity, tc.price)
			require.NoError(t, err)

			l, err := s.Load()
			require.ErrorIs(t, err, stocks.ErrPersistenceCorrupt)
			require.NotNil(t, l)
			assert.Equal(t, 0, l.Len())
		})
	}
}
