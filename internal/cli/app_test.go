package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/telephoto/internal/ledger"
)

// Opening the ledger from command wiring must work without any test-only
// driver imports: the ledger package itself registers the sqlite driver.
func TestOpenLedger_FromCommandWiring(t *testing.T) {
	ctx := context.Background()

	db, err := ledger.Open(ctx, filepath.Join(t.TempDir(), "telephoto.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	uploaded, err := ledger.NewSQLiteRepository(db).IsUploaded(ctx, "file:///dcim/a.jpg")
	require.NoError(t, err)
	assert.False(t, uploaded)
}
