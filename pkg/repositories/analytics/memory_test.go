package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/fadedpez/bankroll/pkg/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySinkPrune(t *testing.T) {
	ctx := context.Background()
	sink := NewMemorySink()
	now := time.Now()

	require.NoError(t, sink.IndexPlay(ctx, &entities.PlayResult{ID: "old", PlayedAt: now.Add(-48 * time.Hour)}))
	require.NoError(t, sink.IndexPlay(ctx, &entities.PlayResult{ID: "new", PlayedAt: now}))
	require.NoError(t, sink.IndexError(ctx, &entities.ErrorReport{ID: "old-err", OccurredAt: now.Add(-48 * time.Hour)}))

	removed, err := sink.PruneOlderThan(ctx, now.Add(-24*time.Hour))

	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)
	require.Len(t, sink.Plays(), 1)
	assert.Equal(t, "new", sink.Plays()[0].ID)
	assert.Empty(t, sink.Errors())
}
