package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/drake/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractLayout(board string) *domain.Layout {
	return &domain.Layout{
		Board: board,
		Columns: []domain.Column{
			{ID: "todo", Items: []string{"a1", "a2"}},
			{ID: "done", Items: []string{}},
		},
		UpdatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

// RunLayoutStoreContract runs a suite of tests to verify that a LayoutStore
// implementation adheres to the defined interface contract.
func RunLayoutStoreContract(t *testing.T, store LayoutStore) {
	ctx := context.Background()
	board := "contract-board-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		layout := contractLayout(board)
		err := store.Save(ctx, board, layout)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, board)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, layout.Board, loaded.Board)
		assert.Equal(t, layout.Columns, loaded.Columns)
		assert.True(t, layout.UpdatedAt.Equal(loaded.UpdatedAt))
	})

	t.Run("Stored copies are isolated", func(t *testing.T) {
		layout := contractLayout(board)
		require.NoError(t, store.Save(ctx, board, layout))
		layout.Columns[0].Items[0] = "mutated"

		loaded, err := store.Load(ctx, board)
		require.NoError(t, err)
		assert.Equal(t, "a1", loaded.Columns[0].Items[0])

		loaded.Columns[0].Items[1] = "mutated"
		again, err := store.Load(ctx, board)
		require.NoError(t, err)
		assert.Equal(t, "a2", again.Columns[0].Items[1])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+board)
		assert.ErrorIs(t, err, domain.ErrLayoutNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, board, contractLayout(board)))

		err := store.Delete(ctx, board)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, board)
		assert.ErrorIs(t, err, domain.ErrLayoutNotFound, "Load after Delete should return ErrLayoutNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := board + "-1"
		id2 := board + "-2"
		_ = store.Save(ctx, id1, contractLayout(id1))
		_ = store.Save(ctx, id2, contractLayout(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		boards, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, boards, id1)
		assert.Contains(t, boards, id2)
	})
}
