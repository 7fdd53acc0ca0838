package dbutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFinalizeRebindsPlaceholders(t *testing.T) {
	query, args := Finalize("SELECT id FROM workouts WHERE user_id = ? AND name = ?",
		[]interface{}{"u1", "bench"})
	require.Equal(t, "SELECT id FROM workouts WHERE user_id = $1 AND name = $2", query)
	require.Equal(t, []interface{}{"u1", "bench"}, args)
}

func TestFinalizeRewritesMySQLLimit(t *testing.T) {
	query, args := Finalize("SELECT id FROM workouts WHERE user_id = ? LIMIT ?,?",
		[]interface{}{"u1", 20, 10})
	require.Equal(t, "SELECT id FROM workouts WHERE user_id = $1 LIMIT $2 OFFSET $3", query)
	require.Equal(t, []interface{}{"u1", 10, 20}, args)
}

func TestFinalizeLeavesPlainLimitAlone(t *testing.T) {
	query, args := Finalize("SELECT id FROM workouts LIMIT ?", []interface{}{5})
	require.Equal(t, "SELECT id FROM workouts LIMIT $1", query)
	require.Equal(t, []interface{}{5}, args)
}
