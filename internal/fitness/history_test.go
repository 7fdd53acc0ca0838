package fitness

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPushFrontBounded(t *testing.T) {
	var list []int
	for v := 1; v <= 10; v += 1 {
		list = PushFront(list, v, 3)
		require.LessOrEqual(t, len(list), 3)
	}
	// most recent first, oldest evicted
	require.Equal(t, []int{10, 9, 8}, list)
}

func TestPushFrontUnbounded(t *testing.T) {
	var list []string
	list = PushFront(list, "a", 0)
	list = PushFront(list, "b", 0)
	require.Equal(t, []string{"b", "a"}, list)
}

func TestPushFrontDoesNotAliasInput(t *testing.T) {
	orig := []int{2, 1}
	out := PushFront(orig, 3, 10)
	out[1] = 99
	require.Equal(t, []int{2, 1}, orig)
}
