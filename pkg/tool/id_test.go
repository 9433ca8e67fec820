package tool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateUUIDV7_SortsInCreationOrder(t *testing.T) {
	prev := GenerateUUIDV7()
	for i := 0; i < 100; i++ {
		next := GenerateUUIDV7()
		require.Less(t, prev, next)
		prev = next
	}
}
