package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	plain := "messi10"

	digest := HashPassword(plain)
	require.Len(t, digest, 64)

	require.Equal(t, digest, HashPassword(plain))
	require.NotEqual(t, digest, HashPassword("messi11"))
	require.NotEqual(t, digest, HashPassword(""))
}
