package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOpenBarePath(t *testing.T) {
	sink, err := Open(t.TempDir(), "articles", false, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, sink.Close())
}

func TestOpenSQLiteURL(t *testing.T) {
	sink, err := Open("sqlite://"+t.TempDir(), "articles", true, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, sink.Close())
}

func TestOpenUnknownScheme(t *testing.T) {
	_, err := Open("postgres://localhost/db", "articles", false, zap.NewNop())
	assert.Error(t, err)
}
