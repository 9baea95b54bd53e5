package embeddings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateBatchRejectsEmptyInput(t *testing.T) {
	g := NewGenerator("test-key")

	_, err := g.GenerateBatch(context.Background(), nil)
	require.Error(t, err)

	_, err = g.GenerateBatch(context.Background(), []string{"a valid text", ""})
	require.Error(t, err)
}
