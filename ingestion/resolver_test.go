package ingestion

import (
	"context"
	"testing"

	"github.com/hyphal/mycelia/vault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVault(t *testing.T) *vault.Vault {
	t.Helper()
	v, err := vault.New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, v.EnsureStructure())
	return v
}

func TestResolver(t *testing.T) {
	v := newTestVault(t)
	ctx := context.Background()

	_, err := v.WriteNote("topics", "niche-market-software-ideas.md", "notes about saas")
	require.NoError(t, err)
	_, err = v.WriteNote("topics", "gardening.md", "tomatoes")
	require.NoError(t, err)
	_, err = v.WriteNote("people", "niche-market-software-ideas.md", "a person, oddly")
	require.NoError(t, err)

	resolver := NewResolver(v)

	t.Run("exact match", func(t *testing.T) {
		got, err := resolver.Resolve(ctx, "topics", "niche-market-software-ideas.md")
		require.NoError(t, err)
		assert.Equal(t, "niche-market-software-ideas.md", got)
	})

	t.Run("fuzzy match on singular vs plural stem", func(t *testing.T) {
		got, err := resolver.Resolve(ctx, "topics", "niche-market-software-idea.md")
		require.NoError(t, err)
		assert.Equal(t, "niche-market-software-ideas.md", got)
	})

	t.Run("unrelated filename is new", func(t *testing.T) {
		got, err := resolver.Resolve(ctx, "topics", "gardening-tips.md")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("equal scores break ties lexicographically", func(t *testing.T) {
		_, err := v.WriteNote("decisions", "niche-market-software-ideas.md", "a")
		require.NoError(t, err)
		_, err = v.WriteNote("decisions", "niche-market-software-plans.md", "b")
		require.NoError(t, err)

		got, err := resolver.Resolve(ctx, "decisions", "niche-market-software-idea.md")
		require.NoError(t, err)
		assert.Equal(t, "niche-market-software-ideas.md", got)
	})

	t.Run("match is folder scoped", func(t *testing.T) {
		got, err := resolver.Resolve(ctx, "ideas", "niche-market-software-idea.md")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "niche-software-farriers", "niche-software-farriers", 1.0},
		{"subset", "niche-software", "niche-software-farriers", 2.0 / 3.0},
		{"disjoint", "gardening-tips", "niche-software", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := similarity(stemWords(tt.a), stemWords(tt.b))
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}
