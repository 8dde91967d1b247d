package texts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typerace/internal/texts"
)

func TestProvider_Get(t *testing.T) {
	p := texts.NewProvider()
	require.Greater(t, p.Count(), 0, "built-in corpus must not be empty")

	for id := 0; id < p.Count(); id++ {
		text, ok := p.Get(id)
		require.True(t, ok)
		assert.NotEmpty(t, text)
	}

	_, ok := p.Get(-1)
	assert.False(t, ok)
	_, ok = p.Get(p.Count())
	assert.False(t, ok)
}

func TestProvider_PickInRange(t *testing.T) {
	p := texts.NewProvider()

	for i := 0; i < 200; i++ {
		id := p.Pick()
		assert.GreaterOrEqual(t, id, 0)
		assert.Less(t, id, p.Count())
	}
}

func TestProvider_EmptyCorpusFallsBack(t *testing.T) {
	for _, entries := range [][]string{nil, {}} {
		p := texts.NewProviderWith(entries)
		require.Greater(t, p.Count(), 0)

		_, ok := p.Get(p.Pick())
		assert.True(t, ok)
	}
}

func TestProvider_CustomCorpus(t *testing.T) {
	p := texts.NewProviderWith([]string{"only entry"})

	assert.Equal(t, 1, p.Count())
	assert.Equal(t, 0, p.Pick())

	text, ok := p.Get(0)
	require.True(t, ok)
	assert.Equal(t, "only entry", text)
}
