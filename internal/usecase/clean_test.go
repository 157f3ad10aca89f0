package usecase

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ytclust/config"
	"ytclust/internal/adapter/normalize"
	"ytclust/internal/domain"
)

type memCache struct {
	mu      sync.Mutex
	entries map[string]string
	puts    int
}

func (m *memCache) GetMany(raw []string) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string)
	for _, r := range raw {
		if v, ok := m.entries[r]; ok {
			out[r] = v
		}
	}
	return out, nil
}

func (m *memCache) PutMany(entries map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entries == nil {
		m.entries = make(map[string]string)
	}
	for k, v := range entries {
		m.entries[k] = v
	}
	m.puts += len(entries)
	return nil
}

func upperPipeline() *normalize.Pipeline {
	return normalize.New(normalize.StageFunc("upper", strings.ToUpper))
}

func TestCleanTexts_KeepsOrder(t *testing.T) {
	texts := make([]string, 50)
	for i := range texts {
		texts[i] = strings.Repeat("x", i%7) + "y"
	}

	uc := NewCleanUseCase(upperPipeline(), 4, nil, nil)

	var mu sync.Mutex
	last := 0
	out, err := uc.CleanTexts(context.Background(), texts, func(processed, total int) {
		mu.Lock()
		defer mu.Unlock()
		if processed > last {
			last = processed
		}
	})
	require.NoError(t, err)

	require.Len(t, out, len(texts))
	for i, text := range texts {
		assert.Equal(t, strings.ToUpper(text), out[i])
	}
	assert.Equal(t, 7, last) // seven distinct texts
}

func TestClean_OverwritesPostClean(t *testing.T) {
	rows := []domain.Row{
		{Index: "0", PreClean: "Hello", PostClean: "Hello"},
		{Index: "1", PreClean: "World", PostClean: "World"},
	}
	uc := NewCleanUseCase(upperPipeline(), 2, nil, nil)

	require.NoError(t, uc.Clean(context.Background(), rows, nil))
	assert.Equal(t, "HELLO", rows[0].PostClean)
	assert.Equal(t, "WORLD", rows[1].PostClean)
	assert.Equal(t, "Hello", rows[0].PreClean)
}

func TestCleanTexts_UsesCache(t *testing.T) {
	cache := &memCache{entries: map[string]string{"a": "cached"}}
	uc := NewCleanUseCase(upperPipeline(), 2, cache, nil)

	out, err := uc.CleanTexts(context.Background(), []string{"a", "b", "b"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"cached", "B", "B"}, out)
	assert.Equal(t, 1, cache.puts)
	assert.Equal(t, "B", cache.entries["b"])
}

func TestCleanTexts_PanicFailsRun(t *testing.T) {
	p := normalize.New(normalize.StageFunc("boom", func(s string) string {
		if s == "bad" {
			panic("stage exploded")
		}
		return s
	}))
	uc := NewCleanUseCase(p, 2, nil, nil)

	_, err := uc.CleanTexts(context.Background(), []string{"ok", "bad", "fine"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stage exploded")
}

func TestCleanTexts_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	uc := NewCleanUseCase(upperPipeline(), 1, nil, nil)
	_, err := uc.CleanTexts(ctx, []string{"a"}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCleanTexts_Empty(t *testing.T) {
	uc := NewCleanUseCase(upperPipeline(), 2, nil, nil)
	out, err := uc.CleanTexts(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestCleanerFactory_DefaultStages(t *testing.T) {
	cfg := config.DefaultConfig().Clean
	factory := NewCleanerFactory(cfg, nil, nil)

	uc, err := factory(nil)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultStages, uc.Pipeline().Names())

	out, err := uc.CleanTexts(context.Background(), []string{"Check https://x.io I LOVE this song!!!"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "check love song", out[0])
}

func TestCleanerFactory_UnknownStage(t *testing.T) {
	cfg := config.DefaultConfig().Clean
	cfg.Stages = []string{"lowercase", "nope"}

	_, err := NewCleanerFactory(cfg, nil, nil)(nil)
	assert.ErrorIs(t, err, normalize.ErrUnknownStage)
}
