package configwatcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"learnhub_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const configTemplate = `
database:
  driver: postgres
storage:
  type: oss
quiz:
  pass_percent: %d
`

func TestWatchReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(fmt.Sprintf(configTemplate, 60)), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *config.Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, file, func(cfg *config.Config) { reloaded <- cfg })
	}()

	// rewrite at intervals longer than the debounce window until the watcher is attached
	deadline := time.After(15 * time.Second)
	tick := time.NewTicker(debounce + 500*time.Millisecond)
	defer tick.Stop()
	var got *config.Config
	for got == nil {
		select {
		case got = <-reloaded:
		case <-tick.C:
			require.NoError(t, os.WriteFile(file, []byte(fmt.Sprintf(configTemplate, 75)), 0o644))
		case <-deadline:
			t.Fatal("config was not reloaded")
		}
	}
	assert.Equal(t, 75, got.Quiz.PassPercent)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
