package loader

import (
	"context"
	"os"
	"strings"
	"sync"

	"github.com/minicore-io/minicore/pkg/coreerrors"
)

var (
	defaultOnce sync.Once
	defaultMu   sync.RWMutex
	defaultCore Core
)

// Default returns the process-wide core instance, starting an asynchronous
// load on first use. It returns nil until the background load completes.
// Setting MINICORE_DISABLE=true skips loading entirely.
func Default() Core {
	defaultOnce.Do(func() {
		if strings.EqualFold(os.Getenv(EnvDisable), "true") {
			defaultMu.Lock()
			defaultCore = NewErroredCore(coreerrors.ErrLoaderDisabled)
			defaultMu.Unlock()

			return
		}

		go func() {
			core := New().Load(context.Background())

			defaultMu.Lock()
			defaultCore = core
			defaultMu.Unlock()
		}()
	})

	defaultMu.RLock()
	defer defaultMu.RUnlock()

	return defaultCore
}
