package usecase

import (
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/tiksnap/tiksnap/pkg/domain/model"
	"github.com/tiksnap/tiksnap/pkg/domain/types"
)

// inflight tracks which operations are outstanding. Each action has its own
// flag, so different operations never block each other.
type inflight struct {
	mu   sync.Mutex
	busy map[model.Action]bool
}

func newInflight() *inflight {
	return &inflight{busy: make(map[model.Action]bool)}
}

// acquire marks action as outstanding. It fails with a busy error when the
// action is already running.
func (f *inflight) acquire(action model.Action) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.busy[action] {
		return goerr.New("operation already in flight",
			goerr.T(types.ErrTagBusy),
			goerr.V("action", action),
		)
	}
	f.busy[action] = true
	return nil
}

func (f *inflight) release(action model.Action) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.busy, action)
}

func (f *inflight) running(action model.Action) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy[action]
}
