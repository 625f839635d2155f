package coordinator

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mutware/mutctl/internal/protocol"
)

// RunOutcome tracks one completed or failed analysis run.
type RunOutcome struct {
	RunID     string            `json:"run_id"`
	ExitCode  protocol.ExitCode `json:"exit_code"`
	Success   bool              `json:"success"`
	Failure   string            `json:"failure,omitempty"`
	Records   uint64            `json:"records"`
	Attempts  int               `json:"attempts"`
	StartedAt time.Time         `json:"started_at"`
	Duration  time.Duration     `json:"duration"`
}

// RunLog stores run outcomes by stable run_id.
type RunLog struct {
	mu    sync.RWMutex
	items map[string]RunOutcome
}

func NewRunLog() *RunLog {
	return &RunLog{
		items: make(map[string]RunOutcome),
	}
}

func (l *RunLog) Upsert(item RunOutcome) {
	key := strings.TrimSpace(item.RunID)
	if key == "" {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items[key] = item
}

func (l *RunLog) Get(runID string) (RunOutcome, bool) {
	key := strings.TrimSpace(runID)
	l.mu.RLock()
	defer l.mu.RUnlock()
	item, ok := l.items[key]
	return item, ok
}

func (l *RunLog) List() []RunOutcome {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]RunOutcome, 0, len(l.items))
	for _, item := range l.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].RunID < out[j].RunID
	})
	return out
}
