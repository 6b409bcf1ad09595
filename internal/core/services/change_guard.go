package services

import (
	"os"
	"sync"
	"time"
)

type fileStamp struct {
	size    int64
	modTime time.Time
}

// ChangeGuard tells apart real edits of an assembly from the writes the
// patcher itself just made to it.
type ChangeGuard struct {
	mu     sync.Mutex
	stamps map[string]fileStamp
}

// NewChangeGuard creates an empty guard
func NewChangeGuard() *ChangeGuard {
	return &ChangeGuard{stamps: make(map[string]fileStamp)}
}

// Remember records the current size and modification time of path
func (g *ChangeGuard) Remember(path string) {
	info, err := os.Stat(path)

	g.mu.Lock()
	defer g.mu.Unlock()

	if err != nil {
		delete(g.stamps, path)
		return
	}
	g.stamps[path] = fileStamp{size: info.Size(), modTime: info.ModTime()}
}

// Changed reports whether path differs from what was last remembered.
// Unknown paths count as changed; a missing file does not.
func (g *ChangeGuard) Changed(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	stamp, ok := g.stamps[path]
	if !ok {
		return true
	}
	return stamp.size != info.Size() || !stamp.modTime.Equal(info.ModTime())
}
