package lock

import (
	"context"
	"sync"
)

type localEntry struct {
	sem  chan struct{}
	refs int
}

// プロセス内のキー単位ロック。単一インスタンス構成用。
type LocalLocker struct {
	mu      sync.Mutex
	entries map[string]*localEntry
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{entries: make(map[string]*localEntry)}
}

func (l *LocalLocker) Lock(ctx context.Context, key string) (Unlock, error) {
	e := l.acquireRef(key)

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		l.releaseRef(key, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.sem
			l.releaseRef(key, e)
		})
	}, nil
}

func (l *LocalLocker) acquireRef(key string) *localEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		e = &localEntry{sem: make(chan struct{}, 1)}
		l.entries[key] = e
	}
	e.refs++
	return e
}

// 待っている人がいなくなったらmapから消す
func (l *LocalLocker) releaseRef(key string, e *localEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}

func (l *LocalLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
