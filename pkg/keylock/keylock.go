// Package keylock provides mutual exclusion scoped to a string key.
// Callers holding different keys never block each other.
package keylock

import (
	"context"
	"sync"
)

type entry struct {
	sem  chan struct{}
	refs int
}

// Locker набор мьютексов по ключу. Нулевое значение готово к использованию.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*entry
}

// New создает новый Locker
func New() *Locker {
	return &Locker{locks: make(map[string]*entry)}
}

// Lock блокирует ключ. Ожидание прерывается отменой контекста.
// Возвращенную функцию нужно вызвать ровно один раз.
func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	e := l.acquireEntry(key)

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		l.releaseEntry(key, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.sem
			l.releaseEntry(key, e)
		})
	}, nil
}

// DoLocked выполняет fn, удерживая блокировку ключа
func (l *Locker) DoLocked(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	unlock, err := l.Lock(ctx, key)
	if err != nil {
		return err
	}
	defer unlock()

	return fn(ctx)
}

// Len количество ключей, по которым сейчас есть владельцы или ожидающие
func (l *Locker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

func (l *Locker) acquireEntry(key string) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.locks == nil {
		l.locks = make(map[string]*entry)
	}
	e, ok := l.locks[key]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		l.locks[key] = e
	}
	e.refs++
	return e
}

func (l *Locker) releaseEntry(key string, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(l.locks, key)
	}
}
