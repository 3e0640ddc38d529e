package lock

import (
	"context"
	"sync"
	"time"
)

// KeyedMutex блокировки по ключу внутри процесса.
// Запись ключа живет, пока есть владелец или ожидающий; потом удаляется.
type KeyedMutex struct {
	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{slots: make(map[string]*slot)}
}

func (k *KeyedMutex) ref(key string) *slot {
	k.mu.Lock()
	defer k.mu.Unlock()

	s, ok := k.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		k.slots[key] = s
	}
	s.refs++
	return s
}

func (k *KeyedMutex) unref(key string, s *slot) {
	k.mu.Lock()
	defer k.mu.Unlock()

	s.refs--
	if s.refs == 0 {
		delete(k.slots, key)
	}
}

// Acquire захватывает ключ, ожидая не дольше wait
func (k *KeyedMutex) Acquire(ctx context.Context, key string, wait time.Duration) (Release, error) {
	s := k.ref(key)

	var once sync.Once
	release := func() {
		once.Do(func() {
			<-s.ch
			k.unref(key, s)
		})
	}

	select {
	case s.ch <- struct{}{}:
		return release, nil
	default:
	}
	if wait <= 0 {
		k.unref(key, s)
		return nil, ErrNotObtained
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case s.ch <- struct{}{}:
		return release, nil
	case <-timer.C:
		k.unref(key, s)
		return nil, ErrNotObtained
	case <-ctx.Done():
		k.unref(key, s)
		return nil, ctx.Err()
	}
}

// size количество ключей с владельцем или ожидающими
func (k *KeyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.slots)
}
