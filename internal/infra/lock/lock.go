package lock

import (
	"context"
	"errors"
	"slices"
	"time"
)

// ErrNotObtained блокировка не получена за отведенное время
var ErrNotObtained = errors.New("lock: not obtained")

// Release освобождает блокировку
type Release func()

// Locker блокировка по ключу с ограниченным ожиданием.
// wait == 0 означает одну попытку без ожидания.
type Locker interface {
	Acquire(ctx context.Context, key string, wait time.Duration) (Release, error)
}

// AcquireAll захватывает ключи в лексикографическом порядке, дубликаты схлопываются.
// При ошибке уже захваченные ключи освобождаются.
func AcquireAll(ctx context.Context, l Locker, keys []string, wait time.Duration) (Release, error) {
	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	releases := make([]Release, 0, len(sorted))
	releaseAll := func() {
		for i := len(releases) - 1; i >= 0; i-- {
			releases[i]()
		}
	}

	for _, key := range sorted {
		release, err := l.Acquire(ctx, key, wait)
		if err != nil {
			releaseAll()
			return nil, err
		}
		releases = append(releases, release)
	}
	return releaseAll, nil
}
