package cache

import (
	"log/slog"
	"time"
)

// Cleaner is implemented by caches that can drop expired entries.
type Cleaner interface {
	CleanExpired() int
}

// Janitor sweeps registered caches on a fixed interval.
type Janitor struct {
	caches []Cleaner
	stop   chan struct{}
	done   chan struct{}
}

func NewJanitor(caches ...Cleaner) *Janitor {
	return &Janitor{
		caches: caches,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

func (j *Janitor) Start(interval time.Duration) {
	go j.run(interval)
}

func (j *Janitor) run(interval time.Duration) {
	defer close(j.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cleaned := 0
			for _, c := range j.caches {
				cleaned += c.CleanExpired()
			}
			if cleaned > 0 {
				slog.Debug("Cache sweep", "removed", cleaned)
			}
		case <-j.stop:
			return
		}
	}
}

func (j *Janitor) Stop() {
	close(j.stop)
	<-j.done
}
