// Package watcher polls xkcd for new comics and announces them.
package watcher

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vrsandeep/xkcd-go/xkcd"
)

// LatestFetcher is the part of xkcd.Client the watcher needs.
type LatestFetcher interface {
	Latest() (*xkcd.Comic, error)
}

// Notifier receives announcements, e.g. the websocket hub.
type Notifier interface {
	Broadcast(v any) error
}

// NewComicEvent is broadcast when a comic newer than any seen before appears.
type NewComicEvent struct {
	Type  string      `json:"type"`
	Comic *xkcd.Comic `json:"comic"`
}

// Service checks the latest comic on a schedule.
type Service struct {
	fetcher  LatestFetcher
	notifier Notifier
	log      *slog.Logger

	mu       sync.Mutex
	lastSeen uint32

	scheduler *gocron.Scheduler
}

// NewService creates a watcher. notifier may be nil.
func NewService(fetcher LatestFetcher, notifier Notifier, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		fetcher:  fetcher,
		notifier: notifier,
		log:      log,
	}
}

// Start schedules Check every intervalMinutes, running once immediately to
// record a baseline. An interval of 0 disables the watcher.
func (s *Service) Start(intervalMinutes int) error {
	if intervalMinutes <= 0 {
		s.log.Info("Watch interval is 0, new comic polling is disabled.")
		return nil
	}

	sched := gocron.NewScheduler(time.UTC)
	sched.SingletonModeAll()

	s.log.Info("Scheduling latest comic check", "every_minutes", intervalMinutes)
	_, err := sched.Every(intervalMinutes).Minutes().Do(func() {
		if _, err := s.Check(); err != nil {
			s.log.Warn("Latest comic check failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("could not schedule latest comic check: %w", err)
	}

	s.scheduler = sched
	sched.StartAsync()
	return nil
}

// Stop halts the scheduler, if running.
func (s *Service) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// LastSeen returns the highest comic number observed so far, or 0.
func (s *Service) LastSeen() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Check fetches the latest comic and reports whether it is new. The first
// successful check only records a baseline and never announces.
func (s *Service) Check() (bool, error) {
	comic, err := s.fetcher.Latest()
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	prev := s.lastSeen
	if comic.Num <= prev {
		s.mu.Unlock()
		s.log.Debug("No new comic", "latest", comic.Num)
		return false, nil
	}
	s.lastSeen = comic.Num
	s.mu.Unlock()

	if prev == 0 {
		s.log.Info("Recorded latest comic", "num", comic.Num, "title", comic.Title)
		return false, nil
	}

	s.log.Info("New comic published", "num", comic.Num, "title", comic.Title, "previous", prev)
	if s.notifier != nil {
		if err := s.notifier.Broadcast(NewComicEvent{Type: "new_comic", Comic: comic}); err != nil {
			return true, fmt.Errorf("failed to announce comic %d: %w", comic.Num, err)
		}
	}
	return true, nil
}
