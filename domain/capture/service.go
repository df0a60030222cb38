package capture

import (
	"fmt"
	"image"
	"log/slog"
	"sync/atomic"
	"time"
)

const statsLogInterval = 5 * time.Second

// Service owns the capture device lifecycle and exposes the latest frame
// alongside instrumentation data. At most one device is open at a time;
// Stop releases it deterministically. Use NewService to construct an
// instance.
type Service interface {
	Start(index int) error
	Stop()
	LatestFrame() Snapshot
	Running() bool
	Stats() Stats
}

type service struct {
	open     Opener
	interval time.Duration
	logger   *slog.Logger

	running   atomic.Bool
	latest    atomic.Pointer[Snapshot]
	captures  atomic.Uint64
	skipped   atomic.Uint64
	grabNanos atomic.Uint64
	sequence  atomic.Uint64
	done      chan struct{}
}

// NewService constructs a capture service using the given device opener.
// A nil opener defaults to OpenScreen.
func NewService(open Opener, interval time.Duration, logger *slog.Logger) Service {
	if open == nil {
		open = OpenScreen
	}
	if interval <= 0 {
		interval = 30 * time.Millisecond
	}
	return &service{open: open, interval: interval, logger: logger}
}

func (s *service) LatestFrame() Snapshot {
	snap := s.latest.Load()
	if snap == nil {
		return Snapshot{}
	}
	return *snap
}

func (s *service) Running() bool { return s.running.Load() }

func (s *service) Stats() Stats {
	captures := s.captures.Load()
	total := s.grabNanos.Load()
	var avg time.Duration
	if captures > 0 && total > 0 {
		avg = time.Duration(total / captures)
	}
	snapshot := s.LatestFrame()
	age := time.Duration(0)
	if !snapshot.CapturedAt.IsZero() {
		age = time.Since(snapshot.CapturedAt)
	}
	return Stats{
		Captures:       captures,
		Skipped:        s.skipped.Load(),
		AvgCapture:     avg,
		LastCapture:    snapshot.CapturedAt,
		LatestFrameAge: age,
		Sequence:       snapshot.Sequence,
	}
}

// Start opens the device at index and begins the grab loop. Returns
// ErrDeviceUnavailable when the device cannot be opened; calling Start on a
// running service is a no-op error.
func (s *service) Start(index int) error {
	if s.running.Load() {
		return fmt.Errorf("%w: capture already running", ErrDeviceUnavailable)
	}
	dev, err := s.open(index)
	if err != nil {
		return err
	}
	s.done = make(chan struct{})
	s.running.Store(true)
	go s.loop(dev)
	return nil
}

// Stop signals the loop to exit and waits until the device has been
// released. Safe to call while a grab is in flight, and idempotent.
func (s *service) Stop() {
	if !s.running.Load() {
		return
	}
	s.running.Store(false)
	<-s.done
}

func (s *service) loop(dev Device) {
	defer func() {
		if err := dev.Close(); err != nil && s.logger != nil {
			s.logger.Error("capture close", "error", err)
		}
		close(s.done)
	}()
	logTicker := time.NewTicker(statsLogInterval)
	defer logTicker.Stop()
	for s.running.Load() {
		start := time.Now()
		img, err := dev.Grab()
		if err != nil {
			s.skipped.Add(1)
			if s.logger != nil {
				s.logger.Error("capture grab", "error", err)
			}
			time.Sleep(s.interval)
			continue
		}
		s.store(img, time.Since(start))

		select {
		case <-logTicker.C:
			s.logStats()
		default:
		}

		time.Sleep(s.interval)
	}
}

func (s *service) store(img *image.RGBA, elapsed time.Duration) {
	s.grabNanos.Add(uint64(elapsed.Nanoseconds()))
	s.captures.Add(1)
	seq := s.sequence.Add(1)
	s.latest.Store(&Snapshot{Image: img, CapturedAt: time.Now(), Sequence: seq})
}

func (s *service) logStats() {
	if s.logger == nil {
		return
	}
	stats := s.Stats()
	s.logger.Debug("capture.stats",
		"captures", stats.Captures,
		"skipped", stats.Skipped,
		"avg_capture", stats.AvgCapture,
		"age", stats.LatestFrameAge,
	)
}
