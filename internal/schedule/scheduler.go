package schedule

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/bashhack/commitbot/internal/errors"
	"github.com/bashhack/commitbot/internal/logger"
)

const (
	// DefaultPollInterval is how often the loop checks for due triggers
	DefaultPollInterval = time.Minute

	// randomSlotProbability is the chance each slot is kept in Random mode
	randomSlotProbability = 0.6
)

// Action is the work a trigger performs when it comes due
type Action func(ctx context.Context) error

// Trigger is a registered (time-of-day, action) pair
type Trigger struct {
	At      TimeOfDay
	NextRun time.Time
	action  Action
}

// Config holds scheduler settings taken from the configuration file
type Config struct {
	Frequency       Frequency
	Slots           []string
	WeekendActivity bool
	PollInterval    time.Duration
}

// Scheduler fires registered triggers from a single polling loop.
// It is not safe for concurrent use; Run owns it until the context ends.
type Scheduler struct {
	cfg      Config
	slots    []TimeOfDay
	logger   logger.Logger
	rnd      *rand.Rand
	now      func() time.Time
	triggers []*Trigger

	startTime time.Time
	fired     int
	skipped   int
	failed    int
}

// Option configures a Scheduler
type Option func(*Scheduler)

// WithRand injects the randomness used for slot selection
func WithRand(r *rand.Rand) Option {
	return func(s *Scheduler) { s.rnd = r }
}

// WithClock injects the time source
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// New validates cfg and creates a Scheduler with no triggers
func New(cfg Config, log logger.Logger, opts ...Option) (*Scheduler, error) {
	if !cfg.Frequency.Valid() {
		return nil, errors.NewConfigError("commit_frequency", string(cfg.Frequency), errors.ErrInvalidConfiguration)
	}

	slots, err := ParseSlots(cfg.Slots)
	if err != nil {
		return nil, errors.NewConfigError("schedule_times", cfg.Slots, err)
	}
	if len(slots) < cfg.Frequency.MinSlots() {
		return nil, errors.NewConfigError("schedule_times", cfg.Slots,
			errors.Wrapf(errors.ErrInvalidConfiguration, "%s needs at least %d distinct slots", cfg.Frequency, cfg.Frequency.MinSlots()))
	}

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}

	s := &Scheduler{
		cfg:    cfg,
		slots:  slots,
		logger: log,
		rnd:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), //nolint:gosec // slot selection
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.startTime = s.now()

	return s, nil
}

// Register builds the day's triggers for action according to the
// frequency mode and returns the selected slots. Randomness is applied
// here, once; firing is deterministic afterwards.
func (s *Scheduler) Register(action Action) []TimeOfDay {
	var selected []TimeOfDay

	switch s.cfg.Frequency {
	case Daily:
		slot := s.slots[s.rnd.IntN(len(s.slots))]
		selected = append(selected, slot)
		s.logger.StatusMessage("📅 Scheduled daily commits at %s", slot)

	case TwiceDaily:
		for _, idx := range s.rnd.Perm(len(s.slots))[:2] {
			selected = append(selected, s.slots[idx])
			s.logger.StatusMessage("📅 Scheduled commits at %s", s.slots[idx])
		}

	case Random:
		for _, slot := range s.slots {
			if s.rnd.Float64() < randomSlotProbability {
				selected = append(selected, slot)
				s.logger.StatusMessage("📅 Scheduled random commit at %s", slot)
			}
		}
		if len(selected) == 0 {
			s.logger.WarningToUser("No time slots were selected; the bot will stay idle until restarted")
		}
	}

	now := s.now()
	for _, slot := range selected {
		s.triggers = append(s.triggers, &Trigger{At: slot, NextRun: slot.Next(now), action: action})
	}
	s.logger.Info("registered %d triggers (%s)", len(selected), s.cfg.Frequency)

	return selected
}

// Triggers returns a snapshot of the registered triggers
func (s *Scheduler) Triggers() []Trigger {
	out := make([]Trigger, 0, len(s.triggers))
	for _, t := range s.triggers {
		out = append(out, *t)
	}
	return out
}

// ShouldRunOn is the weekday gate: with weekend activity disabled,
// Saturday and Sunday are skipped.
func ShouldRunOn(t time.Time, weekendActivity bool) bool {
	if weekendActivity {
		return true
	}
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// RunPending fires every due trigger once and moves it to its next day.
// It returns how many actions were invoked.
func (s *Scheduler) RunPending(ctx context.Context) int {
	now := s.now()
	invoked := 0

	for _, t := range s.triggers {
		if now.Before(t.NextRun) {
			continue
		}
		t.NextRun = t.At.Next(now)

		if !ShouldRunOn(now, s.cfg.WeekendActivity) {
			s.skipped++
			s.logger.StatusMessage("⏭️  Skipping commit (weekend activity disabled)")
			continue
		}

		s.logger.StatusMessage("🤖 Running scheduled commit at %s", now.Format("15:04:05"))
		invoked++
		s.fired++
		if err := t.action(ctx); err != nil {
			s.failed++
			s.logger.Error("Scheduled commit at %s failed: %v", t.At, err)
		}
	}

	return invoked
}

// Run polls for due triggers until ctx is cancelled and returns ctx.Err().
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	s.RunPending(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Received cancellation signal, stopping scheduler")
			return ctx.Err()
		case <-ticker.C:
			s.RunPending(ctx)
		}
	}
}

// PrintSummary prints what happened since the scheduler was created
func (s *Scheduler) PrintSummary() {
	duration := s.now().Sub(s.startTime)
	hours := int(duration.Hours())
	minutes := int(duration.Minutes()) % 60
	seconds := int(duration.Seconds()) % 60

	s.logger.StatusMessage("")
	s.logger.StatusMessage("---------------------------------------------")
	s.logger.StatusMessage("📊 commitbot Session Summary")
	s.logger.StatusMessage("---------------------------------------------")
	s.logger.StatusMessage("🤖 Scheduled runs: %d", s.fired)
	s.logger.StatusMessage("❌ Failed runs: %d", s.failed)
	s.logger.StatusMessage("⏭️  Skipped (weekend): %d", s.skipped)
	s.logger.StatusMessage("⏱️  Session duration: %dh %dm %ds", hours, minutes, seconds)
	s.logger.StatusMessage("---------------------------------------------")
}
