package experiment

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/verte-zerg/chartab/internal/model"
)

// State is the lifecycle position of a Session.
type State int

// Session states.
const (
	StateIdle State = iota
	StatePresented
	StateAnswered
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePresented:
		return "presented"
	case StateAnswered:
		return "answered"
	default:
		return "unknown"
	}
}

// Session holds one user's experiment state. It is not safe for
// concurrent use.
type Session struct {
	id       string
	chooser  Chooser
	clock    func() time.Time
	logger   *zap.Logger
	started  bool
	answered bool
	attempts int
	trials   []model.Trial
}

// Option configures a Session.
type Option func(*Session)

// WithChooser overrides the chart chooser.
func WithChooser(c Chooser) Option {
	return func(s *Session) {
		s.chooser = c
	}
}

// WithClock overrides the time source.
func WithClock(clock func() time.Time) Option {
	return func(s *Session) {
		s.clock = clock
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession returns an idle session.
func NewSession(opts ...Option) *Session {
	s := &Session{
		chooser: NewRandomChooser(0),
		clock:   time.Now,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.id = uuid.NewString()
	return s
}

// ID identifies the session; it changes on Reset.
func (s *Session) ID() string {
	return s.id
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	switch {
	case !s.started:
		return StateIdle
	case s.answered:
		return StateAnswered
	default:
		return StatePresented
	}
}

// Start presents the first chart. It is a no-op unless the session is idle.
func (s *Session) Start() bool {
	if s.State() != StateIdle {
		return false
	}
	s.started = true
	s.present()
	return true
}

// Answer records the response time of the presented chart. It is a no-op
// unless a chart is presented and unanswered.
func (s *Session) Answer() bool {
	if s.State() != StatePresented {
		return false
	}
	cur := &s.trials[len(s.trials)-1]
	cur.ResponseTime = s.clock().Sub(cur.StartedAt)
	if cur.ResponseTime < 0 {
		cur.ResponseTime = 0
	}
	cur.Answered = true
	s.answered = true
	s.logger.Info("trial answered",
		zap.String("session", s.id),
		zap.Int("attempt", cur.Attempt),
		zap.String("chart", string(cur.ChartType)),
		zap.Duration("response_time", cur.ResponseTime))
	return true
}

// Retry presents a new random chart after an answer, keeping history.
func (s *Session) Retry() bool {
	if s.State() != StateAnswered {
		return false
	}
	s.present()
	return true
}

// Reset discards all trials and returns to idle.
func (s *Session) Reset() {
	s.logger.Info("session reset", zap.String("session", s.id), zap.Int("attempts", s.attempts))
	s.started = false
	s.answered = false
	s.attempts = 0
	s.trials = nil
	s.id = uuid.NewString()
}

func (s *Session) present() {
	s.attempts++
	trial := model.Trial{
		Attempt:   s.attempts,
		ChartType: s.chooser.Choose(),
		StartedAt: s.clock(),
	}
	s.trials = append(s.trials, trial)
	s.answered = false
	s.logger.Debug("trial presented",
		zap.String("session", s.id),
		zap.Int("attempt", trial.Attempt),
		zap.String("chart", string(trial.ChartType)))
}

// Current returns the trial on screen, if any.
func (s *Session) Current() (model.Trial, bool) {
	if !s.started || len(s.trials) == 0 {
		return model.Trial{}, false
	}
	return s.trials[len(s.trials)-1], true
}

// Attempts returns the attempt counter.
func (s *Session) Attempts() int {
	return s.attempts
}

// Trials returns a copy of every trial, including one in progress.
func (s *Session) Trials() []model.Trial {
	out := make([]model.Trial, len(s.trials))
	copy(out, s.trials)
	return out
}

// Completed returns the answered trials in order.
func (s *Session) Completed() []model.Trial {
	out := make([]model.Trial, 0, len(s.trials))
	for _, t := range s.trials {
		if t.Answered {
			out = append(out, t)
		}
	}
	return out
}

// ChartTypes returns the chart type of every trial, including one in progress.
func (s *Session) ChartTypes() []model.ChartType {
	out := make([]model.ChartType, len(s.trials))
	for i, t := range s.trials {
		out[i] = t.ChartType
	}
	return out
}

// ResponseTimes returns answered response times in seconds.
func (s *Session) ResponseTimes() []float64 {
	out := make([]float64, 0, len(s.trials))
	for _, t := range s.trials {
		if t.Answered {
			out = append(out, t.Seconds())
		}
	}
	return out
}
