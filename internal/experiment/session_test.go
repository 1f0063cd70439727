package experiment

import (
	"testing"
	"time"

	"github.com/verte-zerg/chartab/internal/model"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func sequence(types ...model.ChartType) Chooser {
	i := 0
	return ChooserFunc(func() model.ChartType {
		t := types[i%len(types)]
		i++
		return t
	})
}

func newTestSession(types ...model.ChartType) (*Session, *fakeClock) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	s := NewSession(WithChooser(sequence(types...)), WithClock(clock.Now))
	return s, clock
}

func TestSessionLifecycle(t *testing.T) {
	s, clock := newTestSession(model.ChartBar, model.ChartPie)
	if s.State() != StateIdle {
		t.Fatalf("expected idle, got %s", s.State())
	}
	if !s.Start() {
		t.Fatalf("expected start to succeed")
	}
	if s.State() != StatePresented || s.Attempts() != 1 {
		t.Fatalf("unexpected state %s attempts %d", s.State(), s.Attempts())
	}
	cur, ok := s.Current()
	if !ok || cur.ChartType != model.ChartBar || cur.Attempt != 1 {
		t.Fatalf("unexpected current trial %+v", cur)
	}

	clock.Advance(2500 * time.Millisecond)
	if !s.Answer() {
		t.Fatalf("expected answer to succeed")
	}
	if s.State() != StateAnswered {
		t.Fatalf("expected answered, got %s", s.State())
	}
	times := s.ResponseTimes()
	if len(times) != 1 || times[0] != 2.5 {
		t.Fatalf("unexpected response times %v", times)
	}

	if !s.Retry() {
		t.Fatalf("expected retry to succeed")
	}
	cur, _ = s.Current()
	if cur.ChartType != model.ChartPie || cur.Attempt != 2 {
		t.Fatalf("unexpected retry trial %+v", cur)
	}
	if len(s.ChartTypes()) != 2 || len(s.ResponseTimes()) != 1 {
		t.Fatalf("expected one in-flight trial: types=%v times=%v", s.ChartTypes(), s.ResponseTimes())
	}
	clock.Advance(1234 * time.Millisecond)
	s.Answer()
	completed := s.Completed()
	if len(completed) != 2 || completed[1].ResponseTime != 1234*time.Millisecond {
		t.Fatalf("unexpected completed trials %+v", completed)
	}
}

func TestInvalidTransitionsAreNoops(t *testing.T) {
	s, _ := newTestSession(model.ChartBar)
	if s.Answer() {
		t.Fatalf("answer in idle must be a no-op")
	}
	if s.Retry() {
		t.Fatalf("retry in idle must be a no-op")
	}
	if len(s.Trials()) != 0 || s.Attempts() != 0 {
		t.Fatalf("no-op changed state")
	}

	s.Start()
	if s.Start() {
		t.Fatalf("second start must be a no-op")
	}
	if s.Retry() {
		t.Fatalf("retry before answer must be a no-op")
	}
	s.Answer()
	if s.Answer() {
		t.Fatalf("second answer must be a no-op")
	}
	if s.Attempts() != 1 || len(s.ResponseTimes()) != 1 {
		t.Fatalf("unexpected attempts %d times %v", s.Attempts(), s.ResponseTimes())
	}
}

func TestResetThenStartMatchesFreshSession(t *testing.T) {
	s, clock := newTestSession(model.ChartPie)
	s.Start()
	clock.Advance(time.Second)
	s.Answer()
	s.Retry()
	oldID := s.ID()

	s.Reset()
	if s.State() != StateIdle || s.Attempts() != 0 || len(s.Trials()) != 0 {
		t.Fatalf("reset did not clear state")
	}
	if _, ok := s.Current(); ok {
		t.Fatalf("expected no current trial after reset")
	}
	if s.ID() == oldID {
		t.Fatalf("expected a new session id after reset")
	}

	s.Start()
	cur, ok := s.Current()
	if !ok || cur.Attempt != 1 || cur.Answered {
		t.Fatalf("unexpected first trial after reset %+v", cur)
	}
	if len(s.ResponseTimes()) != 0 || len(s.ChartTypes()) != 1 {
		t.Fatalf("history should be empty after reset")
	}
}

func TestInvariantAnsweredNeverExceedsAttempts(t *testing.T) {
	s, clock := newTestSession(model.ChartBar, model.ChartPie, model.ChartPie)
	s.Start()
	for i := 0; i < 20; i++ {
		clock.Advance(100 * time.Millisecond)
		s.Answer()
		if len(s.ResponseTimes()) > s.Attempts() {
			t.Fatalf("answered %d exceeds attempts %d", len(s.ResponseTimes()), s.Attempts())
		}
		diff := len(s.ChartTypes()) - len(s.ResponseTimes())
		if diff < 0 || diff > 1 {
			t.Fatalf("chart types/response times drift: %d", diff)
		}
		s.Retry()
	}
}

func TestRandomChooserIsRoughlyUniform(t *testing.T) {
	s := NewSession()
	bars := 0
	const n = 1000
	for i := 0; i < n; i++ {
		s.Reset()
		s.Start()
		cur, _ := s.Current()
		if cur.ChartType == model.ChartBar {
			bars++
		}
	}
	frac := float64(bars) / n
	if frac < 0.4 || frac > 0.6 {
		t.Fatalf("bar fraction %.3f outside [0.4, 0.6]", frac)
	}
}

func TestSeededChooserIsReproducible(t *testing.T) {
	a := NewRandomChooser(99)
	b := NewRandomChooser(99)
	for i := 0; i < 50; i++ {
		if a.Choose() != b.Choose() {
			t.Fatalf("seeded choosers diverged at %d", i)
		}
	}
}

func TestStateString(t *testing.T) {
	if StatePresented.String() != "presented" || State(9).String() != "unknown" {
		t.Fatalf("unexpected state names")
	}
}
