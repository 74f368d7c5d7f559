package catch

import (
	"context"
	"time"
)

// Runner drives an Engine on the wall clock for hosts without their own
// event loop. Ticks and pose input are serialized onto the goroutine
// that calls Run, so the engine is never touched concurrently.
type Runner struct {
	engine *Engine
	fps    int
	poses  chan string
	frame  func(*Engine)
}

// NewRunner creates a runner that steps the engine fps times per second.
func NewRunner(e *Engine, fps int) *Runner {
	if fps <= 0 {
		fps = 60
	}
	return &Runner{
		engine: e,
		fps:    fps,
		poses:  make(chan string, 16),
	}
}

// OnFrame registers a function called after every simulation step, on
// the Run goroutine. It may read or steer the engine.
func (r *Runner) OnFrame(fn func(*Engine)) {
	r.frame = fn
}

// Pose queues a zone label for the engine. It never blocks: when the
// queue is full the label is dropped, since a newer one will follow.
// Safe for concurrent use.
func (r *Runner) Pose(label string) {
	select {
	case r.poses <- label:
	default:
	}
}

// Run starts a session and steps it until it ends or ctx is cancelled.
// On cancellation the session is stopped and ctx.Err is returned.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(r.fps))
	defer ticker.Stop()

	r.engine.sched.Advance(time.Now())
	r.engine.Start()

	for {
		select {
		case <-ctx.Done():
			r.engine.Stop()
			return ctx.Err()

		case label := <-r.poses:
			r.engine.OnPoseDetected(label)

		case now := <-ticker.C:
			r.engine.Advance(now)
			if r.frame != nil {
				r.frame(r.engine)
			}
			if !r.engine.Active() {
				return nil
			}
		}
	}
}
