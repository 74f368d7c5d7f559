package fruitcatch

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fruit-catch/internal/catch"
	"github.com/vovakirdan/fruit-catch/internal/config"
)

// Simulate plays one session to the end on virtual time with the
// autopilot steering, stepping fps times per simulated second.
func Simulate(cfg config.CatchConfig, seed int64, fps int, l *log.Logger) Tally {
	if fps <= 0 {
		fps = 60
	}
	step := time.Second / time.Duration(fps)

	e := catch.New(cfg.Engine(),
		catch.WithScheduler(catch.NewScheduler(epoch)),
		catch.WithSeed(seed),
		catch.WithLogger(l),
	)
	var t Tally
	t.Attach(e)

	// The countdown always ends the session; the deadline only guards
	// against a zero-length rule set.
	deadline := epoch.Add(time.Duration(cfg.Session.DurationSeconds+1) * time.Second)

	e.Start()
	now := epoch
	for e.Active() {
		now = now.Add(step)
		e.Advance(now)
		if zone, ok := Autopilot(e); ok {
			e.MoveBasket(zone)
		}
		if now.After(deadline) {
			e.Stop()
		}
	}
	return t
}

// SimulateRealtime plays one session on the wall clock through a
// catch.Runner with the autopilot steering. poses, when non-nil, feeds
// external zone labels into the session as well.
func SimulateRealtime(ctx context.Context, cfg config.CatchConfig, seed int64, fps int, l *log.Logger, poses <-chan string) (Tally, error) {
	e := catch.New(cfg.Engine(),
		catch.WithScheduler(catch.NewScheduler(time.Now())),
		catch.WithSeed(seed),
		catch.WithLogger(l),
	)
	var t Tally
	t.Attach(e)

	r := catch.NewRunner(e, fps)
	r.OnFrame(func(e *catch.Engine) {
		if zone, ok := Autopilot(e); ok {
			e.MoveBasket(zone)
		}
	})

	if poses != nil {
		done := make(chan struct{})
		defer close(done)
		go func() {
			for {
				select {
				case <-done:
					return
				case label, ok := <-poses:
					if !ok {
						return
					}
					r.Pose(label)
				}
			}
		}()
	}

	err := r.Run(ctx)
	return t, err
}
