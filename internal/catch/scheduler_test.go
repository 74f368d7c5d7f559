package catch

import (
	"testing"
	"time"
)

func TestSchedulerOrdersByDeadline(t *testing.T) {
	s := NewScheduler(epoch)
	var order []string

	s.AfterFunc(3*time.Second, func() { order = append(order, "c") })
	s.AfterFunc(time.Second, func() { order = append(order, "a") })
	s.AfterFunc(2*time.Second, func() { order = append(order, "b") })
	s.AfterFunc(2*time.Second, func() { order = append(order, "b2") })

	s.Advance(epoch.Add(5 * time.Second))

	expected := []string{"a", "b", "b2", "c"}
	if len(order) != len(expected) {
		t.Fatalf("fired %v, expected %v", order, expected)
	}
	for i := range expected {
		if order[i] != expected[i] {
			t.Errorf("order[%d] = %s, expected %s", i, order[i], expected[i])
		}
	}
}

func TestSchedulerNowDuringCallback(t *testing.T) {
	s := NewScheduler(epoch)
	var seen time.Time
	s.AfterFunc(1500*time.Millisecond, func() { seen = s.Now() })

	s.Advance(epoch.Add(4 * time.Second))

	if !seen.Equal(epoch.Add(1500 * time.Millisecond)) {
		t.Errorf("Now() in callback = %v, expected task deadline", seen.Sub(epoch))
	}
	if !s.Now().Equal(epoch.Add(4 * time.Second)) {
		t.Errorf("Now() after Advance = %v, expected 4s", s.Now().Sub(epoch))
	}
}

func TestSchedulerEvery(t *testing.T) {
	s := NewScheduler(epoch)
	count := 0
	task := s.Every(time.Second, func() { count++ })

	s.Advance(epoch.Add(3500 * time.Millisecond))
	if count != 3 {
		t.Errorf("count = %d, expected 3", count)
	}

	if !task.Stop() {
		t.Error("Stop() on a live task should report true")
	}
	if task.Stop() {
		t.Error("second Stop() should report false")
	}
	s.Advance(epoch.Add(10 * time.Second))
	if count != 3 {
		t.Errorf("stopped task fired: count = %d", count)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d, expected 0", s.Pending())
	}
}

func TestSchedulerSelfReschedule(t *testing.T) {
	s := NewScheduler(epoch)
	var fired []time.Duration
	interval := time.Second

	var loop func()
	loop = func() {
		fired = append(fired, s.Now().Sub(epoch))
		interval /= 2
		s.AfterFunc(interval, loop)
	}
	s.AfterFunc(interval, loop)

	s.Advance(epoch.Add(1800 * time.Millisecond))

	expected := []time.Duration{time.Second, 1500 * time.Millisecond, 1750 * time.Millisecond}
	if len(fired) != len(expected) {
		t.Fatalf("fired at %v, expected %v", fired, expected)
	}
	for i := range expected {
		if fired[i] != expected[i] {
			t.Errorf("fired[%d] = %v, expected %v", i, fired[i], expected[i])
		}
	}
}

func TestSchedulerStopFromCallback(t *testing.T) {
	s := NewScheduler(epoch)
	count := 0
	var task *Task
	task = s.Every(time.Second, func() {
		count++
		task.Stop()
	})

	s.Advance(epoch.Add(5 * time.Second))
	if count != 1 {
		t.Errorf("count = %d, expected 1", count)
	}
}

func TestSchedulerIgnoresBackwardsTime(t *testing.T) {
	s := NewScheduler(epoch)
	s.Advance(epoch.Add(-time.Hour))
	if !s.Now().Equal(epoch) {
		t.Errorf("Now() moved backwards to %v", s.Now())
	}

	var nilTask *Task
	if nilTask.Stop() {
		t.Error("Stop() on nil task should report false")
	}
}
