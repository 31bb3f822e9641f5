package countdown

import "testing"

func TestTimerFiresOnceAfterDelay(t *testing.T) {
	fired := 0
	timer := New(func() { fired++ })
	timer.Start(1.5)

	for i := 0; i < 14; i++ {
		if timer.Tick(0.1) {
			t.Fatalf("fired early at tick %d", i)
		}
	}
	if !timer.Tick(0.1) {
		t.Fatal("timer should fire at 1.5s")
	}
	if timer.Tick(0.1) {
		t.Fatal("timer fired twice")
	}
	if fired != 1 {
		t.Fatalf("fired=%d want 1", fired)
	}
	if timer.Active() {
		t.Fatal("timer should be idle after firing")
	}
}

func TestTimerStopCancels(t *testing.T) {
	fired := false
	timer := New(func() { fired = true })
	timer.Start(0.2)
	timer.Stop()
	timer.Tick(1)
	if fired {
		t.Fatal("stopped timer fired")
	}
}

func TestTimerRestartFromCallback(t *testing.T) {
	count := 0
	var timer *Timer
	timer = New(func() {
		count++
		if count < 3 {
			timer.Start(1)
		}
	})
	timer.Start(1)
	for i := 0; i < 10; i++ {
		timer.Tick(1)
	}
	if count != 3 {
		t.Fatalf("count=%d want 3", count)
	}
}

func TestTimerZeroDelayAndNil(t *testing.T) {
	fired := false
	timer := New(func() { fired = true })
	timer.Start(-1)
	if timer.Remaining() != 0 {
		t.Fatalf("remaining=%v want 0", timer.Remaining())
	}
	if !timer.Tick(0) || !fired {
		t.Fatal("zero delay should fire on next tick")
	}

	var nilTimer *Timer
	if nilTimer.Tick(1) || nilTimer.Active() || nilTimer.Remaining() != 0 {
		t.Fatal("nil timer should be inert")
	}
}
