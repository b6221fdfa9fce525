package engine

import (
	"encoding/json"
	"testing"
)

func TestTransportNeutralDefaults(t *testing.T) {
	e := New(&switchLocator{})

	if e.Play() || e.Pause() {
		t.Fatal("Play/Pause without media should return false")
	}

	if got := e.Back(5); got != 0 {
		t.Fatalf("Back() = %v, want 0", got)
	}

	if got := e.SetCurrentTime(10); got != 0 {
		t.Fatalf("SetCurrentTime() = %v, want 0", got)
	}

	if got := e.SetVolume(0.3); got != 1 {
		t.Fatalf("SetVolume() = %v, want 1", got)
	}

	if got := e.SetSpeed(2); got != 1 {
		t.Fatalf("SetSpeed() = %v, want 1", got)
	}

	if got := e.TimeUpdate(); got != (TimeUpdate{}) {
		t.Fatalf("TimeUpdate() = %+v, want zero", got)
	}

	want := Snapshot{Volume: 1, Speed: 1}
	if got := e.Snapshot(); got != want {
		t.Fatalf("Snapshot() = %+v, want %+v", got, want)
	}
}

func TestTransportClamps(t *testing.T) {
	m := newFakeMedia("a", 1)
	e, _ := newReadyEngine(t, m)

	tests := []struct {
		name string
		call func() float64
		want float64
	}{
		{name: "volume high", call: func() float64 { return e.SetVolume(2) }, want: 1},
		{name: "volume low", call: func() float64 { return e.SetVolume(-1) }, want: 0},
		{name: "volume", call: func() float64 { return e.SetVolume(0.4) }, want: 0.4},
		{name: "speed high", call: func() float64 { return e.SetSpeed(10) }, want: 5},
		{name: "speed low", call: func() float64 { return e.SetSpeed(0.1) }, want: 0.25},
		{name: "speed", call: func() float64 { return e.SetSpeed(1.5) }, want: 1.5},
		{name: "seek negative", call: func() float64 { return e.SetCurrentTime(-3) }, want: 0},
		{name: "seek past end", call: func() float64 { return e.SetCurrentTime(500) }, want: 120},
		{name: "seek", call: func() float64 { return e.SetCurrentTime(3) }, want: 3},
		{name: "back", call: func() float64 { return e.Back(1) }, want: 2},
		{name: "back past start", call: func() float64 { return e.Back(5) }, want: 0},
	}

	for _, tt := range tests {
		if got := tt.call(); got != tt.want {
			t.Fatalf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestPlayPause(t *testing.T) {
	m := newFakeMedia("a", 1)
	e, _ := newReadyEngine(t, m)

	if !e.Play() || m.Paused() || !e.TimeUpdate().IsPlaying {
		t.Fatal("Play did not start playback")
	}

	if !e.Pause() || !m.Paused() {
		t.Fatal("Pause did not pause")
	}

	m.playErr = errRefused
	if e.Play() {
		t.Fatal("Play should report a refused start")
	}
}

func TestLoopBounds(t *testing.T) {
	m := newFakeMedia("a", 1)
	e, _ := newReadyEngine(t, m)

	if got := e.Snapshot().LoopEnd; got != 120 {
		t.Fatalf("unset loop end = %v, want duration", got)
	}

	e.SetLoopEnabled(true)

	if got := e.SetLoopStart(200); got != 120 {
		t.Fatalf("SetLoopStart(200) = %v, want 120", got)
	}

	if got := e.SetLoopStart(10); got != 10 {
		t.Fatalf("SetLoopStart(10) = %v, want 10", got)
	}

	if got := e.SetLoopEnd(5); got != 10 {
		t.Fatalf("SetLoopEnd(5) = %v, want loop start 10", got)
	}

	if got := e.SetLoopEnd(300); got != 120 {
		t.Fatalf("SetLoopEnd(300) = %v, want 120", got)
	}

	if got := e.SetLoopEnd(20); got != 20 {
		t.Fatalf("SetLoopEnd(20) = %v, want 20", got)
	}
}

func TestPollLoop(t *testing.T) {
	m := newFakeMedia("a", 1)
	e, _ := newReadyEngine(t, m)

	e.SetLoopStart(2)
	e.SetLoopEnd(4)
	m.Seek(5)

	if e.PollLoop() {
		t.Fatal("PollLoop jumped while looping is disabled")
	}

	e.SetLoopEnabled(true)

	m.Seek(3)
	if e.PollLoop() {
		t.Fatal("PollLoop jumped before the loop end")
	}

	m.Seek(4)
	if !e.PollLoop() {
		t.Fatal("PollLoop did not jump at the loop end")
	}

	if m.CurrentTime() != 2 || m.Paused() || m.plays != 1 {
		t.Fatalf("after loop: t=%v paused=%v plays=%d", m.CurrentTime(), m.Paused(), m.plays)
	}
}

func TestSnapshotJSON(t *testing.T) {
	m := newFakeMedia("a", 1)
	e, _ := newReadyEngine(t, m)
	e.SetPitch(-2)
	e.SetEqBand(1, 3)

	data, err := json.Marshal(e)
	if err != nil {
		t.Fatal(err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}

	for _, key := range []string{
		"currentTime", "duration", "volume", "speed", "pitch", "eqGains",
		"loopEnabled", "loopStart", "loopEnd", "isPlaying", "isReady",
	} {
		if _, ok := got[key]; !ok {
			t.Fatalf("snapshot JSON missing %q: %s", key, data)
		}
	}

	if got["pitch"] != -2.0 || got["isReady"] != true || got["loopEnd"] != 120.0 {
		t.Fatalf("unexpected snapshot: %s", data)
	}

	gains, _ := got["eqGains"].([]any)
	if len(gains) != 10 || gains[1] != 3.0 {
		t.Fatalf("eqGains = %v", got["eqGains"])
	}
}
