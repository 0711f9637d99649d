package main

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/xterm-go/resource"
)

func TestLeakWatch(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	table := resource.NewTable()

	// Registrations made before the watch starts are not its concern.
	table.Insert("listener", nil)

	w := watchLeaks(table, zap.New(core))
	l1 := table.Insert("listener", nil)
	table.Insert("listener", nil)
	table.Insert("terminal", nil)
	table.Remove(l1)

	if got := w.stop(); got != 2 {
		t.Errorf("open = %d, want 2", got)
	}
	warns := logs.FilterMessage("disposable not closed").All()
	if len(warns) != 2 {
		t.Fatalf("expected 2 warnings, got %v", logs.All())
	}
	if warns[0].ContextMap()["kind"] != "listener" || warns[1].ContextMap()["kind"] != "terminal" {
		t.Errorf("unexpected warnings: %v", warns)
	}

	// Stopped watches ignore later events.
	table.Insert("terminal", nil)
	if got := w.stop(); got != 2 {
		t.Errorf("open after stop = %d, want 2", got)
	}
}
