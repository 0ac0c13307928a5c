package balloons

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observedField(level zapcore.Level) (*Field, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	f := newTestField(FieldConfig{Logger: zap.New(core)})
	return f, logs
}

func TestDebugMode_LogsEachStep(t *testing.T) {
	f, logs := observedField(zapcore.DebugLevel)
	f.SetDebugMode(true)
	f.SetItems(makeItems(12))

	f.Step(r3.Vector{Z: 8})
	f.Step(r3.Vector{Z: 8})

	steps := logs.FilterMessage("field step").All()
	if len(steps) != 2 {
		t.Fatalf("logged %d field steps, want 2", len(steps))
	}
	fields := steps[0].ContextMap()
	if fields["items"] != int64(12) {
		t.Errorf("items = %v, want 12", fields["items"])
	}
	if fields["moved"] != true {
		t.Errorf("moved = %v, want true on the first step", fields["moved"])
	}
	if _, ok := fields["rank"]; !ok {
		t.Error("missing rank duration")
	}
}

func TestDebugMode_OffIsSilent(t *testing.T) {
	f, logs := observedField(zapcore.DebugLevel)
	f.SetItems(makeItems(12))
	f.Step(r3.Vector{Z: 8})

	if n := logs.FilterMessage("field step").Len(); n != 0 {
		t.Errorf("logged %d field steps with debug mode off", n)
	}
}

func TestGridFallbackLogged(t *testing.T) {
	f, logs := observedField(zapcore.InfoLevel)
	f.SetItems(makeItems(300)) // far more than fit in the default cube

	if logs.Len() == 0 {
		t.Error("expected the grid fallback to be logged")
	}
}
