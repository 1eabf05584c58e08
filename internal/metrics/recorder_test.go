package metrics

import "time"

// testRecorder counts calls; used to check the interface shape stays implementable.
type testRecorder struct {
	stageDurations map[string]int
	buildDurations int
	buildOutcomes  map[BuildOutcomeLabel]int
	files          map[OutputKind]int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{
		stageDurations: map[string]int{},
		buildOutcomes:  map[BuildOutcomeLabel]int{},
		files:          map[OutputKind]int{},
	}
}

func (t *testRecorder) ObserveStageDuration(stage string, _ time.Duration) {
	t.stageDurations[stage]++
}
func (t *testRecorder) ObserveBuildDuration(_ time.Duration)            { t.buildDurations++ }
func (t *testRecorder) IncBuildOutcome(outcome BuildOutcomeLabel)        { t.buildOutcomes[outcome]++ }
func (t *testRecorder) IncFilesWritten(kind OutputKind)                  { t.files[kind]++ }

var (
	_ Recorder = NoopRecorder{}
	_ Recorder = (*PrometheusRecorder)(nil)
	_ Recorder = newTestRecorder()
)
