package site

import (
	"sync"
	"time"

	"git.home.luguber.info/inful/makesite/internal/metrics"
)

type countingRecorder struct {
	mu       sync.Mutex
	stages   []string
	builds   int
	outcomes map[metrics.BuildOutcomeLabel]int
	files    map[metrics.OutputKind]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{
		outcomes: map[metrics.BuildOutcomeLabel]int{},
		files:    map[metrics.OutputKind]int{},
	}
}

func (r *countingRecorder) ObserveStageDuration(stage string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stages = append(r.stages, stage)
}

func (r *countingRecorder) ObserveBuildDuration(time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builds++
}

func (r *countingRecorder) IncBuildOutcome(outcome metrics.BuildOutcomeLabel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes[outcome]++
}

func (r *countingRecorder) IncFilesWritten(kind metrics.OutputKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files[kind]++
}
