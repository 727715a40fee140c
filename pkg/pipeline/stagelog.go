// pkg/pipeline/stagelog.go
package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StageEvent is one structured entry in the pipeline execution log.
type StageEvent struct {
	Time    time.Time
	Stage   string
	Status  string
	Details string
}

// StageLog is the observability sink the orchestrator writes stage events to.
// It carries a unique run ID and every event is mirrored to the logger.
type StageLog struct {
	RunID   string
	Started time.Time
	logger  *zap.Logger
	events  []StageEvent
}

// NewStageLog creates a stage log for a fresh pipeline run.
func NewStageLog(logger *zap.Logger) *StageLog {
	return &StageLog{
		RunID:   uuid.New().String(),
		Started: time.Now(),
		logger:  logger,
	}
}

// Record appends a stage event and logs it.
func (l *StageLog) Record(stage, status, details string) {
	event := StageEvent{
		Time:    time.Now(),
		Stage:   stage,
		Status:  status,
		Details: details,
	}
	l.events = append(l.events, event)

	l.logger.Info("Pipeline stage",
		zap.String("runID", l.RunID),
		zap.String("stage", stage),
		zap.String("status", status),
		zap.String("details", details))
}

// Events returns the recorded events in order.
func (l *StageLog) Events() []StageEvent {
	return l.events
}

// Entries formats the recorded events for the execution report.
func (l *StageLog) Entries() []string {
	entries := make([]string, 0, len(l.events))
	for _, e := range l.events {
		entries = append(entries, fmt.Sprintf("[%s] %s: %s %s",
			e.Time.Format(time.RFC3339), e.Stage, e.Status, e.Details))
	}
	return entries
}
