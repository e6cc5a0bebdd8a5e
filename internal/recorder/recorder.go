package recorder

import "StockInsight/internal/model"

// Recorder persists analysis results for later inspection.
type Recorder interface {
	Record(res *model.Analysis) error
	Close() error
}

// NoopRecorder is used when no database is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) Record(_ *model.Analysis) error { return nil }
func (n *NoopRecorder) Close() error                   { return nil }
