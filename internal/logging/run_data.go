package logging

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// RunData collects fields and stage timings for one command run and emits
// them as a single log entry.
type RunData struct {
	mu     sync.Mutex
	timing map[string]int64
	data   map[string]any
	logger *logrus.Logger
}

func NewRunData(logger *logrus.Logger) *RunData {
	return &RunData{
		timing: make(map[string]int64),
		data:   make(map[string]any),
		logger: logger,
	}
}

// AddTiming starts a timer; calling the returned func records the elapsed
// milliseconds under name.
func (r *RunData) AddTiming(name string) func() {
	start := time.Now()
	return func() {
		elapsed := time.Since(start).Milliseconds()
		r.mu.Lock()
		defer r.mu.Unlock()
		r.timing[name+"_ms"] = elapsed
	}
}

func (r *RunData) AddData(key string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = value
}

// Log returns an entry carrying every collected field.
func (r *RunData) Log() *logrus.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	fields := make(logrus.Fields, len(r.data)+len(r.timing))
	for k, v := range r.data {
		fields[k] = v
	}
	for k, v := range r.timing {
		fields[k] = v
	}
	return r.logger.WithFields(fields)
}
