package comparison

import "time"

// Outcome labels for Recorder.Resolved.
const (
	OutcomeSuccess        = "success"
	OutcomeInvalidRequest = "invalid_request"
	OutcomeNotFound       = "not_found"
	OutcomeError          = "error"
)

// Recorder receives resolver measurements. Implementations must be safe for
// concurrent use.
type Recorder interface {
	CacheProbed(hits, misses int)
	StoreLoaded(batchSize int, elapsed time.Duration, err error)
	CacheWriteFailed()
	Resolved(outcome string, elapsed time.Duration)
}

type noopRecorder struct{}

func (noopRecorder) CacheProbed(int, int)                  {}
func (noopRecorder) StoreLoaded(int, time.Duration, error) {}
func (noopRecorder) CacheWriteFailed()                     {}
func (noopRecorder) Resolved(string, time.Duration)        {}
