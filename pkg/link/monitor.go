package link

import "net/url"

// Monitor observes coordinator activity. All methods are invoked on the
// element's execution context; implementations must not block.
//
// pkg/observe provides Prometheus and OpenTelemetry implementations.
type Monitor interface {
	// RequestStarted fires when a new stylesheet-load generation is issued.
	RequestStarted(gen GenerationID, u *url.URL)
	// LoadStarted fires for each sub-load entering flight.
	LoadStarted(gen GenerationID)
	// LoadFinished fires for each sub-load completion.
	LoadFinished(gen GenerationID, succeeded bool)
	// BatchCompleted fires once per batch, with the aggregate outcome.
	BatchCompleted(gen GenerationID, anyFailed bool)
	// StaleDiscard fires when a completed resource is discarded instead of
	// installed (superseded generation, or the element left the tree).
	StaleDiscard(gen GenerationID)
	// IconNotified fires when an icon notice is dispatched to the embedder.
	IconNotified(u *url.URL)
}

// NopMonitor is a Monitor that ignores everything. Embed it to implement
// only the callbacks of interest.
type NopMonitor struct{}

func (NopMonitor) RequestStarted(GenerationID, *url.URL) {}
func (NopMonitor) LoadStarted(GenerationID)              {}
func (NopMonitor) LoadFinished(GenerationID, bool)       {}
func (NopMonitor) BatchCompleted(GenerationID, bool)     {}
func (NopMonitor) StaleDiscard(GenerationID)             {}
func (NopMonitor) IconNotified(*url.URL)                 {}

// multiMonitor fans callbacks out to several monitors, in order.
type multiMonitor []Monitor

// MultiMonitor combines monitors into one. Nil entries are skipped.
func MultiMonitor(monitors ...Monitor) Monitor {
	var ms multiMonitor
	for _, m := range monitors {
		if m != nil {
			ms = append(ms, m)
		}
	}
	if len(ms) == 1 {
		return ms[0]
	}
	return ms
}

func (ms multiMonitor) RequestStarted(gen GenerationID, u *url.URL) {
	for _, m := range ms {
		m.RequestStarted(gen, u)
	}
}

func (ms multiMonitor) LoadStarted(gen GenerationID) {
	for _, m := range ms {
		m.LoadStarted(gen)
	}
}

func (ms multiMonitor) LoadFinished(gen GenerationID, succeeded bool) {
	for _, m := range ms {
		m.LoadFinished(gen, succeeded)
	}
}

func (ms multiMonitor) BatchCompleted(gen GenerationID, anyFailed bool) {
	for _, m := range ms {
		m.BatchCompleted(gen, anyFailed)
	}
}

func (ms multiMonitor) StaleDiscard(gen GenerationID) {
	for _, m := range ms {
		m.StaleDiscard(gen)
	}
}

func (ms multiMonitor) IconNotified(u *url.URL) {
	for _, m := range ms {
		m.IconNotified(u)
	}
}
