package events

// FanOut publishes every event to each of its delegates. Used by the
// composition root to feed both the websocket relay and the Kafka producer
// from a single Publisher handle. Nil delegates are skipped.
type FanOut struct {
	delegates []Publisher
}

// NewFanOut creates a fan-out publisher over the given delegates.
func NewFanOut(delegates ...Publisher) *FanOut {
	out := make([]Publisher, 0, len(delegates))
	for _, d := range delegates {
		if d != nil {
			out = append(out, d)
		}
	}
	return &FanOut{delegates: out}
}

// Publish implements Publisher.
func (f *FanOut) Publish(event Event) {
	for _, d := range f.delegates {
		d.Publish(event)
	}
}
