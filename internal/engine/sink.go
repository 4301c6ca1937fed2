package engine

// Sink receives events in emission order. It is called synchronously from
// inside the engine and must not call back into the same engine.
type Sink func(Event)

// Discard drops every event.
func Discard(Event) {}

// Collect returns a sink that appends to *dst.
func Collect(dst *[]Event) Sink {
	return func(e Event) {
		*dst = append(*dst, e)
	}
}

// Tee fans each event out to every non-nil sink, in argument order.
func Tee(sinks ...Sink) Sink {
	return func(e Event) {
		for _, s := range sinks {
			if s != nil {
				s(e)
			}
		}
	}
}
