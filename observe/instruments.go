package observe

// Instruments bundles the telemetry handed to authorizer components.
// Zero fields are filled with no-op implementations by Normalize.
type Instruments struct {
	Tracer  Tracer
	Metrics Metrics
	Logger  Logger
}

// NopInstruments returns Instruments that record nothing.
func NopInstruments() Instruments {
	return Instruments{
		Tracer:  NopTracer(),
		Metrics: nopMetrics{},
		Logger:  NopLogger(),
	}
}

// Normalize returns a copy of i with nil members replaced by no-ops.
func (i Instruments) Normalize() Instruments {
	if i.Tracer == nil {
		i.Tracer = NopTracer()
	}
	if i.Metrics == nil {
		i.Metrics = nopMetrics{}
	}
	if i.Logger == nil {
		i.Logger = NopLogger()
	}
	return i
}

// InstrumentsFromObserver creates Instruments from an Observer.
func InstrumentsFromObserver(obs Observer) (Instruments, error) {
	if obs == nil {
		return Instruments{}, ErrNilObserver
	}

	metrics, err := NewMetrics(obs.Meter())
	if err != nil {
		return Instruments{}, err
	}

	return Instruments{
		Tracer:  NewTracer(obs.Tracer()),
		Metrics: metrics,
		Logger:  obs.Logger(),
	}, nil
}
