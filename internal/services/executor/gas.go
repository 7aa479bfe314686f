package executor

// GasMeter reports the gas consumed by the current execution pass. Injected
// so refund math is deterministic in tests.
type GasMeter interface {
	Consumed() uint64
}

// StaticGasMeter reports a fixed consumption per pass.
type StaticGasMeter struct {
	Units uint64
}

func (m StaticGasMeter) Consumed() uint64 { return m.Units }
