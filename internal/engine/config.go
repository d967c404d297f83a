package engine

import "github.com/yourusername/bacbo-predictor/internal/config"

// FromConfig builds an engine configuration from the application config.
func FromConfig(cfg *config.EngineConfig) Config {
	return Config{
		QuantumThreshold:  cfg.QuantumThreshold,
		ReferenceSequence: cfg.ReferenceSequence,
		PressurePoints:    cfg.PressurePoints,
		QuantumWeight:     cfg.QuantumWeight,
		FibonacciWeight:   cfg.FibonacciWeight,
		PressureWeight:    cfg.PressureWeight,
	}
}
