package config

import "github.com/lgbarn/position-engine-go/internal/engine"

// RulesConfig selects the optional legality checks. All are off by
// default, which keeps the basic legality subset.
type RulesConfig struct {
	// CheckPaths rejects sliding moves through occupied squares
	CheckPaths bool

	// RejectSelfCheck rejects moves that leave the mover's king attacked
	RejectSelfCheck bool

	// RevokeCastling clears castling rights when a king or rook moves
	RevokeCastling bool
}

// NewRulesConfig creates a RulesConfig with default values.
// All fields use Go zero values: no optional checks.
func NewRulesConfig() *RulesConfig {
	return &RulesConfig{}
}

// Validate checks that the rules configuration is valid. Every flag
// combination is allowed.
func (r *RulesConfig) Validate() error {
	return nil
}

// EngineRules converts the configuration to engine rules.
func (r *RulesConfig) EngineRules() engine.Rules {
	return engine.Rules{
		CheckPaths:      r.CheckPaths,
		RejectSelfCheck: r.RejectSelfCheck,
		RevokeCastling:  r.RevokeCastling,
	}
}
