// Package config provides configuration for the position engine service
// and command-line tool.
package config

import (
	"io"
	"os"

	"github.com/lgbarn/position-engine-go/internal/oracle"
)

// Config holds all program configuration.
type Config struct {
	// Oracle names the game-end classifier consulted after each move.
	Oracle string

	Rules   RulesConfig
	Server  ServerConfig
	Storage StorageConfig
	Batch   BatchConfig
	Log     LogConfig

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Oracle:     oracle.NameBuiltin,
		Rules:      *NewRulesConfig(),
		Server:     *NewServerConfig(),
		Storage:    *NewStorageConfig(),
		Batch:      *NewBatchConfig(),
		Log:        *NewLogConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput sets the stream results are written to.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// SetLogOutput sets the stream log lines are written to.
func (c *Config) SetLogOutput(w io.Writer) {
	c.LogFile = w
}

// Validate checks every section and the oracle name.
func (c *Config) Validate() error {
	if _, err := oracle.ByName(c.Oracle); err != nil {
		return invalid("oracle: %v", err)
	}
	validators := []func() error{
		c.Rules.Validate,
		c.Server.Validate,
		c.Storage.Validate,
		c.Batch.Validate,
		c.Log.Validate,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

// NewOracle returns the configured oracle.
func (c *Config) NewOracle() (oracle.Oracle, error) {
	return oracle.ByName(c.Oracle)
}
