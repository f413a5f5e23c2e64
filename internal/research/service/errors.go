package service

import (
	"errors"
	"fmt"
)

// Stages at which an oracle call can fail. Used in error messages so a
// failed run says exactly where it died.
const (
	StageBullCase     = "building the bull case"
	StageBearCase     = "building the bear case"
	StageBullRebuttal = "generating the bull rebuttal"
	StageBearRebuttal = "generating the bear rebuttal"
	StageJudging      = "judging the debate"
	StageSectorDebate = "running the sector debate"
	StageStockDebate  = "ranking sector candidates"
)

// OracleError is a fatal failure of the reasoning provider after retries
// were exhausted.
type OracleError struct {
	Ticker string
	Stage  string
	Err    error
}

func (e *OracleError) Error() string {
	return fmt.Sprintf("research failed while %s for %s: %v", e.Stage, e.Ticker, e.Err)
}

func (e *OracleError) Unwrap() error {
	return e.Err
}

// ConfigError reports invalid caller input such as an unknown mode or a
// malformed holdings map.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s", e.Reason)
}

// IsConfigError reports whether err is a ConfigError.
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}

// IsOracleError reports whether err is an OracleError.
func IsOracleError(err error) bool {
	var oracleErr *OracleError
	return errors.As(err, &oracleErr)
}
