package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kbukum/foldkit/errors"
	"github.com/kbukum/foldkit/logger"
	"github.com/kbukum/foldkit/validation"
)

// Stage kinds.
const (
	StageFilter    = "filter"
	StageTransform = "transform"
	StageTakeWhile = "take_while"
)

// Terminal kinds.
const (
	TerminalCopy   = "copy"
	TerminalAllOf  = "all_of"
	TerminalAnyOf  = "any_of"
	TerminalNoneOf = "none_of"
	TerminalCount  = "count"
	TerminalSum    = "sum"
)

// StdinInput names standard input in Config.Inputs.
const StdinInput = "-"

// Config is the complete configuration of a foldkit run.
type Config struct {
	Log      logger.Config  `yaml:"log" mapstructure:"log"`
	Inputs   []string       `yaml:"inputs" mapstructure:"inputs" validate:"min=1,dive,required"`
	Pipeline PipelineConfig `yaml:"pipeline" mapstructure:"pipeline"`
}

// PipelineConfig describes the stages elements flow through, in order, and
// the terminal they end in.
type PipelineConfig struct {
	Stages   []Stage  `yaml:"stages" mapstructure:"stages" validate:"dive"`
	Terminal Terminal `yaml:"terminal" mapstructure:"terminal"`
}

// Stage is one transducer.
type Stage struct {
	Kind string `yaml:"kind" mapstructure:"kind" validate:"required,oneof=filter transform take_while"`
	Expr string `yaml:"expr" mapstructure:"expr" validate:"required"`
}

// Terminal is the reducer the pipeline ends in. Expr is the predicate of the
// logical terminals and unused by the others.
type Terminal struct {
	Kind string `yaml:"kind" mapstructure:"kind" validate:"required,oneof=copy all_of any_of none_of count sum"`
	Expr string `yaml:"expr" mapstructure:"expr"`
}

// Logical reports whether the terminal is one of the predicate-driven ones.
func (t Terminal) Logical() bool {
	return slices.Contains([]string{TerminalAllOf, TerminalAnyOf, TerminalNoneOf}, t.Kind)
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	c.Log.ApplyDefaults()
	if len(c.Inputs) == 0 {
		c.Inputs = []string{StdinInput}
	}
	if c.Pipeline.Terminal.Kind == "" {
		c.Pipeline.Terminal.Kind = TerminalCopy
	}
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	v := validation.New().Struct(c)
	v.Include("log", c.Log.Validate())
	t := c.Pipeline.Terminal
	if t.Logical() {
		v.Required("pipeline.terminal.expr", t.Expr)
	}
	return v.Err()
}

// ParseStage parses the "kind:expr" form used on the command line.
func ParseStage(s string) (Stage, error) {
	kind, expr, ok := strings.Cut(s, ":")
	if !ok || strings.TrimSpace(kind) == "" {
		return Stage{}, errors.InvalidConfig(fmt.Sprintf("stage %q must have the form kind:expr", s))
	}
	return Stage{Kind: strings.TrimSpace(kind), Expr: strings.TrimSpace(expr)}, nil
}

// String renders the stage in the form ParseStage accepts.
func (s Stage) String() string { return s.Kind + ":" + s.Expr }
