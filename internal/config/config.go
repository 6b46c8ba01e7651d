package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Document formats a pipeline can read and write.
const (
	FormatMarkup = "markup"
	FormatJSON   = "json"
)

// Step operations.
const (
	OpWrap   = "wrap"
	OpUnwrap = "unwrap"
	OpRemove = "remove"
	OpClear  = "clear"
	OpRename = "rename"
	OpFilter = "filter"
)

// Pipeline is a parsed pipeline file: where the document comes from,
// where the result goes, and the steps applied in between.
type Pipeline struct {
	Input  Endpoint `toml:"input"`
	Output Endpoint `toml:"output"`
	Steps  []Step   `toml:"step"`
}

// Endpoint names a document file and its serialization format.
type Endpoint struct {
	Path   string `toml:"path"`
	Format string `toml:"format"`
}

// Step is one pipeline operation. Which fields apply depends on Op:
// wrap, unwrap and clear take a range and a span; remove takes a
// range; rename takes a range enclosing one element plus the new
// name; filter takes a script path.
type Step struct {
	Op     string    `toml:"op"`
	Start  []int     `toml:"start"`
	End    []int     `toml:"end"`
	Span   *SpanSpec `toml:"span"`
	Name   string    `toml:"name"`
	Script string    `toml:"script"`
}

// SpanSpec describes a formatting span template. Priority is a
// pointer so an explicit priority = 0 survives defaulting.
type SpanSpec struct {
	Name       string            `toml:"name"`
	Priority   *int              `toml:"priority"`
	Attributes map[string]string `toml:"attributes"`
	Classes    []string          `toml:"classes"`
	Styles     map[string]string `toml:"styles"`
}

// Load reads, defaults and validates a pipeline file.
func Load(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pipeline %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse builds a pipeline from TOML data. The source name appears in
// parse errors.
func Parse(source string, data []byte) (*Pipeline, error) {
	var p Pipeline
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}

	p.applyDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// applyDefaults fills the optional fields a file may omit.
func (p *Pipeline) applyDefaults() {
	if p.Input.Format == "" {
		p.Input.Format = FormatMarkup
	}
	if p.Output.Format == "" {
		p.Output.Format = FormatMarkup
	}
	for i := range p.Steps {
		if s := p.Steps[i].Span; s != nil && s.Priority == nil {
			pri := DefaultSpanPriority
			s.Priority = &pri
		}
	}
}

// DefaultSpanPriority is used when a span spec omits its priority.
// It matches the engine's default nesting priority.
const DefaultSpanPriority = 10

// Validate checks the pipeline before anything is executed.
func (p *Pipeline) Validate() error {
	if p.Input.Path == "" {
		return ErrNoInput
	}
	if p.Output.Path == "" {
		return ErrNoOutput
	}
	if err := validFormat(p.Input.Format); err != nil {
		return fmt.Errorf("input: %w", err)
	}
	if err := validFormat(p.Output.Format); err != nil {
		return fmt.Errorf("output: %w", err)
	}

	for i := range p.Steps {
		if err := p.Steps[i].validate(); err != nil {
			return &StepError{Index: i, Op: p.Steps[i].Op, Err: err}
		}
	}
	return nil
}

func validFormat(format string) error {
	switch format {
	case FormatMarkup, FormatJSON:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

func (s *Step) validate() error {
	switch s.Op {
	case OpWrap, OpUnwrap, OpClear:
		if err := s.needRange(); err != nil {
			return err
		}
		return s.needSpan()
	case OpRemove:
		return s.needRange()
	case OpRename:
		if s.Name == "" {
			return fmt.Errorf("%w: rename needs a name", ErrInvalidStep)
		}
		return s.needRange()
	case OpFilter:
		if s.Script == "" {
			return fmt.Errorf("%w: filter needs a script", ErrInvalidStep)
		}
		return nil
	case "":
		return fmt.Errorf("%w: step has no op", ErrInvalidStep)
	}
	return fmt.Errorf("%w: %q", ErrUnknownOp, s.Op)
}

func (s *Step) needRange() error {
	if len(s.Start) == 0 || len(s.End) == 0 {
		return fmt.Errorf("%w: %s needs start and end paths", ErrInvalidStep, s.Op)
	}
	for _, idx := range append(append([]int{}, s.Start...), s.End...) {
		if idx < 0 {
			return fmt.Errorf("%w: path indexes must not be negative", ErrInvalidStep)
		}
	}
	return nil
}

func (s *Step) needSpan() error {
	if s.Span == nil || s.Span.Name == "" {
		return fmt.Errorf("%w: %s needs a span with a name", ErrInvalidStep, s.Op)
	}
	return nil
}
