// Package app executes document pipelines: load the input document,
// apply the configured steps in order, write the result.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/dshills/loom/internal/config"
	"github.com/dshills/loom/internal/engine"
	"github.com/dshills/loom/internal/engine/codec"
	"github.com/dshills/loom/internal/engine/position"
	"github.com/dshills/loom/internal/engine/tree"
	"github.com/dshills/loom/internal/filter/lua"
)

// Runner executes one pipeline.
type Runner struct {
	cfg     *config.Pipeline
	baseDir string
	log     *Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the logger the runner reports through.
func WithLogger(l *Logger) RunnerOption {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

// WithBaseDir resolves relative pipeline paths against dir instead of
// the working directory.
func WithBaseDir(dir string) RunnerOption {
	return func(r *Runner) { r.baseDir = dir }
}

// NewRunner creates a runner for a validated pipeline.
func NewRunner(cfg *config.Pipeline, opts ...RunnerOption) *Runner {
	r := &Runner{
		cfg: cfg,
		log: NewLogger(DefaultLoggerConfig()),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the pipeline once. Step failures come back as a
// StepError naming the step that failed.
func (r *Runner) Run() error {
	log := r.log.WithField("run", uuid.New().String())

	doc, err := r.loadInput()
	if err != nil {
		return err
	}
	log.Info("loaded %s", r.cfg.Input.Path)

	for i := range r.cfg.Steps {
		step := &r.cfg.Steps[i]
		if err := r.runStep(doc, step); err != nil {
			return &config.StepError{Index: i, Op: step.Op, Err: err}
		}
		log.Debug("step %d (%s) done", i+1, step.Op)
	}

	if err := r.writeOutput(doc); err != nil {
		return err
	}
	log.Info("wrote %s", r.cfg.Output.Path)
	return nil
}

// resolve makes a pipeline path absolute relative to the base dir.
func (r *Runner) resolve(path string) string {
	if r.baseDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.baseDir, path)
}

// loadInput reads the input document and builds a document around it.
// A markup range, when the input carries one, becomes the document
// selection so the writer keeps it in step with the mutations.
func (r *Runner) loadInput() (*engine.Document, error) {
	path := r.resolve(r.cfg.Input.Path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input %s: %w", r.cfg.Input.Path, err)
	}

	switch r.cfg.Input.Format {
	case config.FormatJSON:
		root, err := codec.FromJSON(data)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", r.cfg.Input.Path, err)
		}
		return engine.New(engine.WithRoot(root)), nil
	default:
		parsed, err := codec.Parse(strings.TrimSpace(string(data)))
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", r.cfg.Input.Path, err)
		}
		doc := engine.New(engine.WithRoot(parsed.Root))
		if parsed.HasRange {
			doc.Selection().SetRange(parsed.Range.Start, parsed.Range.End)
		}
		return doc, nil
	}
}

// writeOutput serializes the document to the output path. An active
// selection is rendered back as markup range markers.
func (r *Runner) writeOutput(doc *engine.Document) error {
	var data []byte
	switch r.cfg.Output.Format {
	case config.FormatJSON:
		out, err := codec.ToJSON(doc.Root())
		if err != nil {
			return fmt.Errorf("output %s: %w", r.cfg.Output.Path, err)
		}
		data = out
	default:
		var opts []codec.StringifyOption
		if rng, ok := doc.Selection().Range(); ok {
			opts = append(opts, codec.WithRange(rng))
		}
		data = []byte(codec.Stringify(doc.Root(), opts...))
	}
	data = append(data, '\n')

	path := r.resolve(r.cfg.Output.Path)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing output %s: %w", r.cfg.Output.Path, err)
	}
	return nil
}

func (r *Runner) runStep(doc *engine.Document, step *config.Step) error {
	switch step.Op {
	case config.OpWrap:
		rng, err := r.stepRange(doc, step)
		if err != nil {
			return err
		}
		_, err = doc.Wrap(rng, spanFromSpec(step.Span))
		return err

	case config.OpUnwrap:
		rng, err := r.stepRange(doc, step)
		if err != nil {
			return err
		}
		_, err = doc.Unwrap(rng, spanFromSpec(step.Span))
		return err

	case config.OpRemove:
		rng, err := r.stepRange(doc, step)
		if err != nil {
			return err
		}
		_, _, err = doc.Remove(rng)
		return err

	case config.OpClear:
		rng, err := r.stepRange(doc, step)
		if err != nil {
			return err
		}
		return doc.Clear(rng, spanFromSpec(step.Span))

	case config.OpRename:
		rng, err := r.stepRange(doc, step)
		if err != nil {
			return err
		}
		el, ok := rng.ContainedElement().(*tree.Container)
		if !ok {
			return ErrRenameTarget
		}
		_, err = doc.Rename(el, step.Name)
		return err

	case config.OpFilter:
		return r.runFilter(doc, step.Script)
	}
	return fmt.Errorf("%w: %q", config.ErrUnknownOp, step.Op)
}

// stepRange resolves a step's start and end paths against the
// document root.
func (r *Runner) stepRange(doc *engine.Document, step *config.Step) (position.Range, error) {
	start, err := resolvePath(doc.Root(), step.Start)
	if err != nil {
		return position.Range{}, fmt.Errorf("start: %w", err)
	}
	end, err := resolvePath(doc.Root(), step.End)
	if err != nil {
		return position.Range{}, fmt.Errorf("end: %w", err)
	}
	return position.NewRange(start, end), nil
}

// resolvePath turns a child-index path into a position. Every index
// but the last descends into a child; the last is the offset inside
// the node reached.
func resolvePath(root tree.Node, path []int) (position.Position, error) {
	node := root
	for _, idx := range path[:len(path)-1] {
		parent, ok := node.(tree.Parent)
		if !ok {
			return position.Position{}, fmt.Errorf("%w: %v", ErrPathNotParent, path)
		}
		if idx >= parent.ChildCount() {
			return position.Position{}, fmt.Errorf("%w: %v", ErrPathOutOfRange, path)
		}
		node = parent.Child(idx)
	}

	offset := path[len(path)-1]
	if offset > position.MaxOffset(node) {
		return position.Position{}, fmt.Errorf("%w: %v", ErrPathOutOfRange, path)
	}
	return position.At(node, offset), nil
}

// spanFromSpec builds the template span a step describes.
func spanFromSpec(spec *config.SpanSpec) *tree.AttributeSpan {
	span := tree.NewSpan(spec.Name)
	if spec.Priority != nil {
		span.SetPriority(*spec.Priority)
	}
	for k, v := range spec.Attributes {
		span.SetAttribute(k, v)
	}
	span.AddClass(spec.Classes...)
	for k, v := range spec.Styles {
		span.SetStyle(k, v)
	}
	return span
}

// runFilter loads a filter script and runs it over the document.
func (r *Runner) runFilter(doc *engine.Document, script string) error {
	runner, err := lua.NewRunner(r.resolve(script))
	if err != nil {
		return err
	}
	defer runner.Close()
	return runner.Run(doc)
}
