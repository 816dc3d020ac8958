// Package pipeline runs the IIS sensitivity analysis end to end.
//
// The pipeline has two phases:
//
//  1. Simulate: for every round draw an Erdős–Rényi density, generate one
//     graph per model, score every vertex, rank the scores and append each
//     key node's rank to the result table
//  2. Render: draw the per-model rank distributions as a boxplot and convert
//     it to the requested format
//
// Both phases share one explicitly seeded random source created per run, so
// identical [Options] produce identical tables and figures.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.DefaultOptions()
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    return err
//	}
//	os.WriteFile(opts.Output, result.Artifact, 0o644)
//
// Run a phase on its own:
//
//	table, err := runner.Simulate(ctx, opts)
//	artifact, err := runner.Render(ctx, table, opts)
package pipeline

import (
	stderrors "errors"
	"fmt"
	"io"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/iisrank/pkg/errors"
	"github.com/matzehuels/iisrank/pkg/iis"
	"github.com/matzehuels/iisrank/pkg/rank"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultNodes is the vertex count of every generated network.
	DefaultNodes = 45

	// DefaultDensityMin and DefaultDensityMax bound the per-round
	// Erdős–Rényi edge probability.
	DefaultDensityMin = 0.023
	DefaultDensityMax = 0.073

	// DefaultAttach is the number of edges each new scale-free vertex adds.
	DefaultAttach = 1

	// DefaultSimulations is the number of rounds per model.
	DefaultSimulations = 1000

	// DefaultSeed is the random seed for reproducibility.
	DefaultSeed = uint64(123)

	// DefaultOverlapWeight is the IIS blend weight.
	DefaultOverlapWeight = iis.DefaultOverlapWeight

	// DefaultBaseName is the output file name without extension.
	DefaultBaseName = "figure_s2"
)

// DefaultKeyNode is the 1-based vertex whose rank is tracked by default.
const DefaultKeyNode = 12

// Format constants for output formats.
const (
	FormatPDF = "pdf"
	FormatSVG = "svg"
	FormatPNG = "png"
)

// DefaultFormat is the default output format.
const DefaultFormat = FormatPDF

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPDF: true,
	FormatSVG: true,
	FormatPNG: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for an analysis run.
// The same keys are accepted from JSON, TOML and YAML.
type Options struct {
	Nodes         int     `json:"nodes" toml:"nodes" yaml:"nodes" validate:"gte=2"`
	DensityMin    float64 `json:"density_min" toml:"density_min" yaml:"density_min" validate:"gte=0,lte=1,ltefield=DensityMax"`
	DensityMax    float64 `json:"density_max" toml:"density_max" yaml:"density_max" validate:"gte=0,lte=1"`
	Attach        int     `json:"attach" toml:"attach" yaml:"attach" validate:"gte=1"`
	Simulations   int     `json:"simulations" toml:"simulations" yaml:"simulations" validate:"gte=1"`
	KeyNodes      []int   `json:"key_nodes" toml:"key_nodes" yaml:"key_nodes" validate:"min=1,dive,gte=1"`
	Seed          uint64  `json:"seed" toml:"seed" yaml:"seed"`
	OverlapWeight float64 `json:"overlap_weight" toml:"overlap_weight" yaml:"overlap_weight" validate:"gte=0,lte=1"`

	// Output options
	Output string `json:"output,omitempty" toml:"output" yaml:"output"`
	Format string `json:"format,omitempty" toml:"format" yaml:"format" validate:"omitempty,oneof=pdf svg png"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" toml:"-" yaml:"-" validate:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// DefaultOptions returns the options of the reference analysis: 45 nodes,
// densities in [0.023, 0.073], 1000 rounds, key node 12, seed 123 and an
// overlap weight of 0.5, written to figure_s2.pdf.
func DefaultOptions() Options {
	return Options{
		Nodes:         DefaultNodes,
		DensityMin:    DefaultDensityMin,
		DensityMax:    DefaultDensityMax,
		Attach:        DefaultAttach,
		Simulations:   DefaultSimulations,
		KeyNodes:      []int{DefaultKeyNode},
		Seed:          DefaultSeed,
		OverlapWeight: DefaultOverlapWeight,
		Format:        DefaultFormat,
		Output:        DefaultBaseName + "." + DefaultFormat,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Table holds one record per round, model and key node.
	Table *rank.Table

	// Summaries holds descriptive statistics per model, in reporting order.
	Summaries []ModelSummary

	// Artifact is the rendered figure in Format.
	Artifact []byte
	Format   string

	// Stats contains timing information.
	Stats Stats
}

// ModelSummary pairs a model label with its rank statistics.
type ModelSummary struct {
	Model   string
	Summary rank.Summary
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Rows         int
	SimulateTime time.Duration
	RenderTime   time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.Config("invalid format: %q (must be one of: pdf, svg, png)", format)
	}
	return nil
}

// FormatFromPath returns the output format implied by a file extension, or
// "" when the extension is not a supported format.
func FormatFromPath(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ValidFormats[ext] {
		return ext
	}
	return ""
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults for unset fields and validates the
// options. Float parameters and the seed are never defaulted because zero is
// a valid value for each; start from [DefaultOptions] instead.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetDefaults fills unset integer, list and output fields.
func (o *Options) SetDefaults() {
	if o.Nodes == 0 {
		o.Nodes = DefaultNodes
	}
	if o.Attach == 0 {
		o.Attach = DefaultAttach
	}
	if o.Simulations == 0 {
		o.Simulations = DefaultSimulations
	}
	if o.KeyNodes == nil {
		o.KeyNodes = []int{DefaultKeyNode}
	}
	if o.Format == "" {
		o.Format = FormatFromPath(o.Output)
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.Output == "" {
		o.Output = DefaultBaseName + "." + o.Format
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks every field and returns an INVALID_CONFIG error naming the
// first offending field.
func (o *Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return formatValidationError(err)
	}
	if o.Attach >= o.Nodes {
		return errors.Config("attach must be < nodes, got attach=%d nodes=%d", o.Attach, o.Nodes)
	}
	for _, k := range o.KeyNodes {
		if err := rank.CheckKeyNode(k, o.Nodes); err != nil {
			return err
		}
	}
	return nil
}

// Rows returns the number of table rows a run with these options produces.
func (o *Options) Rows() int {
	return 2 * o.Simulations * len(o.KeyNodes)
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) || len(verrs) == 0 {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid options")
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "gte":
		return errors.Config("%s must be >= %s, got %v", fe.Field(), fe.Param(), fe.Value())
	case "lte":
		return errors.Config("%s must be <= %s, got %v", fe.Field(), fe.Param(), fe.Value())
	case "ltefield":
		return errors.Config("%s must not exceed density_max, got %v", fe.Field(), fe.Value())
	case "min":
		return errors.Config("%s needs at least %s entry", fe.Field(), fe.Param())
	case "oneof":
		return errors.Config("invalid %s: %q (must be one of: %s)", fe.Field(), fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return errors.Config("%s failed %q validation", fe.Field(), fe.Tag())
	}
}

// Describe returns a one-line summary of the run parameters for logs.
func (o *Options) Describe() string {
	return fmt.Sprintf("nodes=%d density=[%g, %g] attach=%d simulations=%d key_nodes=%v seed=%d overlap_weight=%g",
		o.Nodes, o.DensityMin, o.DensityMax, o.Attach, o.Simulations, o.KeyNodes, o.Seed, o.OverlapWeight)
}
