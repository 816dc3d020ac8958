package pipeline

import (
	"context"
	"io"
	"math"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/iisrank/pkg/errors"
	"github.com/matzehuels/iisrank/pkg/iis"
	"github.com/matzehuels/iisrank/pkg/network"
	"github.com/matzehuels/iisrank/pkg/observability"
	"github.com/matzehuels/iisrank/pkg/rank"
)

// Runner executes pipeline operations with logging and hooks.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a new pipeline runner. A nil logger discards output.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{Logger: logger}
}

// NewRand returns the random source for a run seeded with seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Execute runs the complete pipeline: simulate, then render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.Logger.Debug("Starting analysis", "params", opts.Describe())

	start := time.Now()
	table, err := r.Simulate(ctx, opts)
	if err != nil {
		return nil, err
	}
	simTime := time.Since(start)

	summaries := Summarize(table)
	for _, s := range summaries {
		r.Logger.Info("Rank distribution",
			"model", s.Model,
			"median", s.Summary.Median,
			"iqr", s.Summary.IQR(),
			"mean", round2(s.Summary.Mean),
			"n", s.Summary.Count)
	}

	start = time.Now()
	artifact, err := r.Render(ctx, table, opts)
	if err != nil {
		return nil, err
	}
	renderTime := time.Since(start)

	r.Logger.Debug("Analysis complete",
		"rows", table.Len(),
		"simulate", simTime.Round(time.Millisecond),
		"render", renderTime.Round(time.Millisecond))

	return &Result{
		Table:     table,
		Summaries: summaries,
		Artifact:  artifact,
		Format:    opts.Format,
		Stats: Stats{
			Rows:         table.Len(),
			SimulateTime: simTime,
			RenderTime:   renderTime,
		},
	}, nil
}

// Simulate runs opts.Simulations rounds and returns the rank table.
//
// Each round draws one density, then for each model in [network.Models] order
// generates a graph, scores it and records the rank of every key node. The
// random source is created from opts.Seed, so the table is a pure function of
// opts. Cancellation is checked between rounds.
func (r *Runner) Simulate(ctx context.Context, opts Options) (table *rank.Table, err error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnSimulateStart(ctx, opts.Simulations)

	start := time.Now()
	table = rank.NewTable(opts.Rows())
	defer func() {
		hooks.OnSimulateComplete(ctx, table.Len(), time.Since(start), err)
	}()

	rng := NewRand(opts.Seed)
	params := network.Params{Nodes: opts.Nodes, Attach: opts.Attach}

	for round := 0; round < opts.Simulations; round++ {
		if err := ctx.Err(); err != nil {
			return table, err
		}
		params.Density, err = network.DrawDensity(rng, opts.DensityMin, opts.DensityMax)
		if err != nil {
			return table, err
		}
		for _, m := range network.Models {
			keyRanks, err := r.round(rng, m, params, opts)
			if err != nil {
				return table, err
			}
			for i, k := range opts.KeyNodes {
				table.Append(rank.Record{Model: m, Round: round, Node: k, Rank: keyRanks[i]})
			}
			hooks.OnRoundComplete(ctx, round, m.String(), keyRanks)
		}
		if (round+1)%progressEvery == 0 {
			r.Logger.Debug("Simulating", "round", round+1, "of", opts.Simulations)
		}
	}

	if table.Len() != opts.Rows() {
		return table, errors.New(errors.ErrCodeInternal, "table has %d rows, want %d", table.Len(), opts.Rows())
	}
	return table, nil
}

// progressEvery is the round interval between debug progress lines.
const progressEvery = 100

func (r *Runner) round(rng *rand.Rand, m network.Model, p network.Params, opts Options) ([]int, error) {
	g, err := network.Generate(rng, m, p)
	if err != nil {
		if errors.GetCode(err) == "" {
			err = errors.Wrap(errors.ErrCodeGeneration, err, "generate %s", m)
		}
		return nil, err
	}
	scores, err := iis.Score(rng, g, opts.OverlapWeight)
	if err != nil {
		return nil, err
	}
	return rank.KeyRanks(rank.Ranks(scores), opts.KeyNodes)
}

// Summarize returns rank statistics per model in reporting order.
func Summarize(table *rank.Table) []ModelSummary {
	groups := table.Groups()
	out := make([]ModelSummary, 0, len(groups))
	for _, g := range groups {
		out = append(out, ModelSummary{Model: g.Model.String(), Summary: rank.Summarize(g.Ranks)})
	}
	return out
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
