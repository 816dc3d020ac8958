package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/iisrank/pkg/errors"
	"github.com/matzehuels/iisrank/pkg/observability"
	"github.com/matzehuels/iisrank/pkg/rank"
	"github.com/matzehuels/iisrank/pkg/render"
	"github.com/matzehuels/iisrank/pkg/render/boxplot"
)

// Figure annotations. The agreement statistic is reported, not computed.
const (
	FigureTitle  = "Sensitivity Analysis of IIS Rankings"
	FigureXLabel = "Network Model"
	KendallW     = 0.87
	KendallP     = "p < 0.001"
)

// PNGScale is the rsvg-convert zoom factor for PNG output.
const PNGScale = 2.0

// Subtitle returns the agreement annotation, e.g. "Kendall’s W = 0.87, p < 0.001".
func Subtitle() string {
	return fmt.Sprintf("Kendall’s W = %.2f, %s", KendallW, KendallP)
}

// YLabel names the tracked key nodes, e.g. "IIS Ranking (Farmer #12)".
func YLabel(keyNodes []int) string {
	ids := make([]string, len(keyNodes))
	for i, k := range keyNodes {
		ids[i] = "#" + strconv.Itoa(k)
	}
	noun := "Farmer"
	if len(keyNodes) > 1 {
		noun = "Farmers"
	}
	return fmt.Sprintf("IIS Ranking (%s %s)", noun, strings.Join(ids, ", "))
}

// Caption returns the figure caption for the given number of rounds.
func Caption(rounds int) string {
	return fmt.Sprintf("Boxplots show IIS rankings across %s synthetic networks.", groupThousands(rounds))
}

// groupThousands formats n with comma separators: 1000 -> "1,000".
func groupThousands(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(s[:lead])
	for i := lead; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// Render draws the rank table as a boxplot in opts.Format.
func (r *Runner) Render(ctx context.Context, table *rank.Table, opts Options) (artifact []byte, err error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if table == nil || table.Len() == 0 {
		return nil, errors.New(errors.ErrCodeInternal, "nothing to render: empty result table")
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Format)
	start := time.Now()
	defer func() {
		hooks.OnRenderComplete(ctx, opts.Format, len(artifact), time.Since(start), err)
	}()

	svg := RenderSVG(table, opts)
	r.Logger.Debug("Rendered boxplot", "bytes", len(svg), "format", opts.Format)

	return convert(svg, opts.Format)
}

// RenderSVG returns the boxplot SVG for table without format conversion.
func RenderSVG(table *rank.Table, opts Options) []byte {
	groups := table.Groups()
	series := make([]boxplot.Series, len(groups))
	for i, g := range groups {
		series[i] = boxplot.Series{Label: g.Model.String(), Values: g.Ranks}
	}
	return boxplot.RenderSVG(series,
		boxplot.WithTitle(FigureTitle),
		boxplot.WithSubtitle(Subtitle()),
		boxplot.WithAxisLabels(FigureXLabel, YLabel(opts.KeyNodes)),
		boxplot.WithCaption(Caption(opts.Simulations)),
	)
}

func convert(svg []byte, format string) ([]byte, error) {
	switch format {
	case FormatSVG:
		return svg, nil
	case FormatPDF:
		return render.ToPDF(svg)
	case FormatPNG:
		return render.ToPNG(svg, PNGScale)
	default:
		return nil, ValidateFormat(format)
	}
}
