// Package render provides the output side of the analysis pipeline.
//
// # Overview
//
// Figures are drawn as SVG by the subpackages and converted to other formats
// here:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Rank distribution boxplots (in [boxplot] subpackage)
//   - Sample network diagrams (in [nodelink] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). A missing converter is
// reported as an IO_ERROR.
//
//	svg := boxplot.RenderSVG(groups, opts...)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [boxplot]: github.com/matzehuels/iisrank/pkg/render/boxplot
// [nodelink]: github.com/matzehuels/iisrank/pkg/render/nodelink
package render
