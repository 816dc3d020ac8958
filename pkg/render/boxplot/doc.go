// Package boxplot renders box-and-whisker plots of rank samples as SVG.
//
// Each [Series] becomes one box, drawn left to right in the order given.
// Boxes span the first to third quartile with a line at the median. Whiskers
// reach the most extreme data points within 1.5 IQR of the box (configurable
// with [WithWhisker]) and points beyond them are drawn as open circles.
//
// Static annotations (title, subtitle, axis labels, caption) are plain
// strings supplied by the caller; nothing in the plot is recomputed from
// them.
//
//	svg := boxplot.RenderSVG([]boxplot.Series{
//	    {Label: "Erdős-Renyi", Values: er},
//	    {Label: "Scale-Free", Values: sf},
//	},
//	    boxplot.WithTitle("Sensitivity Analysis of IIS Rankings"),
//	    boxplot.WithAxisLabels("Network Model", "IIS Ranking (Farmer #12)"),
//	)
//	pdf, err := render.ToPDF(svg)
package boxplot
