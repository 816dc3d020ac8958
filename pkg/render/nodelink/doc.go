// Package nodelink renders a single generated network as a node-link diagram.
//
// It is used to inspect what one draw of a network model looks like; the
// Monte Carlo run itself never renders its graphs.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, nodelink.Options{KeyNodes: []int{12}})
//	svg, err := nodelink.RenderSVG(dot)
//	pdf, err := nodelink.RenderPDF(dot)
//
// Vertices are labelled with their 1-based identifier and key nodes are
// filled orange. The DOT source uses the neato engine so undirected-looking
// random graphs spread out instead of stacking in ranks.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
