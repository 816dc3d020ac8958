package boxplot

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"slices"
	"strings"
	"testing"
)

func TestStats(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 100}
	b := Stats(values, DefaultWhisker)

	if b.Count != 10 {
		t.Errorf("Count = %d, want 10", b.Count)
	}
	if b.Median != 5.5 {
		t.Errorf("Median = %v, want 5.5", b.Median)
	}
	if b.Q1 != 3.25 || b.Q3 != 7.75 {
		t.Errorf("quartiles = %v, %v, want 3.25, 7.75", b.Q1, b.Q3)
	}
	if b.Low != 1 || b.High != 9 {
		t.Errorf("whiskers = %v, %v, want 1, 9", b.Low, b.High)
	}
	if !slices.Equal(b.Fliers, []float64{100}) {
		t.Errorf("Fliers = %v, want [100]", b.Fliers)
	}
}

func TestStatsConstant(t *testing.T) {
	b := Stats([]float64{4, 4, 4}, DefaultWhisker)
	if b.Q1 != 4 || b.Median != 4 || b.Q3 != 4 || b.Low != 4 || b.High != 4 || len(b.Fliers) != 0 {
		t.Errorf("Stats(constant) = %+v", b)
	}
}

func TestStatsEmpty(t *testing.T) {
	b := Stats(nil, DefaultWhisker)
	if b.Count != 0 || b.Fliers != nil {
		t.Errorf("Stats(nil) = %+v, want zero", b)
	}
}

func TestRenderSVGWellFormed(t *testing.T) {
	svg := RenderSVG([]Series{
		{Label: "Erdős-Renyi", Values: []float64{3, 5, 8, 12, 20, 44}},
		{Label: "Scale-Free", Values: []float64{20, 25, 30, 31, 35, 1}},
	},
		WithTitle("Sensitivity Analysis of IIS Rankings"),
		WithSubtitle("Kendall’s W = 0.87, p < 0.001"),
		WithAxisLabels("Network Model", "IIS Ranking (Farmer #12)"),
		WithCaption("Boxplots show IIS rankings across 1,000 synthetic networks."),
	)

	dec := xml.NewDecoder(bytes.NewReader(svg))
	for {
		_, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			t.Fatalf("invalid XML: %v", err)
		}
	}

	s := string(svg)
	for _, want := range []string{
		"Sensitivity Analysis of IIS Rankings",
		"Kendall’s W = 0.87, p &lt; 0.001",
		"Network Model",
		"IIS Ranking (Farmer #12)",
		"1,000 synthetic networks",
		"Erdős-Renyi",
		"Scale-Free",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("SVG missing %q", want)
		}
	}

	if got := strings.Count(s, `class="box"`); got != 2 {
		t.Errorf("box count = %d, want 2", got)
	}
	if got := strings.Count(s, `class="median"`); got != 2 {
		t.Errorf("median count = %d, want 2", got)
	}
}

func TestRenderSVGEmptySeries(t *testing.T) {
	svg := RenderSVG([]Series{{Label: "A"}, {Label: "B", Values: []float64{1, 2, 3}}})
	if got := strings.Count(string(svg), `class="box"`); got != 1 {
		t.Errorf("box count = %d, want 1", got)
	}
	if !strings.Contains(string(svg), ">A</text>") {
		t.Error("empty series should still get its category label")
	}
}

func TestRenderSVGSize(t *testing.T) {
	svg := string(RenderSVG(nil, WithSize(400, 300)))
	if !strings.Contains(svg, `width="400" height="300"`) {
		t.Errorf("custom size not applied: %s", svg[:120])
	}
}

func TestNiceTicks(t *testing.T) {
	tests := []struct {
		lo, hi float64
		want   []float64
	}{
		{0, 45, []float64{0, 10, 20, 30, 40}},
		{0.5, 6.5, []float64{1, 2, 3, 4, 5, 6}},
		{-0.05, 1.05, []float64{0, 0.2, 0.4, 0.6, 0.8, 1}},
	}

	for _, tt := range tests {
		got := niceTicks(tt.lo, tt.hi, targetTicks)
		if !slices.Equal(got, tt.want) {
			t.Errorf("niceTicks(%v, %v) = %v, want %v", tt.lo, tt.hi, got, tt.want)
		}
	}
}
