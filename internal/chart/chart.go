// Package chart renders per-symbol technical analysis charts as PNG files.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pplcc/plotext"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"NSESentinel/internal/model"
)

// Renderer draws stacked price/RSI/MACD panels for signal stocks.
type Renderer struct {
	Dir           string
	Width         int
	Height        int
	RSIOversold   float64
	RSIOverbought float64
}

// NewRenderer creates a Renderer writing PNGs under dir.
func NewRenderer(dir string, oversold, overbought float64) *Renderer {
	return &Renderer{
		Dir:           dir,
		Width:         900,
		Height:        260,
		RSIOversold:   oversold,
		RSIOverbought: overbought,
	}
}

// Render draws the chart for one analyzed stock and returns the file path.
func (r *Renderer) Render(a *model.StockAnalysis) (string, error) {
	if a.Series == nil || a.Indicators == nil {
		return "", fmt.Errorf("no series data for %s", a.Symbol)
	}
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create chart dir: %w", err)
	}

	bars := a.Series.Bars
	times := make([]float64, len(bars))
	for i, b := range bars {
		times[i] = float64(b.Time.Unix())
	}

	pricePanel, err := r.pricePanel(a, times)
	if err != nil {
		return "", err
	}
	rsiPanel, err := r.rsiPanel(a, times)
	if err != nil {
		return "", err
	}
	macdPanel, err := r.macdPanel(a, times)
	if err != nil {
		return "", err
	}

	path := filepath.Join(r.Dir, fileName(a.Symbol))
	if err := r.save(path, []*plot.Plot{pricePanel, rsiPanel, macdPanel}, []float64{1.4, 1, 1}); err != nil {
		return "", err
	}
	return path, nil
}

func (r *Renderer) pricePanel(a *model.StockAnalysis, times []float64) (*plot.Plot, error) {
	p := newPanel(fmt.Sprintf("%s - Close Price (Rs)", a.Symbol))

	closes := a.Series.Closes()
	line, err := lineFor(times, closes, color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff})
	if err != nil {
		return nil, fmt.Errorf("price line: %w", err)
	}
	p.Add(line)
	return p, nil
}

func (r *Renderer) rsiPanel(a *model.StockAnalysis, times []float64) (*plot.Plot, error) {
	p := newPanel(fmt.Sprintf("RSI (%.2f)", a.RSI))
	p.Y.Min, p.Y.Max = 0, 100

	line, err := lineFor(times, a.Indicators.RSI, color.RGBA{R: 0x94, G: 0x67, B: 0xbd, A: 0xff})
	if err != nil {
		return nil, fmt.Errorf("rsi line: %w", err)
	}
	p.Add(line)

	for _, level := range []float64{r.RSIOversold, r.RSIOverbought} {
		h, err := horizontalLine(times, level)
		if err != nil {
			return nil, fmt.Errorf("rsi threshold line: %w", err)
		}
		p.Add(h)
	}
	return p, nil
}

func (r *Renderer) macdPanel(a *model.StockAnalysis, times []float64) (*plot.Plot, error) {
	p := newPanel(fmt.Sprintf("MACD (%.4f)", a.MACD))

	macd, err := lineFor(times, a.Indicators.MACD, color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff})
	if err != nil {
		return nil, fmt.Errorf("macd line: %w", err)
	}
	signal, err := lineFor(times, a.Indicators.MACDSignal, color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff})
	if err != nil {
		return nil, fmt.Errorf("macd signal line: %w", err)
	}
	p.Add(macd, signal)
	return p, nil
}

func newPanel(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	return p
}

// lineFor builds a line skipping NaN warm-up entries.
func lineFor(times, values []float64, c color.Color) (*plotter.Line, error) {
	var pts plotter.XYs
	for i, v := range values {
		if i >= len(times) || math.IsNaN(v) {
			continue
		}
		pts = append(pts, plotter.XY{X: times[i], Y: v})
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Color = c
	return line, nil
}

func horizontalLine(times []float64, level float64) (*plotter.Line, error) {
	if len(times) == 0 {
		return nil, fmt.Errorf("empty time axis")
	}
	pts := plotter.XYs{
		{X: times[0], Y: level},
		{X: times[len(times)-1], Y: level},
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Color = color.Gray{Y: 0x99}
	line.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	return line, nil
}

func (r *Renderer) save(path string, plots []*plot.Plot, heights []float64) (err error) {
	var axes []*plot.Axis
	for _, p := range plots {
		axes = append(axes, &p.X)
	}
	plotext.UniteAxisRanges(axes)

	tbl := plotext.Table{
		RowHeights: heights,
		ColWidths:  []float64{1},
	}

	var plots2d [][]*plot.Plot
	for _, p := range plots {
		plots2d = append(plots2d, []*plot.Plot{p})
	}

	total := 0.0
	for _, h := range heights {
		total += h * float64(r.Height)
	}

	img := vgimg.New(vg.Points(float64(r.Width)), vg.Points(total))
	dc := draw.New(img)

	canvases := tbl.Align(plots2d, dc)
	for i, p := range plots {
		p.Draw(canvases[i][0])
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close chart file: %w", cerr))
		}
	}()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("write chart png: %w", err)
	}
	return nil
}

func fileName(symbol string) string {
	base := strings.TrimSuffix(symbol, ".NS")
	base = strings.ReplaceAll(base, string(filepath.Separator), "_")
	return base + "_analysis.png"
}
