// Package graph implements the linear function calculator: equations
// of the form y = mx + c are parsed, evaluated through an embedded Lua
// state, and rendered as PNG plots.
package graph

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Shopify/go-lua"
	"github.com/wcharczuk/go-chart/v2"
)

const plotSamples = 101

// Window is the viewing window used for plots.
type Window struct {
	XMin, XMax float64
	YMin, YMax float64
}

// DefaultWindow is the viewing window for a fresh calculator.
var DefaultWindow = Window{XMin: -10, XMax: 10, YMin: -10, YMax: 10}

// Linear is a parsed y = mx + c equation.
type Linear struct {
	Slope     float64
	Intercept float64
}

// linearRE matches the normalized right-hand side: an optional mx term
// followed by an optional constant. The sign rule between the two
// terms is enforced separately.
var linearRE = regexp.MustCompile(`^(-?(?:\d+(?:\.\d+)?)?x)?([+-]?\d+(?:\.\d+)?)?$`)

// implicitMul rewrites coefficients like 2x into the 2*x Lua expects.
var implicitMul = regexp.MustCompile(`(\d)x`)

// Calculator holds the equations entered so far and the Lua state used
// to evaluate them. It is not safe for concurrent use; the router
// serializes messages per user.
type Calculator struct {
	state   *lua.State
	window  Window
	entries []string
}

// NewCalculator builds a calculator with the default viewing window.
func NewCalculator() *Calculator {
	state := lua.NewState()
	lua.OpenLibraries(state)
	return &Calculator{state: state, window: DefaultWindow}
}

// Window reports the current viewing window.
func (c *Calculator) Window() Window { return c.window }

// SetWindow replaces the viewing window.
func (c *Calculator) SetWindow(w Window) error {
	if w.XMin >= w.XMax || w.YMin >= w.YMax {
		return errors.New("window min must be below max")
	}
	c.window = w
	return nil
}

// Count reports how many equations have been added.
func (c *Calculator) Count() int { return len(c.entries) }

// History lists the equations added so far, numbered in entry order.
func (c *Calculator) History() []string {
	lines := make([]string, len(c.entries))
	for i, eq := range c.entries {
		lines[i] = fmt.Sprintf("%d. %s", i+1, eq)
	}
	return lines
}

// Add records an equation after validating it is linear.
func (c *Calculator) Add(equation string) (Linear, error) {
	linear, ok := ParseLinear(equation)
	if !ok {
		return Linear{}, fmt.Errorf("not a linear equation: %s", equation)
	}
	c.entries = append(c.entries, equation)
	return linear, nil
}

// Undo removes the most recent equation and reports whether there was
// one to remove.
func (c *Calculator) Undo() bool {
	if len(c.entries) == 0 {
		return false
	}
	c.entries = c.entries[:len(c.entries)-1]
	return true
}

// Clear drops all equations.
func (c *Calculator) Clear() { c.entries = nil }

// Eval computes y for the given x by running the equation's right-hand
// side through the Lua state.
func (c *Calculator) Eval(equation string, x float64) (float64, error) {
	expr := implicitMul.ReplaceAllString(normalize(equation), "${1}*x")

	c.state.PushNumber(x)
	c.state.SetGlobal("x")
	if err := lua.DoString(c.state, "return "+expr); err != nil {
		return 0, fmt.Errorf("evaluate %q: %w", equation, err)
	}
	y, ok := c.state.ToNumber(-1)
	c.state.Pop(1)
	if !ok {
		return 0, fmt.Errorf("expression %q did not yield a number", equation)
	}
	return y, nil
}

// Render plots the given equations over the current window and returns
// the PNG bytes.
func (c *Calculator) Render(equations ...string) ([]byte, error) {
	if len(equations) == 0 {
		return nil, errors.New("no equations to plot")
	}

	w := c.window
	series := make([]chart.Series, 0, len(equations)+1)
	for _, eq := range equations {
		xs := make([]float64, plotSamples)
		ys := make([]float64, plotSamples)
		step := (w.XMax - w.XMin) / float64(plotSamples-1)
		for i := range xs {
			x := w.XMin + step*float64(i)
			y, err := c.Eval(eq, x)
			if err != nil {
				return nil, err
			}
			xs[i], ys[i] = x, y
		}
		series = append(series, chart.ContinuousSeries{Name: eq, XValues: xs, YValues: ys})
	}

	if len(equations) == 1 {
		if linear, ok := ParseLinear(equations[0]); ok {
			series = append(series, chart.AnnotationSeries{
				Annotations: []chart.Value2{{
					XValue: 0,
					YValue: linear.Intercept,
					Label:  fmt.Sprintf("(0, %s)", FormatNumber(linear.Intercept)),
				}},
			})
		}
	}

	graph := chart.Chart{
		Title:  strings.Join(equations, ", "),
		XAxis:  chart.XAxis{Name: "x", Range: &chart.ContinuousRange{Min: w.XMin, Max: w.XMax}},
		YAxis:  chart.YAxis{Name: "y", Range: &chart.ContinuousRange{Min: w.YMin, Max: w.YMax}},
		Series: series,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render plot: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseLinear extracts slope and intercept from a y = mx + c equation.
// The y= prefix, spaces, and case are ignored.
func ParseLinear(equation string) (Linear, bool) {
	expr := normalize(equation)
	if expr == "" {
		return Linear{}, false
	}
	m := linearRE.FindStringSubmatch(expr)
	if m == nil || (m[1] == "" && m[2] == "") {
		return Linear{}, false
	}
	// A constant following an x term must be explicitly signed, so
	// y=x3 is rejected while y=x+3 parses.
	if m[1] != "" && m[2] != "" && m[2][0] != '+' && m[2][0] != '-' {
		return Linear{}, false
	}

	var linear Linear
	if m[1] != "" {
		coef := strings.TrimSuffix(m[1], "x")
		switch coef {
		case "":
			linear.Slope = 1
		case "-":
			linear.Slope = -1
		default:
			slope, err := strconv.ParseFloat(coef, 64)
			if err != nil {
				return Linear{}, false
			}
			linear.Slope = slope
		}
	}
	if m[2] != "" {
		intercept, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return Linear{}, false
		}
		linear.Intercept = intercept
	}
	return linear, true
}

// Describe summarizes a linear equation the way the formulas reference
// does.
func (l Linear) Describe() string {
	switch {
	case l.Slope == 0:
		return fmt.Sprintf("Horizontal line: y = %s", FormatNumber(l.Intercept))
	case l.Intercept == 0:
		return fmt.Sprintf("Linear function through origin: slope = %s", FormatNumber(l.Slope))
	default:
		return fmt.Sprintf("Linear function: slope = %s, y-intercept = %s",
			FormatNumber(l.Slope), FormatNumber(l.Intercept))
	}
}

// FormatNumber renders a coefficient without trailing zeros.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// normalize lowercases an equation, strips spaces, and drops the y=
// prefix, leaving the bare right-hand side.
func normalize(equation string) string {
	expr := strings.ToLower(strings.TrimSpace(equation))
	expr = strings.ReplaceAll(expr, " ", "")
	return strings.TrimPrefix(expr, "y=")
}
