package graph

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/louisbranch/questline/internal/session"
	"github.com/louisbranch/questline/internal/transport"
)

const welcomeMessage = "📐 LINEAR FUNCTION CALCULATOR\n" +
	"========================================\n" +
	"🎯 Features:\n" +
	"  • Linear functions only (y = mx + c)\n" +
	"  • Individual graphs with coordinates\n" +
	"  • Slope and intercept analysis\n" +
	"  • Interactive command interface\n" +
	"========================================\n" +
	"📐 Starting Linear Function Calculator!\n" +
	"📈 Enter linear equations to plot them (y = mx + c format)\n" +
	"📊 Type 'formulas' to see all linear function examples\n" +
	"❓ Type 'help' for commands, 'quit' to exit"

const formulasMessage = "📐 LINEAR FUNCTIONS REFERENCE (y = mx + c)\n" +
	"========================================\n\n" +
	"📈 AVAILABLE LINEAR FUNCTIONS:\n" +
	"y=2x+3        → Linear function: slope = 2, y-intercept = 3\n" +
	"y=x+1         → Linear function: slope = 1, y-intercept = 1\n" +
	"y=-x+5        → Linear function: slope = -1, y-intercept = 5\n" +
	"y=0.5x-2      → Linear function: slope = 0.5, y-intercept = -2\n" +
	"y=3x          → Linear function through origin: slope = 3\n" +
	"y=-2x+1       → Linear function: slope = -2, y-intercept = 1\n" +
	"y=x           → Identity function: slope = 1, y-intercept = 0\n" +
	"y=-x          → Negative identity function: slope = -1, y-intercept = 0\n" +
	"y=4           → Horizontal line: y = 4\n" +
	"y=-3          → Horizontal line: y = -3\n" +
	"y=1.5x+2      → Linear function: slope = 1.5, y-intercept = 2\n" +
	"y=-0.5x-1     → Linear function: slope = -0.5, y-intercept = -1\n\n" +
	"📝 LINEAR EQUATION INPUT EXAMPLES:\n" +
	"• Positive slope:    y=2x+3, y=x+1, y=3x\n" +
	"• Negative slope:    y=-x+5, y=-2x+1\n" +
	"• Decimal slope:     y=0.5x-2, y=1.5x+2\n" +
	"• Horizontal lines:  y=4, y=-3\n" +
	"• Through origin:    y=x, y=-x, y=3x\n\n" +
	"🎯 Each equation creates its own graph with coordinate points!"

const helpMessage = "📐 LINEAR FUNCTION CALCULATOR COMMANDS\n" +
	"========================================\n" +
	"📊 formulas → Show all linear function examples\n" +
	"📜 history  → Show equation history\n" +
	"💾 save     → Save current graph as image\n" +
	"🔄 status   → Show calculator status\n" +
	"📏 zoom     → Adjust window (xmin xmax ymin ymax)\n" +
	"🗑️ clear    → Clear all equations\n" +
	"⬅️ undo     → Remove last equation\n" +
	"❓ help     → Show this help menu\n" +
	"🚪 quit     → Exit calculator\n" +
	"========================================\n" +
	"📐 To add linear equation: 'y=2x+3', 'y=-x+1', 'y=0.5x-2'\n" +
	"📍 Coordinate points automatically marked"

// keyXValues are the x coordinates listed in every equation analysis.
var keyXValues = []float64{-3, -2, -1, 0, 1, 2, 3}

// Handler drives the calculator conversation while the session is in
// the graph state.
type Handler struct {
	sessions *session.Table
	sender   transport.Sender
	logger   *zap.Logger
	tempDir  string
}

// NewHandler wires the graphing calculator handler.
func NewHandler(sessions *session.Table, sender transport.Sender, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{sessions: sessions, sender: sender, logger: logger, tempDir: os.TempDir()}
}

// Start abandons any in-flight feature and opens a fresh calculator.
func (h *Handler) Start(ctx context.Context, userID string) error {
	calc := NewCalculator()
	h.sessions.SetState(userID, session.StateGraph, calc)
	h.logger.Info("graphing calculator started", zap.String("user", userID))

	if err := h.sender.SendText(ctx, userID, welcomeMessage); err != nil {
		return fmt.Errorf("graph start: %w", err)
	}
	return h.sendPrompt(ctx, userID, calc)
}

// HandleInput processes one message while the calculator owns the
// conversation: commands first, anything else treated as an equation.
func (h *Handler) HandleInput(ctx context.Context, userID, body string) error {
	sess := h.sessions.GetOrCreate(userID)
	calc, ok := sess.Payload.(*Calculator)
	if !ok {
		h.sessions.Reset(userID)
		return h.sender.SendText(ctx, userID, `❌ No active graphing calculator session. Type "graph" to start.`)
	}

	original := strings.TrimSpace(body)
	input := strings.ToLower(original)

	switch input {
	case "quit", "exit":
		h.sessions.Reset(userID)
		return h.sender.SendText(ctx, userID,
			"👋 Thanks for using the Linear Function Calculator!\n📐 Your graphs were processed successfully.")
	case "formulas":
		return h.reply(ctx, userID, calc, formulasMessage)
	case "help":
		return h.reply(ctx, userID, calc, helpMessage)
	case "history":
		return h.reply(ctx, userID, calc, historyMessage(calc))
	case "status":
		return h.reply(ctx, userID, calc, statusMessage(calc))
	case "clear":
		calc.Clear()
		return h.reply(ctx, userID, calc, "🗑️ All linear equations cleared!")
	case "undo":
		if calc.Undo() {
			return h.reply(ctx, userID, calc, "⬅️ Last equation removed!")
		}
		return h.reply(ctx, userID, calc, "❌ No equations to remove!")
	case "save":
		return h.saveGraph(ctx, userID, calc)
	}

	if strings.HasPrefix(input, "zoom ") {
		return h.reply(ctx, userID, calc, zoomMessage(calc, input))
	}

	if original == "" {
		return h.reply(ctx, userID, calc, "❌ Empty input! Enter a linear equation like 'y=2x+3'")
	}

	equation := original
	if !strings.HasPrefix(strings.ToLower(equation), "y=") && strings.Contains(equation, "x") {
		equation = "y=" + equation
	}
	return h.plotEquation(ctx, userID, calc, equation)
}

func (h *Handler) plotEquation(ctx context.Context, userID string, calc *Calculator, equation string) error {
	linear, err := calc.Add(equation)
	if err != nil {
		return h.reply(ctx, userID, calc,
			"❌ Only linear functions are supported!\n💡 Examples: y=2x+3, y=-x+1, y=0.5x-2")
	}

	analysis, err := h.analysisMessage(calc, equation, linear)
	if err != nil {
		return fmt.Errorf("graph analysis: %w", err)
	}
	if err := h.sender.SendText(ctx, userID, analysis); err != nil {
		return err
	}

	if err := h.sendPlot(ctx, userID, calc, equation); err != nil {
		// The analysis already went out; report the render failure and
		// keep the session usable.
		h.logger.Warn("plot render failed", zap.String("user", userID), zap.Error(err))
		if err := h.sender.SendText(ctx, userID, "❌ Error creating graph image."); err != nil {
			return err
		}
	}
	return h.sendPrompt(ctx, userID, calc)
}

func (h *Handler) saveGraph(ctx context.Context, userID string, calc *Calculator) error {
	if calc.Count() == 0 {
		return h.reply(ctx, userID, calc, "❌ No equations to graph yet!")
	}
	if err := h.sender.SendText(ctx, userID, "💾 Current graph summary:"); err != nil {
		return err
	}
	if err := h.sendPlot(ctx, userID, calc, calc.entries...); err != nil {
		h.logger.Warn("summary render failed", zap.String("user", userID), zap.Error(err))
		if err := h.sender.SendText(ctx, userID, "❌ Error saving current graph."); err != nil {
			return err
		}
	}
	return h.sendPrompt(ctx, userID, calc)
}

func (h *Handler) sendPlot(ctx context.Context, userID string, calc *Calculator, equations ...string) error {
	png, err := calc.Render(equations...)
	if err != nil {
		return err
	}

	file, err := os.CreateTemp(h.tempDir, "graph-*.png")
	if err != nil {
		return fmt.Errorf("temp plot file: %w", err)
	}
	path := file.Name()
	defer os.Remove(path)

	if _, err := file.Write(png); err != nil {
		file.Close()
		return fmt.Errorf("write plot: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("write plot: %w", err)
	}
	return h.sender.SendImage(ctx, userID, path)
}

// analysisMessage mirrors the per-equation breakdown: slope, intercept,
// line type, key points inside the window, and both intercepts.
func (h *Handler) analysisMessage(calc *Calculator, equation string, linear Linear) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "\n📈 %s: %s\n", equation, linear.Describe())
	fmt.Fprintf(&b, "Added linear equation: %s\n\n", equation)

	fmt.Fprintf(&b, "📊 Linear Function Analysis:\n")
	fmt.Fprintf(&b, "   Slope (m) = %s\n", FormatNumber(linear.Slope))
	fmt.Fprintf(&b, "   Y-intercept (c) = %s\n", FormatNumber(linear.Intercept))
	switch {
	case linear.Slope == 0:
		b.WriteString("   Type: Horizontal line\n")
	case linear.Slope > 0:
		b.WriteString("   Type: Increasing line\n")
	default:
		b.WriteString("   Type: Decreasing line\n")
	}

	b.WriteString("\n📍 Key Points:\n")
	w := calc.Window()
	for _, x := range keyXValues {
		y, err := calc.Eval(equation, x)
		if err != nil {
			return "", err
		}
		if y < w.YMin || y > w.YMax || x < w.XMin || x > w.XMax {
			continue
		}
		marker := ""
		if x == 0 {
			marker = " ← Y-intercept"
		}
		fmt.Fprintf(&b, "   (%s, %s)%s\n", FormatNumber(x), FormatNumber(y), marker)
	}

	fmt.Fprintf(&b, "\n🎯 Y-intercept: (0, %s)\n", FormatNumber(linear.Intercept))
	if linear.Slope != 0 {
		xIntercept := -linear.Intercept / linear.Slope
		if xIntercept >= w.XMin && xIntercept <= w.XMax {
			fmt.Fprintf(&b, "🎯 X-intercept: (%.2f, 0)\n", xIntercept)
		}
	}
	return b.String(), nil
}

// reply sends a message followed by the standard equation prompt.
func (h *Handler) reply(ctx context.Context, userID string, calc *Calculator, text string) error {
	if err := h.sender.SendText(ctx, userID, text); err != nil {
		return err
	}
	return h.sendPrompt(ctx, userID, calc)
}

func (h *Handler) sendPrompt(ctx context.Context, userID string, calc *Calculator) error {
	return h.sender.SendText(ctx, userID, fmt.Sprintf(
		"📐 Linear Calculator: %d equations processed\n📝 Enter linear equation or command:", calc.Count()))
}

func historyMessage(calc *Calculator) string {
	var b strings.Builder
	b.WriteString("\n📜 Linear Equation History:\n")
	lines := calc.History()
	if len(lines) == 0 {
		b.WriteString("  No equations added yet.")
		return b.String()
	}
	for _, line := range lines {
		fmt.Fprintf(&b, "  %s\n", line)
	}
	return b.String()
}

func statusMessage(calc *Calculator) string {
	w := calc.Window()
	return fmt.Sprintf("\n📊 Calculator Status:\n📈 Linear equations: %d\n📏 Window: x[%s, %s], y[%s, %s]",
		calc.Count(),
		FormatNumber(w.XMin), FormatNumber(w.XMax), FormatNumber(w.YMin), FormatNumber(w.YMax))
}

func zoomMessage(calc *Calculator, input string) string {
	fields := strings.Fields(input)[1:]
	if len(fields) != 4 {
		return "❌ Zoom format: zoom xmin xmax ymin ymax"
	}
	values := make([]float64, 4)
	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return "❌ Zoom format: zoom xmin xmax ymin ymax"
		}
		values[i] = v
	}
	w := Window{XMin: values[0], XMax: values[1], YMin: values[2], YMax: values[3]}
	if err := calc.SetWindow(w); err != nil {
		return "❌ Invalid window! Min < Max required"
	}
	return fmt.Sprintf("📏 Window: x[%s, %s], y[%s, %s]",
		FormatNumber(w.XMin), FormatNumber(w.XMax), FormatNumber(w.YMin), FormatNumber(w.YMax))
}
