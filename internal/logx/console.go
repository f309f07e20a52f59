package logx

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	isatty "github.com/mattn/go-isatty"
)

var (
	styleArrow    = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)  // cyan/blue
	styleScript   = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)  // bright white
	styleLine     = lipgloss.NewStyle().Faint(true)                                  // dim
	styleWarnLbl  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true) // yellow
	styleWarnTxt  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))            // yellow
	styleWait     = lipgloss.NewStyle().Foreground(lipgloss.Color("45")).Faint(true) // teal dim
	styleOK       = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)  // green
	styleFail     = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true) // red
	styleDeferTag = lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Faint(true)
)

// ConsoleLogger renders progress to stdout/stderr with lipgloss styling
// when attached to a terminal, falling back to plain text otherwise.
type ConsoleLogger struct {
	colorEnabled bool
}

// NewConsoleLogger returns a ConsoleLogger. Color is enabled only when
// stdout is a terminal and noColor is false.
func NewConsoleLogger(noColor bool) *ConsoleLogger {
	tty := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	return &ConsoleLogger{colorEnabled: tty && !noColor}
}

func (c *ConsoleLogger) r(st lipgloss.Style, s string) string {
	if !c.colorEnabled {
		return s
	}
	return st.Render(s)
}

func (c *ConsoleLogger) StartScript(name string) {
	arrow := c.r(styleArrow, "→")
	fmt.Printf("%s %s\n", arrow, c.r(styleScript, name))
}

func (c *ConsoleLogger) FinishScript(name string, err error) {
	if err != nil {
		fmt.Printf("%s %s: %s\n", c.r(styleFail, "✗"), name, shortError(err))
		return
	}
	fmt.Printf("%s %s\n", c.r(styleOK, "✓"), name)
}

func (c *ConsoleLogger) LogStart(line string, deferred bool) {
	fmt.Printf("  %s%s\n", c.deferTag(deferred), c.r(styleLine, line))
}

func (c *ConsoleLogger) Log(line string, deferred bool) {
	fmt.Printf("  %s%s\n", c.deferTag(deferred), line)
}

func (c *ConsoleLogger) LogWait() {
	fmt.Println(c.r(styleWait, "  waiting for deferred processes..."))
}

func (c *ConsoleLogger) LogSuccess(line string, deferred bool) {
	fmt.Printf("  %s %s%s\n", c.r(styleOK, "✓"), c.deferTag(deferred), line)
}

func (c *ConsoleLogger) LogFailure(line string, deferred bool, err error) {
	fmt.Printf("  %s %s%s: %s\n", c.r(styleFail, "✗"), c.deferTag(deferred), line, shortError(err))
}

func (c *ConsoleLogger) Warn(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, c.r(styleWarnLbl, "Warning:")+" "+c.r(styleWarnTxt, msg))
}

func (c *ConsoleLogger) deferTag(deferred bool) string {
	if !deferred {
		return ""
	}
	return c.r(styleDeferTag, "[deferred] ")
}

// shortError condenses a verbose multi-line error into its last
// meaningful line.
func shortError(err error) string {
	if err == nil {
		return ""
	}
	lines := strings.Split(err.Error(), "\n")
	var candidate string
	for _, ln := range lines {
		t := strings.TrimSpace(ln)
		if t != "" {
			candidate = t
		}
	}
	return candidate
}
