package ui

import (
	"fmt"
	"math"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/common-nighthawk/go-figure"

	"pubmed-chat/internal/info"
	"pubmed-chat/internal/session"
)

// Display renders the plain (non-TUI) conversation view
type Display struct {
	width    int
	renderer *glamour.TermRenderer
}

// NewDisplay creates a new plain-mode display
func NewDisplay() *Display {
	width := terminalWidth()

	// Create markdown renderer
	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-10),
	)

	return &Display{
		width:    width,
		renderer: renderer,
	}
}

// Color codes
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
)

// ClearScreen clears the terminal
func (d *Display) ClearScreen() {
	fmt.Print("\033[2J\033[H")
}

// PrintWelcome displays the banner and command help
func (d *Display) PrintWelcome(modelLabel string) {
	d.ClearScreen()
	banner := strings.Trim(figure.NewFigure("PubMed Chat", "", true).String(), "\n")
	fmt.Printf("%s%s%s%s\n", colorBold, colorCyan, banner, colorReset)
	fmt.Printf("%sAsk about diabetes research, grounded in peer-reviewed publications.%s\n\n", colorDim, colorReset)
	fmt.Printf("%sModel:%s %s\n", colorGray, colorReset, modelLabel)
	fmt.Printf("%sCommands:%s /exit | /clear | /model | /metrics | /features\n", colorGray, colorReset)
	fmt.Println()
}

// PrintSeparator prints a visual separator
func (d *Display) PrintSeparator() {
	line := strings.Repeat("─", min(d.width, 80))
	fmt.Printf("%s%s%s\n", colorDim, line, colorReset)
}

// PrintPrompt displays the user input prompt
func (d *Display) PrintPrompt() {
	fmt.Printf("\n%s%s❯%s ", colorBold, colorGreen, colorReset)
}

// PrintUserMessage displays a user message with timestamp
func (d *Display) PrintUserMessage(msg session.Message) {
	fmt.Printf("\n%s┌─ You · %s%s\n", colorGray, msg.Timestamp.Format("15:04:05"), colorReset)
	fmt.Printf("%s│%s %s\n", colorGray, colorReset, msg.Content)
	fmt.Printf("%s└%s\n", colorGray, colorReset)
}

// PrintAssistantMessage renders an assistant message as markdown and lists
// its sources, if any
func (d *Display) PrintAssistantMessage(msg session.Message) {
	fmt.Printf("\n%s┌─ Assistant · %s%s\n", colorGray, msg.Timestamp.Format("15:04:05"), colorReset)

	body := msg.Content
	if d.renderer != nil {
		if rendered, err := d.renderer.Render(msg.Content); err == nil {
			body = strings.TrimRight(rendered, "\n")
		}
	}
	for _, line := range strings.Split(body, "\n") {
		fmt.Printf("%s│%s %s\n", colorGray, colorReset, line)
	}

	if msg.Citations != nil {
		fmt.Printf("%s│%s\n", colorGray, colorReset)
		fmt.Printf("%s│ Sources:%s\n", colorGray, colorReset)
		for _, c := range msg.Citations {
			match := int(math.Round(c.Relevance * 100))
			fmt.Printf("%s│  • %s%s %s(%d%% match)%s\n", colorGray, colorReset, c.Title, colorDim, match, colorReset)
			if c.Journal != "" {
				fmt.Printf("%s│    %s%s\n", colorGray, c.Journal, colorReset)
			}
			fmt.Printf("%s│    %s%s\n", colorGray, c.URL, colorReset)
		}
	}

	fmt.Printf("%s└%s\n", colorGray, colorReset)
}

// PrintThinking shows the pending indicator while a request is outstanding
func (d *Display) PrintThinking() {
	fmt.Printf("%s%sThinking...%s\n", colorDim, colorCyan, colorReset)
}

// PrintMetrics renders the system metrics panel
func (d *Display) PrintMetrics() {
	fmt.Printf("\n%s%sSystem Metrics%s %s(last 24h)%s\n", colorBold, colorBlue, colorReset, colorDim, colorReset)
	for _, m := range info.Metrics() {
		fmt.Printf("  %-22s %s%-10s%s %s%s%s\n", m.Label, colorBold, m.Value, colorReset, changeColor(m.Change), m.Change, colorReset)
	}
	fmt.Println()
}

// PrintFeatures renders the feature cards
func (d *Display) PrintFeatures() {
	fmt.Println()
	for _, f := range info.Features() {
		fmt.Printf("%s%s%s %s[%s]%s\n", colorBold, f.Title, colorReset, colorGreen, f.Stats, colorReset)
		fmt.Printf("  %s%s%s\n", colorDim, f.Description, colorReset)
	}
	fmt.Println()
}

// PrintInfo displays info message
func (d *Display) PrintInfo(msg string) {
	fmt.Printf("%sℹ %s%s\n", colorCyan, msg, colorReset)
}

// PrintWarning displays warning message
func (d *Display) PrintWarning(msg string) {
	fmt.Printf("%s⚠ %s%s\n", colorYellow, msg, colorReset)
}

// PrintError displays error message
func (d *Display) PrintError(err error) {
	fmt.Printf("%s✗ Error: %v%s\n", colorRed, err, colorReset)
}

// PrintGoodbye displays goodbye message
func (d *Display) PrintGoodbye() {
	fmt.Printf("\n%s%sThanks for using PubMed Chat!%s\n", colorBold, colorCyan, colorReset)
}

func changeColor(change string) string {
	if strings.HasPrefix(change, "+") {
		return colorGreen
	}
	return colorBlue
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func terminalWidth() int {
	cmd := exec.Command("stty", "size")
	cmd.Stdin = os.Stdin
	out, err := cmd.Output()
	if err != nil {
		return 80
	}

	var height, width int
	fmt.Sscanf(string(out), "%d %d", &height, &width)
	if width <= 0 {
		return 80
	}
	return width
}
