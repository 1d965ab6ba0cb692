package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pubmed-chat/internal/askapi"
	"pubmed-chat/internal/config"
	"pubmed-chat/internal/session"
	"pubmed-chat/internal/terminal"
	"pubmed-chat/internal/tui"
	"pubmed-chat/internal/ui"
)

func main() {
	// Set the GetEnv function for config
	config.GetEnv = os.Getenv

	// Parse command-line flags
	cfg := parseFlags()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Initialize the answer-service client and the session
	client := askapi.NewClient(cfg.ServiceURL, cfg.RequestTimeout)
	ctrl := session.NewController(client, cfg.DefaultModel)

	// Health check (non-fatal: the backend may come up later; a failed
	// turn surfaces its own fallback message)
	if err := client.HealthCheck(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	// Diagnostics go to a file next to the input history so they never
	// interleave with the conversation; -verbose in plain mode keeps them
	// on stderr instead
	logPath := filepath.Join(filepath.Dir(cfg.InputHistoryPath), "debug.log")
	os.MkdirAll(filepath.Dir(logPath), 0755)

	if cfg.PlainMode {
		if !cfg.Verbose {
			if f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600); err == nil {
				defer f.Close()
				log.SetOutput(f)
			}
		}
		runPlain(cfg, client, ctrl)
		return
	}

	logFile, err := tea.LogToFile(logPath, "pubmed-chat")
	if err == nil {
		defer logFile.Close()
	}

	p := tea.NewProgram(tui.NewModel(ctrl, client, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// parseFlags parses command-line flags over the config defaults
func parseFlags() *config.Config {
	cfg := config.NewConfig()

	flag.StringVar(&cfg.ServiceURL, "service-url", cfg.ServiceURL, "Answer service base URL")
	flag.StringVar(&cfg.DefaultModel, "model", cfg.DefaultModel, "Backend model (llm or gemini)")
	flag.BoolVar(&cfg.PlainMode, "plain", cfg.PlainMode, "Use the plain line-based interface instead of the TUI")
	flag.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Enable verbose logging")

	timeoutSeconds := flag.Int("timeout", 60, "Request timeout in seconds")
	useGemini := flag.Bool("gemini", false, "Shorthand for -model gemini")

	flag.Parse()

	cfg.RequestTimeout = time.Duration(*timeoutSeconds) * time.Second

	if *useGemini {
		cfg.DefaultModel = askapi.ModelGemini
	}

	return cfg
}

// runPlain drives the line-based conversation loop
func runPlain(cfg *config.Config, client *askapi.Client, ctrl *session.Controller) {
	display := ui.NewDisplay()
	display.PrintWelcome(askapi.ModelLabel(cfg.DefaultModel))

	for {
		display.PrintPrompt()
		line, err := terminal.ReadUserInput()
		if err != nil {
			break
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "/exit", "/quit", "exit", "quit":
			display.PrintGoodbye()
			return
		case "/clear":
			ctrl = session.NewController(client, ctrl.Snapshot().Model)
			display.PrintWelcome(askapi.ModelLabel(ctrl.Snapshot().Model))
			continue
		case "/model":
			toggleModel(ctrl, display)
			continue
		case "/metrics":
			display.PrintMetrics()
			continue
		case "/features":
			display.PrintFeatures()
			continue
		}

		ctrl.SetDraft(line)
		if !ctrl.Submit() {
			continue
		}

		snap := ctrl.Snapshot()
		display.PrintUserMessage(snap.Transcript[len(snap.Transcript)-1])
		display.PrintThinking()

		ctrl.Resolve(context.Background())

		snap = ctrl.Snapshot()
		display.PrintAssistantMessage(snap.Transcript[len(snap.Transcript)-1])
	}

	display.PrintGoodbye()
}

func toggleModel(ctrl *session.Controller, display *ui.Display) {
	snap := ctrl.Snapshot()
	next := askapi.ModelGemini
	if snap.Model == askapi.ModelGemini {
		next = askapi.ModelLLM
	}
	ctrl.SetModel(next)
	display.PrintInfo("Model switched to " + askapi.ModelLabel(next))
}
