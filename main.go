package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/nconklindev/gridedit/internal/config"
	"github.com/nconklindev/gridedit/internal/logging"
	"github.com/nconklindev/gridedit/internal/session"
	"github.com/nconklindev/gridedit/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Handle --version flag
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("gridedit %s\ncommit: %s\nbuilt: %s\n", version, commit, date)
		os.Exit(0)
	}

	var path string
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logFile, err := logging.Open(cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	logger := logging.Setup(logFile, cfg.Logging.Level, cfg.Logging.Format)
	logger.Info("starting", "version", version, "file", path)

	sess := session.New(session.Options{
		HistoryLimit: cfg.Editor.HistoryLimit,
		Logger:       logger,
	})

	p := tea.NewProgram(ui.InitialModel(cfg.Editor, sess, path), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		slog.Error("program exited", "error", err)
		fmt.Printf("Error: %v\n", err)
		logFile.Close()
		os.Exit(1)
	}
}
