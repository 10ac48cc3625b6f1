package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/pb33f/quiver/motor"
	"github.com/pb33f/quiver/tui"
)

func LaunchTUI(httpFile string) error {
	logger := GetLogger()

	data, err := os.ReadFile(httpFile)
	if err != nil {
		return fmt.Errorf("failed to read http file: %w", err)
	}

	requests, err := motor.Parse(string(data))
	if err != nil {
		return fmt.Errorf("failed to parse http file: %w", err)
	}
	logger.Debug("http file parsed", "file", httpFile, "requests", len(requests))

	history, err := openHistory()
	if err != nil {
		// history is an extra, the client still works without it
		logger.Warn("execution history disabled", "error", err)
	}

	queue := motor.NewMessageQueue()
	dispatcher := motor.NewDispatcher(motor.NewExecutor(), queue, history)

	model := tui.NewAppModel(httpFile, requests, dispatcher, queue, history)
	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	// cleanup resources
	if m, ok := finalModel.(*tui.AppModel); ok {
		m.Cleanup()
	}

	return nil
}

func openHistory() (*motor.History, error) {
	if noHistory {
		return nil, nil
	}
	path := historyPath
	if path == "" {
		var err error
		path, err = motor.DefaultHistoryPath()
		if err != nil {
			return nil, err
		}
	}
	return motor.OpenHistory(path)
}
