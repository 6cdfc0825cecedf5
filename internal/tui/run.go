package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run connects to the server and drives the interactive session until the
// user quits or ctx is cancelled
func Run(ctx context.Context, opts Options) error {
	if opts.Username == "" {
		return errors.New("username is required")
	}

	session, err := Dial(ctx, opts.URL)
	if err != nil {
		return err
	}
	defer func() { _ = session.Close() }()

	if opts.JoinRoom != "" {
		cmd, err := parseInput("/join "+opts.JoinRoom, opts.Username, "")
		if err != nil {
			return err
		}
		if err := session.Send(*cmd.frame); err != nil {
			return fmt.Errorf("join %s: %w", opts.JoinRoom, err)
		}
	}

	p := tea.NewProgram(NewModel(session, session.Events(), opts.Username), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
