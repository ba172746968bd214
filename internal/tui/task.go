package tui

import (
	"context"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Task is a unit of work shown behind a spinner. The returned string is
// displayed on success.
type Task func(ctx context.Context) (string, error)

type taskDoneMsg struct {
	result string
	err    error
}

// taskModel renders a spinner until the task reports completion.
type taskModel struct {
	spinner     spinner.Model
	message     string
	done        bool
	interrupted bool
	result      string
	err         error
}

func newTaskModel(message string) taskModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle
	return taskModel{spinner: s, message: message}
}

func (m taskModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m taskModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case taskDoneMsg:
		m.done = true
		m.result = msg.result
		m.err = msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.interrupted = true
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m taskModel) View() string {
	switch {
	case m.interrupted:
		return ErrorStyle.Render(SymbolCross+" interrupted") + "\n"
	case m.done && m.err != nil:
		return ErrorStyle.Render(SymbolCross+" "+m.err.Error()) + "\n"
	case m.done:
		return SuccessStyle.Render(SymbolCheck+" "+m.result) + "\n"
	}
	return m.spinner.View() + " " + MessageStyle.Render(m.message)
}

// RunTask runs task, rendering a spinner on out while it works when mode is
// interactive. Pressing ctrl+c cancels the task's context. In
// non-interactive mode the task simply runs.
func RunTask(ctx context.Context, mode Mode, out io.Writer, message string, task Task) error {
	if mode != ModeInteractive {
		_, err := task(ctx)
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newTaskModel(message), tea.WithOutput(out), tea.WithContext(ctx))

	var taskErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		result, err := task(ctx)
		taskErr = err
		p.Send(taskDoneMsg{result: result, err: err})
	}()

	final, runErr := p.Run()
	if m, ok := final.(taskModel); !ok || m.interrupted || runErr != nil {
		cancel()
	}
	<-done
	if taskErr != nil {
		return taskErr
	}
	return runErr
}
