package main

import (
	"fmt"
	"os"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
)

type action struct {
	name string
	run  func() error
}

type model struct {
	actions  []action
	cursor   int
	selected map[int]bool
	quit     bool
}

func initialModel() model {
	return model{
		actions: []action{
			{name: "*DANGER* Reset DB", run: resetDB},
			{name: "Push schema", run: pushSchema},
		},
		selected: make(map[int]bool),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quit = true
			return m, tea.Quit
		case "enter":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.actions)-1 {
				m.cursor++
			}
		case " ":
			if m.selected[m.cursor] {
				delete(m.selected, m.cursor)
			} else {
				m.selected[m.cursor] = true
			}
		}
	}
	return m, nil
}

func (m model) View() string {
	s := "Run archive maintenance:\n\n"

	for i, a := range m.actions {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		checked := " "
		if m.selected[i] {
			checked = "x"
		}
		s += fmt.Sprintf("%s [%s] %s\n", cursor, checked, a.name)
	}

	s += "\nPress Space to select, Enter to execute, q to quit.\n\n"
	return s
}

// chosen lists the selected actions in menu order.
func (m model) chosen() []action {
	if m.quit {
		return nil
	}
	keys := make([]int, 0, len(m.selected))
	for k := range m.selected {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	out := make([]action, 0, len(keys))
	for _, k := range keys {
		out = append(out, m.actions[k])
	}
	return out
}

func main() {
	final, err := tea.NewProgram(initialModel()).Run()
	if err != nil {
		log.Error().Err(err).Msg("Menu failed")
		os.Exit(1)
	}

	for _, a := range final.(model).chosen() {
		log.Info().Str("action", a.name).Msg("Running")
		if err := a.run(); err != nil {
			log.Error().Err(err).Str("action", a.name).Msg("Action failed")
			os.Exit(1)
		}
	}
}
