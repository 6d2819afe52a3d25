package main

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/iw2rmb/trueke/globe"
)

var quitKey = key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit"))

type globeModel struct {
	globe globe.Model
}

func (m globeModel) Init() tea.Cmd { return m.globe.Init() }

func (m globeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, quitKey) {
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.globe, cmd = m.globe.Update(msg)
	return m, cmd
}

func (m globeModel) View() string { return m.globe.View() }

func newGlobeCmd(opts *rootOptions) *cobra.Command {
	var speed float64
	cmd := &cobra.Command{
		Use:   "globe",
		Short: "Spin the marketplace globe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := globeModel{globe: globe.New(globe.Config{Speed: speed, Style: globe.DefaultStyle()})}
			opts.logger.Debug("starting globe")
			_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
			return err
		},
	}
	cmd.Flags().Float64Var(&speed, "speed", globe.DefaultSpeed, "auto-rotation per frame in radians; negative stops it")
	return cmd
}
