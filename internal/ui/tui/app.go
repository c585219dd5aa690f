package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aalvaropc/brcstream/internal/domain"
	"github.com/aalvaropc/brcstream/internal/usecase/report"
)

type screen int

const (
	screenLoading screen = iota
	screenStations
	screenDetail
	screenError
)

type stationItem struct {
	name  string
	stats domain.StationStats
}

func (s stationItem) Title() string { return s.name }
func (s stationItem) Description() string {
	return fmt.Sprintf("min %s • mean %s • max %s",
		report.FormatNumber(s.stats.Min),
		report.FormatNumber(report.Value(s.stats)),
		report.FormatNumber(s.stats.Max),
	)
}
func (s stationItem) FilterValue() string { return s.name }

type model struct {
	theme Theme
	deps  Deps

	scr      screen
	stations list.Model
	selected stationItem

	report domain.Report
	err    error
	toast  string
}

func Run(deps Deps) error {
	m := newModel(deps)
	p := tea.NewProgram(wrapSafe(m, deps.Logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	l := list.New(nil, list.NewDefaultDelegate(), 80, 20)
	l.Title = "Stations"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return model{
		theme:    DefaultTheme(),
		deps:     deps,
		scr:      screenLoading,
		stations: l,
	}
}

func (m model) Init() tea.Cmd { return cmdProcess(m.deps) }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.stations.SetSize(msg.Width-4, msg.Height-10)
		return m, nil

	case processDoneMsg:
		if msg.err != nil {
			m.scr = screenError
			m.err = msg.err
			return m, nil
		}
		m.report = msg.report
		m.err = nil
		m.scr = screenStations
		return m, m.stations.SetItems(stationItems(msg.report.Stations))

	case tea.KeyMsg:
		filtering := m.scr == screenStations && m.stations.FilterState() == list.Filtering

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if filtering {
				break
			}
			if m.scr == screenDetail {
				m.scr = screenStations
				return m, nil
			}
			return m, tea.Quit

		case "enter":
			if m.scr == screenStations && !filtering {
				it, ok := m.stations.SelectedItem().(stationItem)
				if !ok {
					return m, nil
				}
				m.selected = it
				m.scr = screenDetail
				return m, nil
			}

		case "esc", "b":
			if m.scr == screenDetail {
				m.scr = screenStations
				return m, nil
			}

		case "r":
			if m.scr == screenError || (m.scr == screenStations && !filtering) {
				m.scr = screenLoading
				m.toast = ""
				return m, cmdProcess(m.deps)
			}
		}
	}

	if m.scr == screenStations {
		var cmd tea.Cmd
		m.stations, cmd = m.stations.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("brcstream") + "\n" +
		m.theme.Subtitle.Render(clampString(m.deps.Path, 72)) + "\n"

	if m.toast != "" {
		header += m.theme.Error.Render(m.toast) + "\n"
	}

	switch m.scr {
	case screenLoading:
		return wrap.Render(header + "\n" + m.theme.Help.Render("Processing…"))

	case screenStations:
		help := m.theme.Help.Render("↑/↓ navigate • enter details • / search • r reload • q quit")
		return wrap.Render(header + m.theme.Help.Render(renderRunStats(m.report)) + "\n\n" +
			m.theme.Card.Render(m.stations.View()) + "\n" + help)

	case screenDetail:
		card := m.theme.Card.Render(
			m.theme.Title.Render(clampString(m.selected.name, 48)) + "\n\n" +
				renderStationDetails(m.theme, m.selected.name, m.selected.stats) + "\n" +
				m.theme.Help.Render("esc/b back • q back"),
		)
		return wrap.Render(header + "\n" + card)

	case screenError:
		card := m.theme.Card.Render(
			m.theme.Error.Render(userMessage(m.err)) + "\n\n" +
				m.theme.Help.Render("r retry • q quit"),
		)
		return wrap.Render(header + "\n" + card)

	default:
		return wrap.Render(header + "\n" + "unknown state")
	}
}

func stationItems(m domain.StationMap) []list.Item {
	names := report.SortedNames(m)
	items := make([]list.Item, 0, len(names))
	for _, name := range names {
		items = append(items, stationItem{name: name, stats: *m[name]})
	}
	return items
}
