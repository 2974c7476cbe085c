package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styling
var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#b8860b")).
			Padding(0, 1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#0a84ff")).
			Padding(0, 1)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#30d158")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#ff453a")).
			Padding(0, 1)
)

// Model defines the application state
type Model struct {
	mainMenu    list.Model
	tankView    table.Model
	kegView     table.Model
	stockView   table.Model
	historyList list.Model
	textInput   textinput.Model
	spinner     spinner.Model
	client      *ApiClient
	currentView string
	status      string
	error       string
}

// item represents a list item
type item struct {
	title, desc string
}

// FilterValue implements list.Item interface
func (i item) FilterValue() string { return i.title }

// Title implements list.Item interface
func (i item) Title() string { return i.title }

// Description implements list.Item interface
func (i item) Description() string { return i.desc }

// Initialize the model
func initialModel() Model {
	// Initialize spinner
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	// Initialize main menu items
	items := []list.Item{
		item{title: "Tank Floor", desc: "Fermenters and active batches"},
		item{title: "Keg Fleet", desc: "Track kegs by location and status"},
		item{title: "Stockroom", desc: "Raw-material inventory"},
		item{title: "Production Log", desc: "Audit trail of production actions"},
		item{title: "Exit", desc: "Exit the application"},
	}

	// Initialize main menu
	mainMenu := list.New(items, list.NewDefaultDelegate(), 0, 0)
	mainMenu.Title = "BrewJá Floor Terminal"

	tankTable := table.New(
		table.WithColumns([]table.Column{
			{Title: "Tank", Width: 8},
			{Title: "Status", Width: 14},
			{Title: "Recipe", Width: 18},
			{Title: "Volume", Width: 10},
			{Title: "SG", Width: 7},
			{Title: "Temp", Width: 7},
		}),
		table.WithFocused(true),
		table.WithHeight(8),
	)

	kegTable := table.New(
		table.WithColumns([]table.Column{
			{Title: "Keg", Width: 8},
			{Title: "Status", Width: 12},
			{Title: "Recipe", Width: 16},
			{Title: "Volume", Width: 8},
			{Title: "Location", Width: 22},
			{Title: "Dispatched", Width: 11},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	stockTable := table.New(
		table.WithColumns([]table.Column{
			{Title: "Material", Width: 22},
			{Title: "Type", Width: 9},
			{Title: "Quantity", Width: 10},
			{Title: "Unit", Width: 6},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	// Initialize history view
	historyList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	historyList.Title = "Production Log"

	// Initialize text input
	ti := textinput.New()
	ti.Placeholder = "Enter command..."
	ti.CharLimit = 156
	ti.Width = 40

	// Initialize API client
	client := NewApiClient()

	return Model{
		mainMenu:    mainMenu,
		tankView:    tankTable,
		kegView:     kegTable,
		stockView:   stockTable,
		historyList: historyList,
		spinner:     s,
		textInput:   ti,
		client:      client,
		currentView: "main",
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tea.EnterAltScreen)
}

// Update handles UI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.textInput.Focused() {
			switch msg.String() {
			case "enter":
				return m, m.submitInput()
			case "esc":
				m.textInput.Blur()
				m.textInput.SetValue("")
				m.status = ""
				return m, nil
			}
			var cmd tea.Cmd
			m.textInput, cmd = m.textInput.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "enter":
			if m.currentView == "main" {
				selected, ok := m.mainMenu.SelectedItem().(item)
				if ok {
					switch selected.title {
					case "Exit":
						return m, tea.Quit
					case "Tank Floor":
						m.currentView = "tanks"
						return m, fetchTanks(m.client)
					case "Keg Fleet":
						m.currentView = "kegs"
						return m, fetchKegs(m.client)
					case "Stockroom":
						m.currentView = "stock"
						return m, fetchMaterials(m.client)
					case "Production Log":
						m.currentView = "history"
						return m, fetchHistory(m.client)
					}
				}
			}
		case "esc":
			if m.currentView != "main" {
				m.currentView = "main"
				m.error = ""
				m.status = ""
			}
		case "r":
			switch m.currentView {
			case "tanks":
				return m, fetchTanks(m.client)
			case "kegs":
				return m, fetchKegs(m.client)
			case "stock":
				return m, fetchMaterials(m.client)
			case "history":
				return m, fetchHistory(m.client)
			}
		case "b":
			if m.currentView == "tanks" {
				m.status = "brew"
				m.textInput.Placeholder = "tank,recipe,volume (ex: FV-01,IPA,800)"
				m.textInput.SetValue("")
				m.textInput.Focus()
				return m, nil
			}
		case "d":
			if m.currentView == "kegs" {
				m.status = "dispatch"
				m.textInput.Placeholder = "keg,location (ex: K-001,Bar do Zé)"
				m.textInput.SetValue("")
				m.textInput.Focus()
				return m, nil
			}
		case "v":
			if m.currentView == "kegs" {
				m.status = "return"
				m.textInput.Placeholder = "keg,remaining liters (ex: K-001,0)"
				m.textInput.SetValue("")
				m.textInput.Focus()
				return m, nil
			}
		}
	case tanksMsg:
		m.tankView.SetRows(tankRows(msg.tanks))
		m.error = ""
		return m, nil
	case kegsMsg:
		m.kegView.SetRows(kegRows(msg.kegs))
		m.error = ""
		return m, nil
	case materialsMsg:
		m.stockView.SetRows(materialRows(msg.materials))
		m.error = ""
		return m, nil
	case historyMsg:
		m.historyList.SetItems(historyItems(msg.entries))
		m.error = ""
		return m, nil
	case errorMsg:
		m.error = msg.err
		return m, nil
	case confirmMsg:
		m.error = ""
		m.textInput.Blur()
		m.textInput.SetValue("")
		switch m.currentView {
		case "tanks":
			return m, fetchTanks(m.client)
		case "kegs":
			return m, fetchKegs(m.client)
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.currentView {
	case "main":
		m.mainMenu, cmd = m.mainMenu.Update(msg)
	case "tanks":
		m.tankView, cmd = m.tankView.Update(msg)
	case "kegs":
		m.kegView, cmd = m.kegView.Update(msg)
	case "stock":
		m.stockView, cmd = m.stockView.Update(msg)
	case "history":
		m.historyList, cmd = m.historyList.Update(msg)
	}

	return m, cmd
}

// submitInput parses the active command input and fires the API call
func (m Model) submitInput() tea.Cmd {
	input := m.textInput.Value()
	parts := strings.Split(input, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	switch m.status {
	case "brew":
		if len(parts) != 3 {
			return reportError("Format: tank,recipe,volume")
		}
		volume, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return reportError("Volume must be a number")
		}
		return startBatch(m.client, parts[0], parts[1], volume)
	case "dispatch":
		if len(parts) != 2 {
			return reportError("Format: keg,location")
		}
		return dispatchKeg(m.client, parts[0], parts[1])
	case "return":
		if len(parts) != 2 {
			return reportError("Format: keg,remaining liters")
		}
		remaining, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return reportError("Remaining volume must be a number")
		}
		return returnKeg(m.client, parts[0], remaining)
	}
	return nil
}

// View renders the UI
func (m Model) View() string {
	switch m.currentView {
	case "main":
		return docStyle.Render(m.mainMenu.View())
	case "tanks":
		help := "\nPress 'b' to start a brew, 'r' to refresh, 'esc' to go back\n"
		if m.textInput.Focused() {
			help = "\n" + m.textInput.View() + "\nPress 'enter' to confirm, 'esc' to cancel\n"
		}
		if m.error != "" {
			help += errorStyle.Render(m.error) + "\n"
		}
		return docStyle.Render(titleStyle.Render("Tank Floor") + "\n\n" + m.tankView.View() + help)
	case "kegs":
		help := "\nPress 'd' to dispatch, 'v' to return, 'r' to refresh, 'esc' to go back\n"
		if m.textInput.Focused() {
			help = "\n" + m.textInput.View() + "\nPress 'enter' to confirm, 'esc' to cancel\n"
		}
		if m.error != "" {
			help += errorStyle.Render(m.error) + "\n"
		}
		return docStyle.Render(titleStyle.Render("Keg Fleet") + "\n\n" + m.kegView.View() + help)
	case "stock":
		help := "\nPress 'r' to refresh, 'esc' to go back\n"
		if m.error != "" {
			help += errorStyle.Render(m.error) + "\n"
		}
		return docStyle.Render(titleStyle.Render("Stockroom") + "\n\n" + m.stockView.View() + help)
	case "history":
		help := "\nPress 'r' to refresh, 'esc' to go back\n"
		if m.error != "" {
			help += errorStyle.Render(m.error) + "\n"
		}
		return docStyle.Render(m.historyList.View() + help)
	default:
		return "Loading..."
	}
}

// Custom message types for the tea.Model
type tanksMsg struct {
	tanks []Tank
}

type kegsMsg struct {
	kegs []Keg
}

type materialsMsg struct {
	materials []RawMaterial
}

type historyMsg struct {
	entries []HistoryEntry
}

type errorMsg struct {
	err string
}

type confirmMsg struct {
	message string
}

// historyItem represents a log entry in the list
type historyItem struct {
	title string
	desc  string
}

func (i historyItem) Title() string       { return i.title }
func (i historyItem) Description() string { return i.desc }
func (i historyItem) FilterValue() string { return i.title }

func reportError(message string) tea.Cmd {
	return func() tea.Msg {
		return errorMsg{err: message}
	}
}

// fetchTanks retrieves the tank floor from the API
func fetchTanks(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		tanks, err := client.GetTanks()
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching tanks: %v", err)}
		}
		return tanksMsg{tanks: tanks}
	}
}

// fetchKegs retrieves the keg fleet from the API
func fetchKegs(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		kegs, err := client.GetKegs()
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching kegs: %v", err)}
		}
		return kegsMsg{kegs: kegs}
	}
}

// fetchMaterials retrieves the stockroom from the API
func fetchMaterials(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		materials, err := client.GetMaterials()
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching materials: %v", err)}
		}
		return materialsMsg{materials: materials}
	}
}

// fetchHistory retrieves the production log from the API
func fetchHistory(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		entries, err := client.GetHistory()
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching history: %v", err)}
		}
		return historyMsg{entries: entries}
	}
}

// startBatch begins a brew via the API
func startBatch(client *ApiClient, tankID, recipeName string, volume float64) tea.Cmd {
	return func() tea.Msg {
		if err := client.StartBatch(tankID, recipeName, volume); err != nil {
			return errorMsg{err: fmt.Sprintf("Error starting batch: %v", err)}
		}
		return confirmMsg{message: fmt.Sprintf("Batch started in %s", tankID)}
	}
}

// dispatchKeg moves a keg via the API
func dispatchKeg(client *ApiClient, kegID, location string) tea.Cmd {
	return func() tea.Msg {
		if err := client.DispatchKeg(kegID, location); err != nil {
			return errorMsg{err: fmt.Sprintf("Error dispatching keg: %v", err)}
		}
		return confirmMsg{message: fmt.Sprintf("Keg %s dispatched", kegID)}
	}
}

// returnKeg brings a keg back via the API
func returnKeg(client *ApiClient, kegID string, remaining float64) tea.Cmd {
	return func() tea.Msg {
		if err := client.ReturnKeg(kegID, remaining); err != nil {
			return errorMsg{err: fmt.Sprintf("Error returning keg: %v", err)}
		}
		return confirmMsg{message: fmt.Sprintf("Keg %s returned", kegID)}
	}
}

// tankRows converts API tanks to table rows
func tankRows(tanks []Tank) []table.Row {
	rows := make([]table.Row, len(tanks))
	for i, t := range tanks {
		recipe := t.RecipeName
		if recipe == "" {
			recipe = "-"
		}
		rows[i] = table.Row{
			t.TankID,
			t.Status,
			recipe,
			fmt.Sprintf("%.0f/%.0fL", t.Volume, t.Capacity),
			fmt.Sprintf("%.3f", t.CurrentGravity),
			fmt.Sprintf("%.1f°C", t.Temperature),
		}
	}
	return rows
}

// kegRows converts API kegs to table rows
func kegRows(kegs []Keg) []table.Row {
	rows := make([]table.Row, len(kegs))
	for i, k := range kegs {
		recipe := k.RecipeName
		if recipe == "" {
			recipe = "-"
		}
		location := k.Customer
		if location == "" {
			location = "-"
		}
		dispatched := k.DispatchDate
		if dispatched == "" {
			dispatched = "-"
		}
		rows[i] = table.Row{
			k.ID,
			k.Status,
			recipe,
			fmt.Sprintf("%.1fL", k.Volume),
			location,
			dispatched,
		}
	}
	return rows
}

// materialRows converts API materials to table rows
func materialRows(materials []RawMaterial) []table.Row {
	rows := make([]table.Row, len(materials))
	for i, m := range materials {
		rows[i] = table.Row{
			m.Name,
			m.Type,
			fmt.Sprintf("%.2f", m.Quantity),
			m.Unit,
		}
	}
	return rows
}

// historyItems converts API log entries to list items
func historyItems(entries []HistoryEntry) []list.Item {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = historyItem{
			title: fmt.Sprintf("%s - %s", e.ActionType, e.Details),
			desc:  fmt.Sprintf("%s | %s | %+.1fL", e.Date, e.TankID, e.VolumeChanged),
		}
	}
	return items
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v", err)
		os.Exit(1)
	}
}
