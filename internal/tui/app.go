package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/waabox/clubinho/internal/clubinho"
	"github.com/waabox/clubinho/internal/domain"
	"github.com/waabox/clubinho/internal/events"
	"github.com/waabox/clubinho/internal/route"
)

// Locations served by the console besides the login and access-denied routes.
const (
	DashboardPath = route.Home
	ChildrenPath  = "/criancas"
)

// AdminAPI is the subset of the admin API the console reads.
type AdminAPI interface {
	Dashboard(ctx context.Context) (domain.DashboardStats, error)
	ListChildren(ctx context.Context, f clubinho.ChildFilter) ([]domain.Child, error)
}

// Navigator moves the console between locations and reports location changes
// coming from elsewhere (the session client redirecting to login).
type Navigator interface {
	Location() string
	Navigate(path string)
	Changes() <-chan string
}

// DashboardLoadedMsg is sent when the dashboard counters have been fetched.
// It is exported so that tests can inject it directly into AppModel.Update.
type DashboardLoadedMsg struct {
	Stats domain.DashboardStats
	Err   error
}

// ChildrenLoadedMsg is sent when the children list has been fetched.
type ChildrenLoadedMsg struct {
	Children []domain.Child
	Err      error
}

// ToastMsg carries a toast published by the session client.
type ToastMsg struct {
	Toast domain.Toast
}

// APIErrorMsg carries a classified error published by the session client.
type APIErrorMsg struct {
	Error domain.ClassifiedError
}

// RouteChangedMsg is sent when the navigator moved to Path.
type RouteChangedMsg struct {
	Path string
}

// tickMsg is sent by the auto-refresh ticker.
type tickMsg struct{}

const refreshInterval = 30 * time.Second

// AppModel is the root Bubbletea model for the admin console.
type AppModel struct {
	api  AdminAPI
	nav  Navigator
	feed <-chan any

	location string
	stats    domain.DashboardStats
	children ChildListModel
	toasts   ToastStack
	lastErr  *domain.ClassifiedError

	loading bool
	err     error
	width   int
}

// NewAppModel creates the root application model. feed carries the values
// published by an events.Channel and may be nil.
func NewAppModel(api AdminAPI, nav Navigator, feed <-chan any) AppModel {
	return AppModel{
		api:      api,
		nav:      nav,
		feed:     feed,
		location: nav.Location(),
		children: NewChildListModel(nil),
		loading:  true,
	}
}

// Init loads the current page and starts listening for events.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.load(), m.waitForEvent(), m.waitForRoute(), tickEvery(refreshInterval))
}

func (m AppModel) load() tea.Cmd {
	switch m.location {
	case DashboardPath:
		return m.loadDashboard()
	case ChildrenPath:
		return m.loadChildren()
	default:
		return nil
	}
}

func (m AppModel) loadDashboard() tea.Cmd {
	return func() tea.Msg {
		stats, err := m.api.Dashboard(context.Background())
		return DashboardLoadedMsg{Stats: stats, Err: err}
	}
}

func (m AppModel) loadChildren() tea.Cmd {
	return func() tea.Msg {
		children, err := m.api.ListChildren(context.Background(), clubinho.ChildFilter{Limit: 50})
		return ChildrenLoadedMsg{Children: children, Err: err}
	}
}

// waitForEvent turns the next bus notification into a message.
func (m AppModel) waitForEvent() tea.Cmd {
	if m.feed == nil {
		return nil
	}
	ch := m.feed
	return func() tea.Msg {
		for v := range ch {
			switch e := v.(type) {
			case events.ToastRequested:
				return ToastMsg{Toast: e.Toast}
			case events.APIErrorObserved:
				return APIErrorMsg{Error: e.Error}
			}
		}
		return nil
	}
}

func (m AppModel) waitForRoute() tea.Cmd {
	ch := m.nav.Changes()
	return func() tea.Msg {
		path, ok := <-ch
		if !ok {
			return nil
		}
		return RouteChangedMsg{Path: path}
	}
}

func tickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return tickMsg{}
	})
}

// Update handles all incoming messages and key events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case DashboardLoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.stats = msg.Stats
		}

	case ChildrenLoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.children = NewChildListModel(msg.Children)
		}

	case ToastMsg:
		var cmd tea.Cmd
		m.toasts, cmd = m.toasts.Push(msg.Toast)
		return m, tea.Batch(cmd, m.waitForEvent())

	case APIErrorMsg:
		e := msg.Error
		m.lastErr = &e
		return m, m.waitForEvent()

	case toastExpiredMsg:
		m.toasts = m.toasts.Expire(msg.id)

	case RouteChangedMsg:
		m.location = msg.Path
		m.err = nil
		cmd := m.load()
		m.loading = cmd != nil
		return m, tea.Batch(cmd, m.waitForRoute())

	case tickMsg:
		return m, tea.Batch(m.load(), tickEvery(refreshInterval))

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "ctrl+r":
			cmd := m.load()
			m.loading = cmd != nil
			return m, cmd
		case "1":
			return m.navigate(DashboardPath)
		case "2":
			return m.navigate(ChildrenPath)
		}
		if m.location == ChildrenPath {
			switch msg.String() {
			case "down":
				m.children = m.children.MoveDown()
			case "up":
				m.children = m.children.MoveUp()
			}
		}
	}
	return m, nil
}

// navigate moves to path right away; the router's change notification that
// follows is a no-op reload of the same page.
func (m AppModel) navigate(path string) (tea.Model, tea.Cmd) {
	if m.location == route.Login {
		return m, nil
	}
	m.nav.Navigate(path)
	m.location = path
	m.err = nil
	cmd := m.load()
	m.loading = cmd != nil
	return m, cmd
}

// View renders the full TUI.
func (m AppModel) View() string {
	header := fmt.Sprintf(" clubinho admin | %s\n", m.title())
	separator := "────────────────────────────────────────────────────────────\n"
	body := m.renderBody()
	footer := " 1: painel   2: crianças   ctrl+r: atualizar   q: sair\n"
	if m.location == ChildrenPath {
		footer = " ↑/↓: navegar   1: painel   2: crianças   ctrl+r: atualizar   q: sair\n"
	}
	status := ""
	if m.lastErr != nil {
		status = fmt.Sprintf(" último erro: %s %s\n", m.lastErr.Category, m.lastErr.Code)
	}
	return header + separator + body + "\n" + separator + m.toasts.View() + status + footer
}

func (m AppModel) title() string {
	switch m.location {
	case DashboardPath:
		return "Painel"
	case ChildrenPath:
		return "Crianças"
	case route.Login:
		return "Login"
	case route.AccessDenied:
		return "Acesso negado"
	default:
		return m.location
	}
}

func (m AppModel) renderBody() string {
	switch m.location {
	case route.Login:
		return " Sua sessão terminou.\n\n Execute 'clubinho login' e abra o console novamente.\n"
	case route.AccessDenied:
		return " Você não tem permissão para acessar esta página.\n\n Pressione 1 para voltar ao painel.\n"
	}
	if m.loading {
		return " Carregando...\n"
	}
	if m.err != nil {
		return fmt.Sprintf(" Erro: %v\n\n Pressione 'ctrl+r' para tentar novamente.\n", m.err)
	}
	switch m.location {
	case DashboardPath:
		return fmt.Sprintf(
			" Crianças:        %d\n"+
				" Clubes:          %d\n"+
				" Professores:     %d\n"+
				" Pagelas semana:  %d\n"+
				" Frequência:      %.0f%%\n",
			m.stats.TotalChildren, m.stats.TotalClubs, m.stats.TotalTeachers,
			m.stats.PagelasThisWeek, m.stats.AttendanceRate*100)
	case ChildrenPath:
		return m.children.View()
	default:
		return fmt.Sprintf(" Página desconhecida: %s\n", m.location)
	}
}

// Run starts the Bubbletea program and blocks until the user quits.
func Run(api AdminAPI, nav Navigator, feed <-chan any) error {
	p := tea.NewProgram(NewAppModel(api, nav, feed), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running console: %w", err)
	}
	return nil
}
