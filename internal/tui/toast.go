package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/waabox/clubinho/internal/domain"
)

// maxToasts bounds how many notifications are on screen at once.
const maxToasts = 3

var toastStyles = map[domain.ToastVariant]lipgloss.Style{
	domain.ToastDefault: lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()),
	domain.ToastError:   lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("9")).Foreground(lipgloss.Color("9")),
	domain.ToastWarning: lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("11")).Foreground(lipgloss.Color("11")),
	domain.ToastInfo:    lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("12")).Foreground(lipgloss.Color("12")),
	domain.ToastSuccess: lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("10")).Foreground(lipgloss.Color("10")),
}

// toastExpiredMsg removes the toast with the given id.
type toastExpiredMsg struct {
	id int
}

type toastItem struct {
	id    int
	toast domain.Toast
}

// ToastStack is an immutable list of visible toasts, newest last.
type ToastStack struct {
	items  []toastItem
	nextID int
}

// Push returns a stack with t added and the command that expires it.
func (s ToastStack) Push(t domain.Toast) (ToastStack, tea.Cmd) {
	id := s.nextID
	s.nextID++
	items := append([]toastItem(nil), s.items...)
	items = append(items, toastItem{id: id, toast: t})
	if len(items) > maxToasts {
		items = items[len(items)-maxToasts:]
	}
	s.items = items

	d := t.AutoHideDuration
	if d <= 0 {
		d = 5 * time.Second
	}
	return s, tea.Tick(d, func(time.Time) tea.Msg { return toastExpiredMsg{id: id} })
}

// Expire returns a stack without the toast id.
func (s ToastStack) Expire(id int) ToastStack {
	items := make([]toastItem, 0, len(s.items))
	for _, it := range s.items {
		if it.id != id {
			items = append(items, it)
		}
	}
	s.items = items
	return s
}

// Toasts returns the visible toasts, oldest first.
func (s ToastStack) Toasts() []domain.Toast {
	out := make([]domain.Toast, len(s.items))
	for i, it := range s.items {
		out[i] = it.toast
	}
	return out
}

// View renders the stack, or an empty string when nothing is shown.
func (s ToastStack) View() string {
	if len(s.items) == 0 {
		return ""
	}
	rendered := make([]string, len(s.items))
	for i, it := range s.items {
		style, ok := toastStyles[it.toast.Variant]
		if !ok {
			style = toastStyles[domain.ToastDefault]
		}
		rendered[i] = style.Render(it.toast.Message)
	}
	return strings.Join(rendered, "\n") + "\n"
}
