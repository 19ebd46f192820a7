package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/waabox/clubinho/internal/domain"
)

// ChildListModel is an immutable Bubbletea-compatible model for the children panel.
type ChildListModel struct {
	children []domain.Child
	cursor   int
}

// NewChildListModel creates a child list model with the given children.
func NewChildListModel(children []domain.Child) ChildListModel {
	return ChildListModel{children: children}
}

// MoveDown returns a new model with the cursor moved down by one.
func (m ChildListModel) MoveDown() ChildListModel {
	if m.cursor < len(m.children)-1 {
		m.cursor++
	}
	return m
}

// MoveUp returns a new model with the cursor moved up by one.
func (m ChildListModel) MoveUp() ChildListModel {
	if m.cursor > 0 {
		m.cursor--
	}
	return m
}

// SelectedIndex returns the current cursor position.
func (m ChildListModel) SelectedIndex() int {
	return m.cursor
}

// SelectedChild returns the highlighted child, or the zero value for an empty list.
func (m ChildListModel) SelectedChild() domain.Child {
	if len(m.children) == 0 {
		return domain.Child{}
	}
	return m.children[m.cursor]
}

// Children returns the listed children.
func (m ChildListModel) Children() []domain.Child {
	return m.children
}

// View renders the list as a string.
func (m ChildListModel) View() string {
	if len(m.children) == 0 {
		return "Nenhuma criança encontrada."
	}
	var sb strings.Builder
	for i, c := range m.children {
		prefix := "  "
		if i == m.cursor {
			prefix = "> "
		}
		sb.WriteString(fmt.Sprintf("%s%-24s %-8s %s\n",
			prefix,
			truncate(c.Name, 24),
			formatAge(c.BirthDate, time.Now()),
			c.GuardianName,
		))
	}
	return sb.String()
}

// formatAge turns an ISO birth date into an age in years.
func formatAge(birthDate string, now time.Time) string {
	if len(birthDate) >= 10 {
		birthDate = birthDate[:10]
	}
	born, err := time.Parse(time.DateOnly, birthDate)
	if err != nil {
		return "--"
	}
	years := now.Year() - born.Year()
	if now.YearDay() < born.YearDay() {
		years--
	}
	if years == 1 {
		return "1 ano"
	}
	return fmt.Sprintf("%d anos", years)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
