package multiFilePicker

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gabriel-vasile/mimetype"

	"github.com/rescp17/taildropMenu/internal/style"
	"github.com/rescp17/taildropMenu/internal/util"
)

type mode int

// SelectedMsg carries the confirmed selection as file:// URIs, in the order
// the entries were picked. Directories are passed as-is.
type SelectedMsg struct {
	URIs []string
}

const (
	modeBrowse mode = iota
	modeInput
)

// pickerColumns lays out the listing. The first column holds the name.
var pickerColumns = []util.Column{
	{Title: "Name", Width: 36},
	{Title: "Last Modified", Width: 19},
	{Title: "Size", Width: 10},
	{Title: "Type", Width: 30},
}

// --- Key Map ---
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	Left         key.Binding // Page up
	Right        key.Binding // Page down
	Open         key.Binding
	Parent       key.Binding
	ToggleSelect key.Binding
	ToggleInput  key.Binding
	Confirm      key.Binding
	Quit         key.Binding
}

var DefaultKeyMap = KeyMap{
	Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "move up")),
	Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "move down")),
	Left:         key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "page up")),
	Right:        key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "page down")),
	Open:         key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open folder")),
	Parent:       key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "parent folder")),
	ToggleSelect: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle select")),
	ToggleInput:  key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "input path")),
	Confirm:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
	Quit:         key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc/ctrl+c", "quit/back")),
}

// --- Model ---
type Model struct {
	path     string
	lastPath string // For relative path resolution
	items    []fs.DirEntry
	selected []string // absolute paths, in pick order
	cursor   int
	keys     KeyMap
	quitting bool
	mode     mode
	input    textinput.Model
	inputErr error
	height   int
	offset   int
}

func InitialModel() Model {
	ti := textinput.New()
	ti.Placeholder = "path to a folder"
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 80
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))

	wd, err := os.Getwd()
	if err != nil {
		slog.Warn("Could not get working directory", "error", err)
		wd = ""
	}

	return Model{
		lastPath: wd,
		items:    []fs.DirEntry{},
		keys:     DefaultKeyMap,
		mode:     modeInput,
		input:    ti,
	}
}

// Selected returns the picked paths in pick order.
func (m Model) Selected() []string {
	return slices.Clone(m.selected)
}

// --- Bubble Tea Methods ---
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			if m.mode == modeInput && m.path != "" {
				m.mode = modeBrowse
				m.input.Blur()
				m.input.Reset()
				m.inputErr = nil
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit
		}

		switch m.mode {
		case modeBrowse:
			return m.updateBrowse(msg)
		case modeInput:
			return m.updateInput(msg)
		}
	}

	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ToggleInput):
		m.mode = modeInput
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			if m.cursor < m.offset {
				m.offset--
			}
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
			if m.cursor >= m.offset+m.visibleItems() {
				m.offset++
			}
		}

	case key.Matches(msg, m.keys.Right): // Page down
		if len(m.items) == 0 {
			break
		}
		visible := m.visibleItems()
		m.cursor = min(m.cursor+visible, len(m.items)-1)
		m.offset = max(min(m.offset+visible, len(m.items)-visible), 0)
		if m.cursor >= m.offset+visible {
			m.offset = m.cursor - visible + 1
		}

	case key.Matches(msg, m.keys.Left): // Page up
		visible := m.visibleItems()
		m.cursor = max(m.cursor-visible, 0)
		m.offset = max(m.offset-visible, 0)
		if m.cursor < m.offset {
			m.offset = m.cursor
		}

	case key.Matches(msg, m.keys.Open):
		if m.cursor < len(m.items) && m.items[m.cursor].IsDir() {
			if err := m.SetPath(filepath.Join(m.path, m.items[m.cursor].Name())); err != nil {
				m.inputErr = err
			}
		}

	case key.Matches(msg, m.keys.Parent):
		if parent := filepath.Dir(m.path); parent != m.path {
			if err := m.SetPath(parent); err != nil {
				m.inputErr = err
			}
		}

	case key.Matches(msg, m.keys.ToggleSelect):
		if m.cursor >= len(m.items) {
			break
		}
		path := filepath.Join(m.path, m.items[m.cursor].Name())
		if i := slices.Index(m.selected, path); i >= 0 {
			m.selected = slices.Delete(m.selected, i, i+1)
		} else {
			m.selected = append(m.selected, path)
		}

	case key.Matches(msg, m.keys.Confirm):
		if len(m.selected) > 0 {
			uris := selectedURIs(m.selected)
			return m, func() tea.Msg {
				return SelectedMsg{URIs: uris}
			}
		}
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Confirm) {
		path := strings.TrimSpace(m.input.Value())
		if !filepath.IsAbs(path) {
			path = filepath.Join(m.lastPath, path)
		}
		if err := m.SetPath(path); err != nil {
			m.inputErr = err
			return m, nil
		}
		m.input.Reset()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString("Enter a path to browse, or select files below. " + m.helpView() + "\n \n")
	s.WriteString(m.input.View())
	if m.inputErr != nil {
		s.WriteString("\n" + style.ErrorStyle.Render(m.inputErr.Error()))
	}
	s.WriteString("\n\n")

	if m.path == "" {
		return s.String()
	}

	s.WriteString(fmt.Sprintf("Browsing: %s  (%d selected)\n\n", m.path, len(m.selected)))

	// pad first, then style
	s.WriteString(style.HeaderStyle.Render(util.Cell("", 5)+" "+util.Header(pickerColumns)) + "\n\n")

	visible := m.visibleItems()
	start := max(m.offset, 0)
	end := min(start+visible, len(m.items))
	if start > end {
		start = end
	}

	for i, item := range m.items[start:end] {
		if m.cursor == start+i {
			s.WriteString(style.CursorStyle.String())
		} else {
			s.WriteString("  ")
		}

		path := filepath.Join(m.path, item.Name())
		if slices.Contains(m.selected, path) {
			s.WriteString(style.SelectedStyle.String())
		} else {
			s.WriteString(style.DeselectedStyle.String())
		}

		modTime, size, typeStr := "", "", ""
		if info, err := item.Info(); err == nil {
			modTime = info.ModTime().Format("2006-01-02 15:04:05")
			if info.IsDir() {
				size = "<DIR>"
			} else {
				size = util.HumanSize(info.Size())
			}
		}
		name := item.Name()
		if item.IsDir() {
			name += "/"
		} else if mime, err := mimetype.DetectFile(path); err == nil {
			typeStr = mime.String()
		}

		nameCell := util.Cell(name, pickerColumns[0].Width)
		if item.IsDir() {
			nameCell = style.DirStyle.Render(nameCell)
		}
		s.WriteString(nameCell + " " + util.Line(pickerColumns[1:], modTime, size, typeStr) + "\n\n")
	}

	if len(m.items) > visible {
		s.WriteString(fmt.Sprintf("\n... %d/%d ...\n", m.cursor+1, len(m.items)))
	}

	return s.String()
}

func (m Model) helpView() string {
	return style.HelpStyle.Render(
		fmt.Sprintf("'%s' select, '%s' open, '%s' up, '%s' type a path, '%s' confirm, '%s' quit",
			m.keys.ToggleSelect.Help().Key, m.keys.Open.Help().Key, m.keys.Parent.Help().Key,
			m.keys.ToggleInput.Help().Key, m.keys.Confirm.Help().Key, m.keys.Quit.Help().Key),
	)
}

func selectedURIs(paths []string) []string {
	uris := make([]string, 0, len(paths))
	for _, path := range paths {
		uri, err := util.PathToFileURI(path)
		if err != nil {
			slog.Warn("Skipping selection", "path", path, "error", err)
			continue
		}
		uris = append(uris, uri)
	}
	return uris
}

// SetPath switches the listing to path. The selection is kept, so files
// from several folders can be sent together.
func (m *Model) SetPath(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("path does not exist: %s", absPath)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", absPath)
	}
	items, err := os.ReadDir(absPath)
	if err != nil {
		return fmt.Errorf("could not read directory: %w", err)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Name() < items[j].Name()
	})

	m.path = absPath
	m.lastPath = absPath
	m.items = items
	m.cursor = 0
	m.offset = 0
	m.inputErr = nil
	m.mode = modeBrowse
	m.input.Blur()
	return nil
}

func (m *Model) visibleItems() int {
	headerHeight := 8
	if m.inputErr != nil {
		headerHeight++
	}
	// two lines per entry
	visible := (m.height - headerHeight) / 2
	if visible < 1 {
		visible = 8
	}
	return visible
}
