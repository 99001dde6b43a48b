package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cory-johannsen/wildlands/internal/game/combat"
	"github.com/cory-johannsen/wildlands/internal/game/crafting"
	"github.com/cory-johannsen/wildlands/internal/game/session"
	"github.com/cory-johannsen/wildlands/internal/gameserver"
)

const (
	frameInterval = 100 * time.Millisecond
	mapCols       = 48
	mapRows       = 14
	textWidth     = 64
	textHeight    = 8
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#3A5F0B")).
			Bold(true).
			PaddingLeft(1).
			PaddingRight(1)

	flashStyle = headerStyle.
			Background(lipgloss.Color("#FFD700")).
			Foreground(lipgloss.Color("#000000"))

	mapStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6B8E23"))

	textStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#888888")).
			PaddingLeft(1).
			PaddingRight(1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F"))
)

type mode int

const (
	modeExplore mode = iota
	modeInventory
	modeRecipes
	modeInvent
)

type frameMsg time.Time

func frame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// Model is the bubbletea model of a play session.
type Model struct {
	game   *gameserver.Game
	scene  *Scene
	keys   keyMap
	help   help.Model
	text   viewport.Model
	mode   mode
	picks  []string
	status string
}

// NewModel returns a model rendering g through sc.
//
// Precondition: sc must be the scene g was created with.
func NewModel(g *gameserver.Game, sc *Scene) Model {
	return Model{
		game:  g,
		scene: sc,
		keys:  defaultKeyMap(),
		help:  help.New(),
		text:  viewport.New(textWidth, textHeight),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return frame()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.text.Width = min(textWidth, max(20, msg.Width-4))
		return m, nil
	case frameMsg:
		return m, frame()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) report(err error) {
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = ""
}

func digit(msg tea.KeyMsg) int {
	s := msg.String()
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return -1
	}
	return int(s[0] - '1')
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	v := m.game.View()
	if v.Battle != nil {
		m.battleKey(msg, v)
		return m, nil
	}
	if v.Screen == session.ScreenChoices && key.Matches(msg, m.keys.Pick) {
		m.report(m.game.Choose(digit(msg)))
		return m, nil
	}
	if key.Matches(msg, m.keys.Cancel) {
		switch {
		case m.mode != modeExplore:
			m.mode = modeExplore
			m.picks = nil
		case v.CampPending:
			m.report(m.game.CancelCamp())
		}
		return m, nil
	}
	if m.mode != modeExplore && key.Matches(msg, m.keys.Pick) {
		m.pick(digit(msg), v)
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.game.Continue()
	case key.Matches(msg, m.keys.Up):
		m.game.Move(combat.Up)
	case key.Matches(msg, m.keys.Down):
		m.game.Move(combat.Down)
	case key.Matches(msg, m.keys.Left):
		m.game.Move(combat.Left)
	case key.Matches(msg, m.keys.Right):
		m.game.Move(combat.Right)
	case key.Matches(msg, m.keys.Swing):
		_, err := m.game.Swing()
		m.report(err)
	case key.Matches(msg, m.keys.Interact):
		m.report(m.game.Interact())
	case key.Matches(msg, m.keys.Battle):
		_, err := m.game.StartBattle()
		m.report(err)
	case key.Matches(msg, m.keys.Camp):
		m.report(m.game.Camp())
	case key.Matches(msg, m.keys.Inventory):
		m.toggle(modeInventory)
	case key.Matches(msg, m.keys.Recipes):
		m.toggle(modeRecipes)
	case key.Matches(msg, m.keys.Invent):
		m.toggle(modeInvent)
	}
	return m, nil
}

func (m *Model) toggle(to mode) {
	m.picks = nil
	if m.mode == to {
		m.mode = modeExplore
		return
	}
	m.mode = to
}

func (m *Model) battleKey(msg tea.KeyMsg, v gameserver.View) {
	var a combat.Action
	switch digit(msg) {
	case 0:
		a.Kind = combat.ActionAttack
	case 1:
		a.Kind = combat.ActionDefend
	case 2:
		a.Kind = combat.ActionItem
		if len(v.Battle.Healing) > 0 {
			a.Item = v.Battle.Healing[0].Name
		}
	case 3:
		a.Kind = combat.ActionFlee
	default:
		return
	}
	_, err := m.game.BattleAction(a)
	m.report(err)
}

func (m *Model) pick(idx int, v gameserver.View) {
	switch m.mode {
	case modeInventory:
		if idx < 0 || idx >= len(v.Inventory) {
			return
		}
		name := v.Inventory[idx].Name
		if m.game.Unequip(name) {
			m.status = "Unequipped " + name + "."
			return
		}
		_, err := m.game.UseItem(name)
		if errors.Is(err, gameserver.ErrNotConsumable) {
			err = m.game.Equip(name)
			if err == nil {
				m.status = "Equipped " + name + "."
				return
			}
		}
		m.report(err)
	case modeRecipes:
		recipes := m.game.Recipes().Recipes
		if idx < 0 || idx >= len(recipes) {
			return
		}
		_, err := m.game.Craft(recipes[idx].Result)
		m.report(err)
	case modeInvent:
		if idx < 0 || idx >= len(v.Inventory) {
			return
		}
		m.picks = append(m.picks, v.Inventory[idx].Name)
		if len(m.picks) < crafting.InventionSize {
			return
		}
		_, err := m.game.Invent(m.picks)
		m.report(err)
		m.picks = nil
		m.mode = modeExplore
	}
}

// View implements tea.Model.
func (m Model) View() string {
	v := m.game.View()
	f := m.scene.Frame()

	sections := []string{m.renderHeader(v, f.Flashing), mapStyle.Render(renderMap(v, f.Shaking))}
	if v.Battle != nil {
		sections = append(sections, renderBattle(v))
	}
	if f.Visible && f.Text != "" {
		vp := m.text
		vp.SetContent(lipgloss.NewStyle().Width(vp.Width).Render(f.Text))
		sections = append(sections, textStyle.Render(vp.View()))
	}
	if len(v.Choices) > 0 {
		sections = append(sections, renderChoices(v))
	}
	if m.mode != modeExplore {
		sections = append(sections, m.renderPanel(v))
	}
	if v.NearMarker && v.Screen == session.ScreenNone {
		sections = append(sections, dimStyle.Render("Something glints nearby. Press e to investigate."))
	}
	for _, n := range f.Notices {
		sections = append(sections, dimStyle.Render(n))
	}
	if m.status != "" {
		sections = append(sections, warnStyle.Render(m.status))
	}
	sections = append(sections, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader(v gameserver.View, flashing bool) string {
	p := v.Stats
	line := fmt.Sprintf("HP %d  STA %d  HUN %d  THI %d | Lv %d  EXP %d/%d | OROMOZI %d | %s %s | %s",
		p.Health, p.Stamina, p.Hunger, p.Thirst, p.Level, p.Experience, v.NextLevel, p.Oromozi,
		v.Hour, v.Hour.TimeOfDay(), v.Zone)
	if flashing {
		return flashStyle.Render(line)
	}
	return headerStyle.Render(line)
}

func cell(x, y, w, h float64) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	c := int(x / w * float64(mapCols-1))
	r := int(y / h * float64(mapRows-1))
	return min(max(c, 0), mapCols-1), min(max(r, 0), mapRows-1)
}

func renderMap(v gameserver.View, shaking bool) string {
	grid := make([][]rune, mapRows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(".", mapCols))
	}
	put := func(pos combat.Vec, ch rune) {
		c, r := cell(pos.X, pos.Y, v.Width, v.Height)
		grid[r][c] = ch
	}
	for _, p := range v.Markers {
		put(p, '!')
	}
	for _, p := range v.Crates {
		put(p, '#')
	}
	for _, mv := range v.Monsters {
		ch := 'm'
		if mv.State != combat.MonsterIdle {
			ch = 'M'
		}
		put(mv.Pos, ch)
	}
	put(v.Pos, '@')

	rows := make([]string, mapRows)
	for r, row := range grid {
		rows[r] = string(row)
		if shaking && r%2 == 0 {
			rows[r] = " " + rows[r][:mapCols-1]
		}
	}
	return strings.Join(rows, "\n")
}

func renderBattle(v gameserver.View) string {
	b := v.Battle
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("%s (Lv %d)  HP %d/%d", b.Enemy.Name, b.Enemy.Level, b.Enemy.Health, b.Enemy.MaxHealth)))
	sb.WriteString(fmt.Sprintf("\nTurn %d, %s\n", b.Turn, b.State))
	for _, l := range b.Log {
		sb.WriteString("  " + l + "\n")
	}
	sb.WriteString("1 Attack  2 Defend  3 Item  4 Flee")
	return textStyle.Render(sb.String())
}

func renderChoices(v gameserver.View) string {
	lines := make([]string, len(v.Choices))
	for i, c := range v.Choices {
		lines[i] = fmt.Sprintf("%d. %s", i+1, c.Label)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderPanel(v gameserver.View) string {
	var title string
	var lines []string
	switch m.mode {
	case modeInventory:
		title = "INVENTORY (pick to use or equip)"
		for i, l := range v.Inventory {
			mark := ""
			for _, e := range v.Equipped {
				if e == l.Name {
					mark = " [equipped]"
				}
			}
			lines = append(lines, fmt.Sprintf("%d. %s x%d%s", i+1, l.Name, l.Quantity, mark))
		}
	case modeRecipes:
		title = "RECIPES"
		for i, r := range m.game.Recipes().Recipes {
			lines = append(lines, fmt.Sprintf("%d. %s (%s)", i+1, r.Result, strings.Join(r.Ingredients, ", ")))
		}
	case modeInvent:
		title = fmt.Sprintf("INVENT (pick %d items)", crafting.InventionSize)
		if len(m.picks) > 0 {
			title += ": " + strings.Join(m.picks, " + ")
		}
		for i, l := range v.Inventory {
			lines = append(lines, fmt.Sprintf("%d. %s x%d", i+1, l.Name, l.Quantity))
		}
	}
	if len(lines) == 0 {
		lines = append(lines, dimStyle.Render("(empty)"))
	}
	return titleStyle.Render(title) + "\n" + strings.Join(lines, "\n")
}
