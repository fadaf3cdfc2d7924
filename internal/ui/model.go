package ui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	clog "github.com/charmbracelet/log"

	"vocadojo/internal/answer"
	"vocadojo/internal/deck"
	"vocadojo/internal/session"
)

type phase int

const (
	phaseAsk phase = iota
	phaseFeedback
	phaseDone
)

type reviewKeyMap struct {
	Submit key.Binding
	Next   key.Binding
	Quit   key.Binding
}

type submitMsg struct {
	answer session.Answer
	err    error
}

type Options struct {
	Deck    deck.Deck
	Entries []deck.Entry
	Runner  *session.Runner
	Debug   bool
}

// Model runs one review session over a planned queue of entries.
type Model struct {
	dk      deck.Deck
	entries []deck.Entry
	runner  *session.Runner

	theme  Theme
	keymap reviewKeyMap
	input  textinput.Model
	logger *clog.Logger

	phase    phase
	index    int
	askedAt  time.Time
	last     session.Answer
	verdicts []answer.Verdict
	err      error
	width    int
}

func New(opts Options) *Model {
	logger := clog.NewWithOptions(os.Stderr, clog.Options{Prefix: "vocadojo-ui", Level: clog.WarnLevel})
	if opts.Debug {
		logger.SetLevel(clog.DebugLevel)
	}

	ti := textinput.New()
	ti.Placeholder = "type your answer"
	ti.CharLimit = 256
	ti.Focus()

	return &Model{
		dk:      opts.Deck,
		entries: opts.Entries,
		runner:  opts.Runner,
		theme:   DefaultTheme(),
		keymap: reviewKeyMap{
			Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
			Next:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "next")),
			Quit:   key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
		},
		input:   ti,
		logger:  logger,
		askedAt: time.Now(),
		width:   80,
	}
}

func (m *Model) Init() tea.Cmd {
	if len(m.entries) == 0 {
		m.phase = phaseDone
		return nil
	}
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case submitMsg:
		if msg.err != nil {
			m.logger.Error("submit failed", "err", msg.err)
			m.err = msg.err
			m.phase = phaseDone
			return m, tea.Quit
		}
		m.last = msg.answer
		m.verdicts = append(m.verdicts, msg.answer.Verdict)
		m.phase = phaseFeedback
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.Quit) {
			m.phase = phaseDone
			return m, tea.Quit
		}
		switch m.phase {
		case phaseAsk:
			if key.Matches(msg, m.keymap.Submit) {
				return m, m.submitCmd(m.input.Value())
			}
		case phaseFeedback:
			if key.Matches(msg, m.keymap.Next) {
				return m, m.advance()
			}
			return m, nil
		case phaseDone:
			return m, tea.Quit
		}
	}

	if m.phase == phaseAsk {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) submitCmd(input string) tea.Cmd {
	entry := m.entries[m.index]
	elapsed := time.Since(m.askedAt)
	return func() tea.Msg {
		a, err := m.runner.Submit(context.Background(), m.dk, entry, input, elapsed)
		return submitMsg{answer: a, err: err}
	}
}

func (m *Model) advance() tea.Cmd {
	m.index++
	if m.index >= len(m.entries) {
		m.phase = phaseDone
		return tea.Quit
	}
	m.phase = phaseAsk
	m.input.SetValue("")
	m.askedAt = time.Now()
	return textinput.Blink
}

// Err reports a store failure that ended the session early.
func (m *Model) Err() error { return m.err }

func (m *Model) View() string {
	var b strings.Builder

	header := fmt.Sprintf("%s · %s", m.dk.Name, progressLabel(m.index, len(m.entries), m.phase == phaseDone))
	b.WriteString(m.theme.Header.Render(header))
	b.WriteString("\n\n")

	switch m.phase {
	case phaseAsk:
		entry := m.entries[m.index]
		prompt, _ := deck.PromptAndAnswer(entry)
		b.WriteString(m.theme.Prompt.Render(prompt))
		b.WriteString("\n\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(m.theme.Muted.Render("enter submit · esc quit"))

	case phaseFeedback:
		entry := m.entries[m.index]
		prompt, _ := deck.PromptAndAnswer(entry)
		b.WriteString(m.theme.Prompt.Render(prompt))
		b.WriteString("\n\n")
		b.WriteString(m.theme.Feedback.Render(m.feedbackBlock()))
		b.WriteString("\n\n")
		b.WriteString(m.theme.Muted.Render("enter next · esc quit"))

	case phaseDone:
		b.WriteString(m.theme.Summary.Render(summaryBlock(answer.Statistics(m.verdicts))))
		b.WriteString("\n")
		b.WriteString(m.theme.Muted.Render("press any key to exit"))
	}

	b.WriteString("\n")
	return b.String()
}

func (m *Model) feedbackBlock() string {
	v := m.last.Verdict
	p := m.last.Progress

	var lines []string
	lines = append(lines, m.tierStyle(v.Tier).Render(tierLabel(v.Tier)))
	if v.Feedback != "" {
		lines = append(lines, v.Feedback)
	}
	if v.Suggestion != "" {
		lines = append(lines, m.theme.Hint.Render(v.Suggestion))
	}
	sched := fmt.Sprintf("next in %s · streak %d", intervalLabel(p.Interval), p.Streak)
	if p.Mastered {
		sched += " · mastered"
	}
	lines = append(lines, m.theme.Muted.Render(sched))
	return strings.Join(lines, "\n")
}

func (m *Model) tierStyle(t answer.Tier) lipgloss.Style {
	switch t {
	case answer.TierExact, answer.TierAlternate:
		return m.theme.Pass
	case answer.TierFuzzy:
		return m.theme.Fuzzy
	case answer.TierPartial:
		return m.theme.Partial
	default:
		return m.theme.Fail
	}
}

func tierLabel(t answer.Tier) string {
	switch t {
	case answer.TierExact:
		return "Correct"
	case answer.TierAlternate:
		return "Correct (alternate)"
	case answer.TierFuzzy:
		return "Close enough"
	case answer.TierPartial:
		return "Almost"
	default:
		return "Incorrect"
	}
}

func progressLabel(index, total int, done bool) string {
	if total == 0 {
		return "nothing due"
	}
	if done {
		return fmt.Sprintf("%d reviewed", total)
	}
	return fmt.Sprintf("card %d of %d", index+1, total)
}

func intervalLabel(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

func summaryBlock(s answer.Stats) string {
	var b strings.Builder
	b.WriteString("Session complete\n\n")
	fmt.Fprintf(&b, "Reviewed   %d\n", s.Total)
	fmt.Fprintf(&b, "Correct    %d\n", s.Correct)
	fmt.Fprintf(&b, "Incorrect  %d\n", s.Incorrect)
	fmt.Fprintf(&b, "Accuracy   %.0f%%", s.Accuracy*100)
	return b.String()
}

// Run blocks until the session finishes or the user quits.
func Run(m *Model) error {
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return m.Err()
}
