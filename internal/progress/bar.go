// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"io"
	"os"
	"strconv"
	"sync"
	"time"

	bubblesprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const (
	defaultWidth = 80
	minBarWidth  = 10
)

type positionMsg int64

type finishMsg struct{}

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	countStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
)

// model is the bubbletea model behind Bar. It never reads the clock in View.
type model struct {
	total    int64
	pos      int64
	start    time.Time
	now      time.Time
	width    int
	bar      bubblesprogress.Model
	spinner  spinner.Model
	finished bool
	clock    func() time.Time
}

func newModel(total int64, width int, clock func() time.Time) model {
	bar := bubblesprogress.New(bubblesprogress.WithoutPercentage())
	bar.Full = '#'
	bar.Empty = '-'
	bar.FullColor = "6"
	bar.EmptyColor = "4"

	start := clock()

	return model{
		total:   total,
		start:   start,
		now:     start,
		width:   width,
		bar:     bar,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		clock:   clock,
	}
}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.now = m.clock()

	switch msg := msg.(type) {
	case positionMsg:
		m.pos = int64(msg)
		return m, nil

	case finishMsg:
		m.finished = true
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.finished {
			return m, nil
		}

		var cmd tea.Cmd

		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m model) View() string {
	elapsed := m.now.Sub(m.start)

	left := m.spinner.View() + " [" + formatElapsed(elapsed) + "] ["
	right := "] " + countStyle.Render(strconv.FormatInt(m.pos, 10)+"/"+strconv.FormatInt(m.total, 10)) +
		" (" + formatETA(ETA(elapsed, m.pos, m.total)) + ")"

	m.bar.Width = max(m.width-lipgloss.Width(left)-lipgloss.Width(right), minBarWidth)

	ratio := 1.0
	if m.total > 0 {
		ratio = min(float64(m.pos)/float64(m.total), 1)
	}

	return left + m.bar.ViewAs(ratio) + right
}

// Bar is an interactive Display. It does not read input and installs no
// signal handlers, so interrupts reach the caller's own handler.
type Bar struct {
	program *tea.Program
	exited  chan struct{}
	once    sync.Once
}

// NewBar starts rendering a bar for total runs on w.
func NewBar(total int64, w io.Writer) *Bar {
	m := newModel(total, terminalWidth(w), time.Now)

	b := &Bar{
		program: tea.NewProgram(m,
			tea.WithOutput(w),
			tea.WithInput(nil),
			tea.WithoutSignalHandler(),
		),
		exited: make(chan struct{}),
	}

	go func() {
		defer close(b.exited)

		_, _ = b.program.Run()
	}()

	return b
}

// SetPosition implements Display.
func (b *Bar) SetPosition(n int64) {
	b.program.Send(positionMsg(n))
}

// Finish draws the final frame and waits for the program to exit.
func (b *Bar) Finish() {
	b.once.Do(func() {
		b.program.Send(finishMsg{})
		<-b.exited
	})
}

// IsTerminal reports whether w is a terminal a Bar can draw on.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return defaultWidth
	}

	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}

	return width
}
