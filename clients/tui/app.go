// Package tui provides the terminal studio: the demo controller rendered
// with bubbletea, input handled by bubbles, and clips simulated.
package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/graphybook/studio/clients/tui/atoms"
	"github.com/graphybook/studio/clients/tui/components"
	"github.com/graphybook/studio/internal/clock"
	"github.com/graphybook/studio/internal/demo"
	"github.com/graphybook/studio/internal/media"
)

var ErrNoLibrary = errors.New("no media library configured")

// Options configures the terminal studio.
type Options struct {
	// Demo carries the script and timing. NewApp fills in View, Player
	// and Clock.
	Demo        demo.Options
	Clock       clock.Clock
	Library     *media.Library
	DownloadDir string
	ClipLength  time.Duration
}

// App is the root bubbletea model of the terminal studio.
// Architecture: HEADER | STATUS | INPUT + MEDIA | PROGRESS | FOOTER
type App struct {
	ctrl        *demo.Controller
	player      *ClipPlayer
	lib         *media.Library
	downloadDir string
	log         *slog.Logger

	// Components
	keys     keyMap
	help     help.Model
	prompt   textarea.Model
	code     textarea.Model
	progress progress.Model
	clipBar  progress.Model
	spinner  atoms.Spinner

	// Controller state as last pushed
	mode       demo.Mode
	status     demo.Status
	percent    int
	media      *demo.MediaInfo
	triggers   map[demo.Trigger]bool
	fullscreen bool

	// Local UI state
	notice    string
	noticeErr bool
	showHelp  bool
	width     int
	height    int
	quitting  bool
}

// NewApp builds the model and its controller.
func NewApp(opts Options) (*App, error) {
	if opts.Clock == nil {
		return nil, demo.ErrNoClock
	}
	log := opts.Demo.Logger
	if log == nil {
		log = slog.Default()
	}

	a := &App{
		lib:         opts.Library,
		downloadDir: opts.DownloadDir,
		log:         log,
		keys:        newKeyMap(),
		help:        help.New(),
		prompt:      newTextarea("Describe the physics concept to animate..."),
		code:        newTextarea("from manim import *"),
		progress:    progress.New(progress.WithGradient(components.ColorPrimary, components.ColorSecondary), progress.WithoutPercentage()),
		clipBar:     progress.New(progress.WithSolidFill(components.ColorAccent), progress.WithoutPercentage()),
		spinner:     atoms.NewSpinner(components.Warning),
		triggers:    make(map[demo.Trigger]bool),
	}
	if a.downloadDir == "" {
		a.downloadDir = "."
	}
	a.code.ShowLineNumbers = true
	a.player = NewClipPlayer(opts.Clock, opts.Library, opts.ClipLength)

	dopts := opts.Demo
	dopts.View = a
	dopts.Player = a.player
	dopts.Clock = opts.Clock
	dopts.Logger = log
	ctrl, err := demo.New(dopts)
	if err != nil {
		return nil, err
	}
	a.ctrl = ctrl
	a.player.OnEnded(ctrl.MediaEnded)
	a.resize(80, 24)
	return a, nil
}

func newTextarea(placeholder string) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(6)
	return ta
}

// Init starts the autoplay sequencer and the spinner ticks.
func (a *App) Init() tea.Cmd {
	a.ctrl.Start()
	return tea.Batch(a.spinner.Init(), textarea.Blink)
}

// Update handles messages and updates state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case timerFiredMsg:
		msg.timer.fire(msg.fn)
		return a, nil

	case downloadDoneMsg:
		if msg.err != nil {
			a.setNotice(fmt.Sprintf("Download failed: %v", msg.err), true)
		} else {
			a.setNotice("Saved "+msg.path, false)
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.spinner, cmd = a.spinner.Update(msg)
	cmds = append(cmds, cmd)

	// Cursor blink and other textarea messages.
	ta := a.activeField()
	*ta, cmd = ta.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Quit) {
		a.quitting = true
		return a, tea.Quit
	}
	if a.showHelp {
		if key.Matches(msg, a.keys.Help) || msg.Type == tea.KeyEsc {
			a.showHelp = false
		}
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Help):
		a.showHelp = true
		return a, nil

	case key.Matches(msg, a.keys.SwitchMode):
		next := demo.ModeCode
		if a.mode == demo.ModeCode {
			next = demo.ModePrompt
		}
		if err := a.ctrl.SwitchMode(next); err != nil {
			a.setNotice(err.Error(), true)
		}
		return a, nil

	case key.Matches(msg, a.keys.Generate):
		a.ctrl.Generate()
		return a, nil

	case key.Matches(msg, a.keys.Execute):
		a.ctrl.Execute()
		return a, nil

	case key.Matches(msg, a.keys.Fullscreen):
		a.ctrl.ToggleFullscreen()
		return a, nil

	case key.Matches(msg, a.keys.Download):
		return a, a.download()
	}

	if a.fullscreen {
		if msg.Type == tea.KeyEsc {
			a.ctrl.ToggleFullscreen()
		}
		return a, nil
	}

	ta := a.activeField()
	before := ta.Value()
	var cmd tea.Cmd
	*ta, cmd = ta.Update(msg)
	if after := ta.Value(); after != before {
		if a.mode == demo.ModeCode {
			a.ctrl.SetCodeText(after)
		} else {
			a.ctrl.SetPromptText(after)
		}
	}
	return a, cmd
}

func (a *App) activeField() *textarea.Model {
	if a.mode == demo.ModeCode {
		return &a.code
	}
	return &a.prompt
}

// download exports the loaded clip off the Update loop.
func (a *App) download() tea.Cmd {
	req, ok := a.ctrl.Download()
	if !ok {
		a.setNotice("Nothing to download yet", false)
		return nil
	}
	if a.lib == nil {
		a.setNotice(ErrNoLibrary.Error(), true)
		return nil
	}
	lib, dir := a.lib, a.downloadDir
	return func() tea.Msg {
		path, err := lib.Export(req.Ref, dir, req.Filename)
		return downloadDoneMsg{path: path, err: err}
	}
}

func (a *App) setNotice(text string, isErr bool) {
	a.notice = text
	a.noticeErr = isErr
	if isErr {
		a.log.Warn("studio notice", "message", text)
	}
}

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height
	a.help.Width = width

	inner := width - 4
	if a.twoColumns() {
		inner = width/2 - 4
	}
	inner = max(inner, 10)
	a.prompt.SetWidth(inner)
	a.code.SetWidth(inner)
	a.progress.Width = max(width-4, 10)
	a.clipBar.Width = inner
}

func (a *App) twoColumns() bool { return a.width >= 100 }

// View renders the full TUI layout.
func (a *App) View() string {
	if a.quitting {
		return ""
	}
	if a.showHelp {
		return components.PanelStyle.Width(a.width - 2).Render(components.RenderMarkdown(helpText, a.width-6))
	}
	if a.fullscreen && a.media != nil {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
			a.renderMedia(a.width-4), lipgloss.WithWhitespaceChars(" "))
	}

	var b strings.Builder
	b.WriteString(a.renderHeader())
	b.WriteString("\n")
	b.WriteString(a.renderStatus())
	b.WriteString("\n")

	if a.twoColumns() {
		half := a.width/2 - 1
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, a.renderInput(half), a.renderMedia(half)))
	} else {
		b.WriteString(a.renderInput(a.width - 2))
		b.WriteString("\n")
		b.WriteString(a.renderMedia(a.width - 2))
	}
	b.WriteString("\n ")
	b.WriteString(a.progress.ViewAs(float64(a.percent) / 100))
	b.WriteString(fmt.Sprintf(" %3d%%\n", a.percent))

	if a.notice != "" {
		style := components.NoticeStyle
		if a.noticeErr {
			style = components.ErrorStyle
		}
		b.WriteString(" " + style.Render(a.notice) + "\n")
	}
	b.WriteString(" " + a.help.View(a.keys))
	return b.String()
}

func (a *App) renderHeader() string {
	tab := func(label string, active bool) string {
		if active {
			return components.ActiveTabStyle.Render(label)
		}
		return components.TabStyle.Render(label)
	}
	left := components.TitleStyle.Render("GraphyBOOK") + " Physics Animation Studio"
	right := tab("🤖 AI Prompt", a.mode == demo.ModePrompt) + " " + tab("💻 Manual Code", a.mode == demo.ModeCode)

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	return components.HeaderStyle.Width(a.width).Render(left + strings.Repeat(" ", max(gap, 1)) + right)
}

func (a *App) renderStatus() string {
	style := components.StatusInfoStyle
	switch a.status.Severity {
	case demo.SeverityProcessing:
		style = components.StatusProcessingStyle
	case demo.SeveritySuccess:
		style = components.StatusSuccessStyle
	}
	return " " + a.spinner.View() + " " + style.Render(a.status.Message)
}

func (a *App) renderInput(width int) string {
	ta, trigger, label := a.prompt, demo.TriggerGenerate, "✨ Generate Animation  ctrl+g"
	if a.mode == demo.ModeCode {
		ta, trigger, label = a.code, demo.TriggerExecute, "▶️ Execute Code  ctrl+e"
	}
	btn := components.DisabledTriggerStyle.Render(label)
	if a.triggers[trigger] {
		btn = components.TriggerStyle.Render(label)
	}
	return components.ActivePanelStyle.Width(width).Render(ta.View() + "\n\n" + btn)
}

func (a *App) renderMedia(width int) string {
	if a.media == nil {
		body := components.PlaceholderStyle.Render("🎬 Your animation will appear here")
		return components.PanelStyle.Width(width).Render(lipgloss.PlaceHorizontal(width-4, lipgloss.Center, body))
	}

	name := path.Base(a.media.Ref)
	var b strings.Builder
	b.WriteString(components.ClipNameStyle.Render("▶ " + name))
	if a.player.Missing() {
		b.WriteString(" " + components.MutedStyle.Render("(not in library)"))
	}
	b.WriteString("\n\n")
	b.WriteString(a.clipBar.ViewAs(a.player.Position()))
	b.WriteString("\n\n")
	for _, row := range [][2]string{
		{"Duration", a.media.Duration},
		{"Quality", a.media.Quality},
		{"Status", a.media.Status},
	} {
		b.WriteString(components.InfoLabelStyle.Render(row[0]) + row[1] + "\n")
	}
	b.WriteString(components.MutedStyle.Render("ctrl+f fullscreen · ctrl+d download"))
	return components.PanelStyle.Width(width).Render(b.String())
}
