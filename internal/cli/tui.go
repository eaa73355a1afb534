package cli

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/render/cloud/animate"
	"github.com/matzehuels/wordcloud/pkg/render/cloud/layout"
)

// frameInterval is the playback tick (about 30 fps).
const frameInterval = 33 * time.Millisecond

// Cloud styles by relative font size.
var (
	cloudLargeStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	cloudMediumStyle = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	cloudSmallStyle  = lipgloss.NewStyle().Foreground(colorGray)
	cloudFadedStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

var cloudFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(1, 1)

// tuiCommand creates the interactive command: a text box plus a trigger
// key that renders the cloud and plays the transition from the previous one.
func (c *CLI) tuiCommand() *cobra.Command {
	var flags textFlags

	cmd := &cobra.Command{
		Use:   "tui [file]",
		Short: "Edit text interactively and watch the cloud animate",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			initial := ""
			if len(args) == 1 {
				text, _, err := readText(args, cmd.InOrStdin())
				if err != nil {
					return err
				}
				initial = text
			}

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, flags.noCache, flags.stopwords)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := c.options(cmd, &flags)
			// The screen belongs to bubbletea.
			opts.Logger = log.NewWithOptions(io.Discard, log.Options{})

			m := newTUIModel(ctx, runner, opts)
			m.input.SetValue(initial)
			_, err = tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
			return err
		},
	}

	flags.bind(cmd)
	return cmd
}

// =============================================================================
// Model
// =============================================================================

// computedMsg carries the result of one render trigger.
type computedMsg struct {
	seq    int
	result *pipeline.Result
	next   animate.State
	err    error
}

// frameMsg advances playback.
type frameMsg time.Time

// tuiModel is the bubbletea model for the interactive cloud.
type tuiModel struct {
	ctx    context.Context
	runner *pipeline.Runner
	opts   pipeline.Options

	input    textarea.Model
	timeline *animate.Timeline
	state    animate.State
	params   layout.Params

	// seq identifies the latest trigger; older results are dropped.
	seq     int
	playing bool
	start   time.Time
	now     time.Time

	width int
	stats pipeline.Stats
	plan  animate.Plan
	err   error
}

func newTUIModel(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) tuiModel {
	ti := textarea.New()
	ti.Placeholder = "Type or paste text, then press ctrl+s..."
	ti.ShowLineNumbers = false
	ti.SetWidth(80)
	ti.SetHeight(6)
	ti.Focus()

	return tuiModel{
		ctx:      ctx,
		runner:   runner,
		opts:     opts,
		input:    ti,
		timeline: animate.NewTimeline(nil),
		params:   opts.Params.WithDefaults(),
		width:    80,
	}
}

func (m tuiModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+s":
			m.seq++
			return m, m.compute(m.seq, m.input.Value(), m.state)
		}

	case tea.WindowSizeMsg:
		m.width = max(20, msg.Width-4)
		m.input.SetWidth(m.width)

	case computedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.state = msg.next
		m.plan = *msg.result.Plan
		m.stats = msg.result.Stats
		m.params = msg.result.Layout.Params
		m.timeline.Apply(m.plan)
		m.start = time.Now()
		m.now = m.start
		if m.playing {
			return m, nil
		}
		m.playing = true
		return m, frame()

	case frameMsg:
		m.now = time.Time(msg)
		if m.timeline.Done(m.now.Sub(m.start)) {
			m.playing = false
			return m, nil
		}
		return m, frame()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// compute runs the pipeline off the UI goroutine against the state that
// was on screen when the trigger fired.
func (m tuiModel) compute(seq int, text string, prev animate.State) tea.Cmd {
	runner, opts, ctx := m.runner, m.opts, m.ctx
	return func() tea.Msg {
		result, next, err := runner.Animate(ctx, prev, text, opts)
		return computedMsg{seq: seq, result: result, next: next, err: err}
	}
}

func frame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m tuiModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("wordcloud"))
	b.WriteString("\n")
	b.WriteString(cloudFrameStyle.Width(m.width).Render(m.cloudLine(m.width - 4)))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(styleIconError.Render(iconError) + " " + m.err.Error())
	case m.seq > 0:
		b.WriteString(StyleDim.Render(fmt.Sprintf("enter %d · update %d · exit %d · %d tokens, %d distinct",
			len(m.plan.Enter), len(m.plan.Update), len(m.plan.Exit), m.stats.Tokens, m.stats.Distinct)))
	default:
		b.WriteString(StyleDim.Render("nothing rendered yet"))
	}
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("ctrl+s render  esc quit"))

	return b.String()
}

// cloudLine draws the current timeline frame onto one terminal row. Words
// keep their left-to-right order and never overlap; font size and opacity
// pick the style.
func (m tuiModel) cloudLine(cols int) string {
	sprites := m.timeline.Sample(m.now.Sub(m.start))
	inner := m.params.InnerWidth()
	if cols <= 0 || inner <= 0 {
		return ""
	}

	var b strings.Builder
	cursor := 0
	for _, s := range sprites {
		if s.Frame.FontSize < 1 || s.Frame.Opacity <= 0.05 {
			continue
		}
		n := len([]rune(s.Word))
		center := int(math.Round(s.Frame.X / inner * float64(cols-1)))
		start := max(cursor, center-n/2)
		if cursor > 0 {
			start = max(start, cursor+1)
		}
		if start+n > cols {
			break
		}
		b.WriteString(strings.Repeat(" ", start-cursor))
		b.WriteString(m.wordStyle(s.Frame).Render(s.Word))
		cursor = start + n
	}
	return b.String()
}

func (m tuiModel) wordStyle(f animate.Frame) lipgloss.Style {
	if f.Opacity < 0.6 {
		return cloudFadedStyle
	}
	span := m.params.FontMax - m.params.FontMin
	rel := 1.0
	if span > 0 {
		rel = (f.FontSize - m.params.FontMin) / span
	}
	switch {
	case rel >= 0.66:
		return cloudLargeStyle
	case rel >= 0.33:
		return cloudMediumStyle
	default:
		return cloudSmallStyle
	}
}
