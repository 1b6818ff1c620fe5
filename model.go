package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/katistix/servicetrack/internal/tracker"
)

// --- BUBBLE TEA MODEL & ITEMS ---

// stageItem is one row of the service timeline.
type stageItem struct {
	view tracker.StageView
}

// Implement list.Item interface for stageItem.
func (i stageItem) Title() string {
	return fmt.Sprintf("%s %s", statusIcon(i.view.Status), i.view.Stage.Title)
}

func (i stageItem) Description() string {
	switch i.view.Status {
	case tracker.StatusCompleted:
		return completedStyle.Render(i.view.Stage.Subtitle)
	case tracker.StatusCurrent:
		return currentStyle.Render(i.view.Stage.Subtitle)
	default:
		return pendingStyle.Render(i.view.Stage.Subtitle)
	}
}
func (i stageItem) FilterValue() string { return i.view.Stage.Title }

// --- MAIN MODEL ---
type model struct {
	tracker  *tracker.Tracker
	cfg      TrackerConfig
	schedule func([]tracker.Timer) tea.Cmd
	mounted  []tracker.Timer // armed by Start, scheduled in Init

	timeline list.Model
	spinner  spinner.Model
	bar      progress.Model
	feedback textarea.Model
	help     help.Model
	keys     keyMap
	focus    focusArea

	width, height int
	quitting      bool
	showCopied    bool
	copyErr       error
	notice        string
	noticeSeq     int
}

func initialModel(t *tracker.Tracker, cfg TrackerConfig) model {
	delegate := list.NewDefaultDelegate()
	selectedStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(brandBlue).
		Foreground(brandBlue).
		Padding(0, 0, 0, 1)
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = selectedStyle.Foreground(lipgloss.Color("250")).Faint(true)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Service Timeline"
	l.Styles.Title = titleStyle
	l.SetShowHelp(false) // We render our own help.
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	s := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(lipgloss.NewStyle().Foreground(brandBlue)))

	ta := textarea.New()
	ta.Placeholder = "Tell us about your experience..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(3)

	m := model{
		tracker:  t,
		cfg:      cfg,
		schedule: scheduleTimersCmd,
		timeline: l,
		spinner:  s,
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		feedback: ta,
		help:     help.New(),
		keys:     newKeyMap(),
	}
	m.mounted = t.Start()
	m.refresh()
	return m
}

// refresh re-derives everything shown from the tracker snapshot.
func (m *model) refresh() tracker.View {
	v := m.tracker.Snapshot()

	items := make([]list.Item, len(v.Stages))
	for i, s := range v.Stages {
		items[i] = stageItem{view: s}
	}
	m.timeline.SetItems(items)
	m.timeline.Select(v.CurrentStage - 1)

	if !v.ReviewModalOpen && m.focus != focusStars {
		m.focus = focusStars
		m.feedback.Blur()
	}
	m.keys.sync(v, m.focus)
	return v
}

// --- BUBBLE TEA LOGIC ---
func (m model) Init() tea.Cmd {
	return tea.Batch(m.schedule(m.mounted), m.spinner.Tick)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		h, v := docStyle.GetFrameSize()
		timelineWidth := int(float32(msg.Width-h) * 0.4)
		m.timeline.SetSize(timelineWidth, msg.Height-v-3)
		m.bar.Width = max(10, msg.Width-h-timelineWidth-12)
		m.feedback.SetWidth(min(50, max(20, msg.Width-h-10)))
		m.help.Width = msg.Width - h
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case timerFiredMsg:
		m.tracker.Fire(msg.timer)
		m.refresh()
		return m, nil

	case copiedToClipboardMsg:
		if msg.err != nil {
			slog.Warn("copy support number", "err", msg.err)
			m.showCopied = false
			m.copyErr = msg.err
		}
		return m, nil

	case copiedExpiredMsg:
		m.showCopied = false
		m.copyErr = nil
		return m, nil

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.focus == focusFeedback {
		var cmd tea.Cmd
		m.feedback, cmd = m.feedback.Update(msg)
		return m, cmd
	}
	return m, nil
}

//nolint:cyclop
func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit), key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.tracker.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		timers, err := m.tracker.Advance()
		if err != nil {
			slog.Debug("advance rejected", "err", err)
			return m, nil
		}
		m.refresh()
		return m, m.schedule(timers)

	case key.Matches(msg, m.keys.Prev):
		timers, err := m.tracker.Retreat()
		if err != nil {
			slog.Debug("retreat rejected", "err", err)
			return m, nil
		}
		m.refresh()
		return m, m.schedule(timers)

	case key.Matches(msg, m.keys.DismissBanner):
		m.tracker.DismissCelebration()
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.CopySupport):
		m.showCopied = true
		m.copyErr = nil
		return m, tea.Batch(copyToClipboardCmd(m.cfg.SupportPhone), expireCopiedCmd())

	case key.Matches(msg, m.keys.Rate):
		if err := m.tracker.SetRating(int(msg.Runes[0] - '0')); err != nil {
			slog.Debug("rating rejected", "err", err)
		}
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Focus):
		var cmd tea.Cmd
		if m.focus == focusStars {
			m.focus = focusFeedback
			cmd = m.feedback.Focus()
		} else {
			m.focus = focusStars
			m.feedback.Blur()
		}
		m.refresh()
		return m, cmd

	case key.Matches(msg, m.keys.Submit):
		m.tracker.SetFeedback(m.feedback.Value())
		r, err := m.tracker.Submit()
		if err != nil {
			slog.Debug("submit rejected", "err", err)
			return m, nil
		}
		m.feedback.Reset()
		m.noticeSeq++
		m.notice = fmt.Sprintf("Thank you for your %d-star review! Your feedback: %q", r.Rating, r.Feedback)
		m.refresh()
		return m, expireNoticeCmd(m.noticeSeq)

	case key.Matches(msg, m.keys.Skip):
		m.feedback.Reset()
		m.tracker.Dismiss()
		m.refresh()
		return m, nil
	}

	if m.focus == focusFeedback {
		var cmd tea.Cmd
		m.feedback, cmd = m.feedback.Update(msg)
		m.tracker.SetFeedback(m.feedback.Value())
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return docStyle.Render("Closing tracker...\n")
	}

	v := m.tracker.Snapshot()

	var top string
	if v.CelebrationVisible {
		top = bannerStyle.Render(v.CelebrationMessage) + "\n"
	}

	if v.ReviewModalOpen {
		modal := m.renderReviewModal(v)
		if m.width > 0 && m.height > 0 {
			modal = lipgloss.Place(m.width, m.height-lipgloss.Height(top), lipgloss.Center, lipgloss.Center, modal)
		}
		return top + modal
	}

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, detailPaneStyle.Render(m.renderDetailView(v)), m.timeline.View())
	return top + docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, mainView, m.renderFooterView()))
}

func (m model) renderDetailView(v tracker.View) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Service Progress"))
	if label := orderLabel(m.cfg.OrderNumber); label != "" {
		b.WriteString("  " + orderStyle.Render(label))
	}
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s %s %d%%\n\n", detailAttrStyle.Render("Progress"), m.bar.ViewAs(float64(v.Percent)/100), v.Percent))

	active := v.Active
	marker := ""
	if !v.Complete {
		marker = m.spinner.View() + " "
	}
	b.WriteString(marker + stageTitleStyle.Render(active.Title) + "\n")
	b.WriteString(stageSubtitleStyle.Render(active.Subtitle) + "\n")
	if active.EstimatedTime != "" {
		b.WriteString(etaStyle.Render("🕒 "+active.EstimatedTime) + "\n")
	}

	if p := active.AssignedPerson; p != nil {
		card := fmt.Sprintf("%s\n%s\n%s\n%s: %s",
			sectionTitleStyle.Render("Your Service Professional"),
			detailAttrStyle.Render(p.Name),
			detailValStyle.Render(p.Role),
			starOnStyle.Render("★"), detailValStyle.Render(fmt.Sprintf("%.1f", p.Rating)),
		)
		b.WriteString("\n" + cardStyle.Render(card) + "\n")
	}

	b.WriteString("\n" + sectionTitleStyle.Render("Current Progress") + "\n")
	for _, item := range active.ChecklistItems {
		b.WriteString(checkStyle.Render("✔") + " " + item + "\n")
	}

	if v.Complete && active.CompletionImages != nil {
		b.WriteString("\n" + sectionTitleStyle.Render("Job Completion Photos") + "\n")
		b.WriteString(fmt.Sprintf("%s: %s\n", detailAttrStyle.Render("Before"), detailValStyle.Render(active.CompletionImages.Before)))
		b.WriteString(fmt.Sprintf("%s: %s\n", detailAttrStyle.Render("After"), detailValStyle.Render(active.CompletionImages.After)))
	}

	b.WriteString("\n" + expectationStyle.Render("📅 What to Expect\n"+active.CustomerExpectation))
	return b.String()
}

func (m model) renderFooterView() string {
	var b strings.Builder
	b.WriteString("\n")

	support := fmt.Sprintf("Need help? Call Support: %s", m.cfg.SupportPhone)
	switch {
	case m.copyErr != nil:
		support += " " + errorStyle.Render("Copy failed: "+m.copyErr.Error())
	case m.showCopied:
		support += " " + copySuccessStyle.Render("Copied!")
	}
	b.WriteString(helpStyle.Render(support) + "\n")

	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice) + "\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m model) renderReviewModal(v tracker.View) string {
	var b strings.Builder

	b.WriteString(modalTitleStyle.Render("✅ Service Complete!") + "\n")
	name := "your technician"
	if p := v.Active.AssignedPerson; p != nil {
		name = p.Name
	}
	b.WriteString(fmt.Sprintf("How was your experience with %s?\n\n", name))

	label := "Rate your experience"
	if m.focus == focusStars {
		label = focusedStyle.Render(label)
	}
	b.WriteString(label + "\n" + renderStars(v.Rating) + "\n\n")

	fbLabel := "Share your feedback (optional)"
	if m.focus == focusFeedback {
		fbLabel = focusedStyle.Render(fbLabel)
	}
	b.WriteString(fbLabel + "\n" + m.feedback.View() + "\n\n")

	submit := buttonStyle.Render("Submit Review")
	if !v.CanSubmit {
		submit = disabledStyle.Render(submit)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, buttonStyle.Render("Skip"), " ", submit) + "\n")
	b.WriteString(m.help.View(m.keys))

	return modalStyle.Render(b.String())
}

func renderStars(rating int) string {
	var b strings.Builder
	for star := tracker.MinRating; star <= tracker.MaxRating; star++ {
		if star <= rating {
			b.WriteString(starOnStyle.Render("★"))
		} else {
			b.WriteString(starOffStyle.Render("☆"))
		}
		if star < tracker.MaxRating {
			b.WriteString(" ")
		}
	}
	return b.String()
}
