package main

import (
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/katistix/servicetrack/internal/tracker"
)

const (
	copiedFlashDuration = 2 * time.Second
	noticeDuration      = 5 * time.Second
)

// --- BUBBLE TEA MESSAGES ---
// These messages are the results of commands.

// timerFiredMsg hands an expired tracker timer back to the model.
type timerFiredMsg struct {
	timer tracker.Timer
}

type copiedToClipboardMsg struct {
	err error
}

type copiedExpiredMsg struct{}

// noticeExpiredMsg clears the acknowledgment notice if seq is still the latest.
type noticeExpiredMsg struct {
	seq int
}

// --- TIMER & CLIPBOARD COMMANDS ---

// scheduleTimersCmd waits out each timer on the program's event loop.
func scheduleTimersCmd(timers []tracker.Timer) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(timers))
	for _, tm := range timers {
		cmds = append(cmds, tea.Tick(tm.Delay, func(time.Time) tea.Msg {
			return timerFiredMsg{timer: tm}
		}))
	}
	return tea.Batch(cmds...)
}

func copyToClipboardCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedToClipboardMsg{err: clipboard.WriteAll(text)}
	}
}

func expireCopiedCmd() tea.Cmd {
	return tea.Tick(copiedFlashDuration, func(time.Time) tea.Msg {
		return copiedExpiredMsg{}
	})
}

func expireNoticeCmd(seq int) tea.Cmd {
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}
