package main

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/katistix/servicetrack/internal/tracker"
)

// keyMap holds every binding. Bindings are switched on and off from the view
// snapshot, so a control that cannot act is neither matched nor advertised.
type keyMap struct {
	Next          key.Binding
	Prev          key.Binding
	CopySupport   key.Binding
	DismissBanner key.Binding
	Rate          key.Binding
	Focus         key.Binding
	Submit        key.Binding
	Skip          key.Binding
	Quit          key.Binding
	ForceQuit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Next:          key.NewBinding(key.WithKeys("n", "right", "l"), key.WithHelp("→/n", "next stage")),
		Prev:          key.NewBinding(key.WithKeys("p", "left", "h"), key.WithHelp("←/p", "previous stage")),
		CopySupport:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy support number")),
		DismissBanner: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss banner")),
		Rate:          key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "rate")),
		Focus:         key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "stars/feedback")),
		Submit:        key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit review")),
		Skip:          key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "skip")),
		Quit:          key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:     key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// sync enables the bindings that can act on v with the given modal focus.
func (k *keyMap) sync(v tracker.View, focus focusArea) {
	modal := v.ReviewModalOpen
	typing := modal && focus == focusFeedback

	k.Next.SetEnabled(!modal && v.CanAdvance)
	k.Prev.SetEnabled(!modal && v.CanRetreat)
	k.CopySupport.SetEnabled(!modal)
	k.DismissBanner.SetEnabled(!modal && v.CelebrationVisible)
	k.Rate.SetEnabled(modal && focus == focusStars)
	k.Focus.SetEnabled(modal)
	k.Submit.SetEnabled(modal && v.CanSubmit)
	k.Skip.SetEnabled(modal)
	k.Quit.SetEnabled(!typing)
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Rate, k.Focus, k.Submit, k.Skip, k.DismissBanner, k.CopySupport, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.DismissBanner, k.CopySupport},
		{k.Rate, k.Focus, k.Submit, k.Skip},
		{k.Quit},
	}
}
