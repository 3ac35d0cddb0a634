package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"greenpath/internal/actions"
	"greenpath/internal/model"
)

const noticeTTL = 4 * time.Second

// banner is the transient notification line under the header.
type banner struct {
	notice actions.Notice
	seq    int
	shown  bool
}

// show displays n and returns the command that hides it again.
func (b *banner) show(n actions.Notice) tea.Cmd {
	b.seq++
	b.notice = n
	b.shown = true
	seq := b.seq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return model.ClearNoticeMsg{Seq: seq}
	})
}

func (b *banner) clear(msg model.ClearNoticeMsg) {
	if msg.Seq == b.seq {
		b.shown = false
	}
}

func (b *banner) View() string {
	if !b.shown {
		return ""
	}
	text := b.notice.Title
	if b.notice.Body != "" {
		text += ": " + b.notice.Body
	}
	if b.notice.Error {
		return ErrorStyle.Render("✗ " + text)
	}
	return SuccessStyle.Render("✓ " + text)
}
