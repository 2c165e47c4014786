package reference

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/offsite/internal/logging"
)

// CopiedMsg reports a successful clipboard write.
type CopiedMsg struct {
	PanelID string
	Command string
}

// CopyFailedMsg reports a rejected clipboard write. The error has already
// been logged; receivers only need it to skip the acknowledgment.
type CopyFailedMsg struct {
	PanelID string
	Command string
	Err     error
}

// CopyExpiredMsg is delivered CopyAckDuration after an acknowledgment.
type CopyExpiredMsg struct {
	PanelID string
	Seq     int
}

// CopyCmd writes CopyText(command) to cb off the update loop.
func CopyCmd(cb Clipboard, panelID, command string) tea.Cmd {
	return func() tea.Msg {
		if err := cb.WriteAll(CopyText(command)); err != nil {
			logging.LogClipboardFailure(panelID, command, err)
			return CopyFailedMsg{PanelID: panelID, Command: command, Err: err}
		}
		return CopiedMsg{PanelID: panelID, Command: command}
	}
}

// ExpireCmd schedules the expiry of acknowledgment seq.
func ExpireCmd(panelID string, seq int) tea.Cmd {
	return expireAfter(CopyAckDuration, panelID, seq)
}

func expireAfter(d time.Duration, panelID string, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return CopyExpiredMsg{PanelID: panelID, Seq: seq}
	})
}

// HandleCopied applies a CopiedMsg to the panel and returns the expiry
// command. It returns nil when the message belongs to another panel.
func (p *Panel) HandleCopied(msg CopiedMsg) tea.Cmd {
	if msg.PanelID != p.catalog.ID {
		return nil
	}
	seq := p.MarkCopied(msg.Command)
	return ExpireCmd(p.catalog.ID, seq)
}

// HandleExpired applies a CopyExpiredMsg to the panel.
func (p *Panel) HandleExpired(msg CopyExpiredMsg) bool {
	if msg.PanelID != p.catalog.ID {
		return false
	}
	return p.ExpireCopied(msg.Seq)
}

// ID returns the catalog identifier used to route copy messages.
func (p *Panel) ID() string {
	return p.catalog.ID
}
