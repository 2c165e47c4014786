// Package reference implements the collapsible command reference panels.
//
// A Panel wraps one content.Catalog and holds purely local display state:
// whether it is open, which tags filter the list, which operating system is
// selected, and which command was copied most recently. Panels never share
// state, so the git and terminal panels are independent instances.
package reference

import (
	"runtime"
	"strings"
	"time"

	"github.com/atotto/clipboard"

	"github.com/muurk/offsite/internal/content"
)

// CopyAckDuration is how long the copied indicator stays visible.
const CopyAckDuration = 2 * time.Second

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard is the OS clipboard.
type SystemClipboard struct{}

// WriteAll implements Clipboard.
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Group is a run of visible commands sharing one category.
type Group struct {
	Category string
	Commands []content.Command
}

// Panel is the state of one reference panel.
type Panel struct {
	catalog *content.Catalog
	open    bool
	filters map[string]bool
	os      content.OS

	copied    string
	copiedSeq int
}

// New creates a closed panel with no filters. For OS-aware catalogs the
// selected operating system starts at DefaultOS.
func New(catalog *content.Catalog) *Panel {
	return &Panel{
		catalog: catalog,
		filters: make(map[string]bool),
		os:      DefaultOS(),
	}
}

// DefaultOS maps runtime.GOOS onto the catalog OS axis.
func DefaultOS() content.OS {
	return osFor(runtime.GOOS)
}

func osFor(goos string) content.OS {
	if goos == "windows" {
		return content.OSWindows
	}
	return content.OSMac
}

// Catalog returns the catalog behind the panel.
func (p *Panel) Catalog() *content.Catalog {
	return p.catalog
}

// IsOpen reports whether the panel is expanded.
func (p *Panel) IsOpen() bool {
	return p.open
}

// ToggleOpen flips the panel between expanded and collapsed.
func (p *Panel) ToggleOpen() bool {
	p.open = !p.open
	return p.open
}

// SetOpen expands or collapses the panel.
func (p *Panel) SetOpen(open bool) {
	p.open = open
}

// ToggleFilter adds tag to the active filters, or removes it if present.
// It returns whether the tag is active afterwards.
func (p *Panel) ToggleFilter(tag string) bool {
	if p.filters[tag] {
		delete(p.filters, tag)
		return false
	}
	p.filters[tag] = true
	return true
}

// ClearFilters removes every active filter.
func (p *Panel) ClearFilters() {
	clear(p.filters)
}

// IsFilterActive reports whether tag is an active filter.
func (p *Panel) IsFilterActive(tag string) bool {
	return p.filters[tag]
}

// ActiveFilterCount returns the number of active filters.
func (p *Panel) ActiveFilterCount() int {
	return len(p.filters)
}

// ActiveFilters returns the active tags in catalog legend order. Tags that
// are active but absent from the legend follow in no particular order.
func (p *Panel) ActiveFilters() []string {
	out := make([]string, 0, len(p.filters))
	seen := make(map[string]bool, len(p.filters))
	for _, t := range p.catalog.Tags {
		if p.filters[t.Tag] {
			out = append(out, t.Tag)
			seen[t.Tag] = true
		}
	}
	for tag := range p.filters {
		if !seen[tag] {
			out = append(out, tag)
		}
	}
	return out
}

// OS returns the selected operating system.
func (p *Panel) OS() content.OS {
	return p.os
}

// SetOS selects the operating system. Only mac and windows are accepted;
// anything else is ignored.
func (p *Panel) SetOS(os content.OS) {
	if os == content.OSMac || os == content.OSWindows {
		p.os = os
	}
}

// Visible returns the commands that pass the tag filter and, for OS-aware
// catalogs, the OS selection, in catalog order. With no tag filter active
// every command passes the tag check; once any tag is active a command must
// carry one of the active tags.
func (p *Panel) Visible() []content.Command {
	var out []content.Command
	for _, c := range p.catalog.Commands {
		if p.matches(c) {
			out = append(out, c)
		}
	}
	return out
}

func (p *Panel) matches(c content.Command) bool {
	if len(p.filters) > 0 && !p.filters[c.Tag] {
		return false
	}
	if p.catalog.OSAware && !c.OS.Matches(p.os) {
		return false
	}
	return true
}

// Groups partitions the visible commands by category. Groups appear in the
// order their category first appears in the catalog; categories with no
// visible commands are omitted.
func (p *Panel) Groups() []Group {
	var groups []Group
	index := make(map[string]int)
	for _, c := range p.Visible() {
		i, ok := index[c.Category]
		if !ok {
			i = len(groups)
			index[c.Category] = i
			groups = append(groups, Group{Category: c.Category})
		}
		groups[i].Commands = append(groups[i].Commands, c)
	}
	return groups
}

// CopyText returns the text placed on the clipboard for command. Entries
// of the form "key chord → instruction" copy only the part before the
// first arrow.
func CopyText(command string) string {
	if before, _, ok := strings.Cut(command, "→"); ok {
		return strings.TrimSpace(before)
	}
	return strings.TrimSpace(command)
}

// MarkCopied records command as copied and returns the sequence number
// that identifies this acknowledgment.
func (p *Panel) MarkCopied(command string) int {
	p.copiedSeq++
	p.copied = command
	return p.copiedSeq
}

// ExpireCopied clears the indicator if seq still identifies the latest
// acknowledgment. A later copy supersedes earlier expiries.
func (p *Panel) ExpireCopied(seq int) bool {
	if seq != p.copiedSeq || p.copied == "" {
		return false
	}
	p.copied = ""
	return true
}

// IsCopied reports whether command currently shows the copied indicator.
func (p *Panel) IsCopied(command string) bool {
	return p.copied != "" && p.copied == command
}

// Copied returns the command currently acknowledged, if any.
func (p *Panel) Copied() string {
	return p.copied
}
