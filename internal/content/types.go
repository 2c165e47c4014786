package content

import (
	"fmt"
	"strings"
)

// StepKind selects how a step body is rendered. Generic steps show their
// content and instructions; the guided kinds additionally render a
// markdown guide tailored to the tool being installed.
type StepKind int

const (
	KindGeneric StepKind = iota
	KindRequestAccess
	KindInstallVSCode
	KindInstallNode
	KindInstallGit
	KindSetupCopilot
)

var stepKindNames = map[StepKind]string{
	KindGeneric:       "generic",
	KindRequestAccess: "request-access",
	KindInstallVSCode: "install-vscode",
	KindInstallNode:   "install-node",
	KindInstallGit:    "install-git",
	KindSetupCopilot:  "setup-copilot",
}

// StepKinds returns every kind in declaration order.
func StepKinds() []StepKind {
	return []StepKind{
		KindGeneric,
		KindRequestAccess,
		KindInstallVSCode,
		KindInstallNode,
		KindInstallGit,
		KindSetupCopilot,
	}
}

// String returns the YAML name of the kind.
func (k StepKind) String() string {
	if name, ok := stepKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("StepKind(%d)", int(k))
}

// ParseStepKind converts a YAML name into a StepKind.
// An empty string is treated as generic.
func ParseStepKind(s string) (StepKind, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return KindGeneric, nil
	}
	for kind, name := range stepKindNames {
		if name == s {
			return kind, nil
		}
	}
	return KindGeneric, fmt.Errorf("unknown step kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k StepKind) MarshalText() ([]byte, error) {
	name, ok := stepKindNames[k]
	if !ok {
		return nil, fmt.Errorf("invalid step kind %d", int(k))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *StepKind) UnmarshalText(text []byte) error {
	kind, err := ParseStepKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// IsGuided reports whether the kind renders a markdown guide.
func (k StepKind) IsGuided() bool {
	return k != KindGeneric
}

// Step is one ordered unit of the tutorial.
type Step struct {
	Title         string   `yaml:"title" json:"title"`
	EstimatedTime int      `yaml:"estimated_time" json:"estimated_time"` // Minutes
	Kind          StepKind `yaml:"kind,omitempty" json:"kind"`
	Badges        []string `yaml:"badges,omitempty" json:"badges,omitempty"`
	Content       string   `yaml:"content" json:"content"`
	Instructions  []string `yaml:"instructions" json:"instructions"`
	Guide         string   `yaml:"guide,omitempty" json:"guide,omitempty"` // Markdown, guided kinds only
}

// Resource is a link or note listed beneath the tutorial or use case.
type Resource struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	URL         string `yaml:"url,omitempty" json:"url,omitempty"`
	Note        string `yaml:"note,omitempty" json:"note,omitempty"`
}

// Tutorial is the step-by-step environment setup guide.
type Tutorial struct {
	Title       string     `yaml:"title" json:"title"`
	Description string     `yaml:"description" json:"description"`
	Tip         string     `yaml:"tip,omitempty" json:"tip,omitempty"`
	Steps       []Step     `yaml:"steps" json:"steps"`
	Resources   []Resource `yaml:"resources,omitempty" json:"resources,omitempty"`
}

// TotalMinutes sums the estimated time of every step.
func (t *Tutorial) TotalMinutes() int {
	total := 0
	for _, s := range t.Steps {
		total += s.EstimatedTime
	}
	return total
}

// OS is the operating system axis of an OS-aware catalog.
type OS string

const (
	OSMac     OS = "mac"
	OSWindows OS = "windows"
	OSBoth    OS = "both"
)

// ParseOS accepts mac, macos, darwin, windows or win.
func ParseOS(s string) (OS, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "mac", "macos", "darwin":
		return OSMac, nil
	case "windows", "win":
		return OSWindows, nil
	}
	return "", fmt.Errorf("unknown operating system %q (want mac or windows)", s)
}

// Label returns the display name used by the OS selector.
func (o OS) Label() string {
	switch o {
	case OSMac:
		return "macOS"
	case OSWindows:
		return "Windows"
	case OSBoth:
		return "All"
	}
	return string(o)
}

// Matches reports whether a command tagged with o is shown when selected
// is the active operating system. Untagged commands apply to both.
func (o OS) Matches(selected OS) bool {
	return o == "" || o == OSBoth || o == selected
}

func (o OS) valid() bool {
	switch o {
	case "", OSMac, OSWindows, OSBoth:
		return true
	}
	return false
}

// Command is a single entry of a reference catalog.
type Command struct {
	Command     string `yaml:"command" json:"command"`
	Description string `yaml:"description" json:"description"`
	Category    string `yaml:"category" json:"category"`
	Tag         string `yaml:"tag,omitempty" json:"tag,omitempty"`
	OS          OS     `yaml:"os,omitempty" json:"os,omitempty"`
}

// TagInfo describes a filter tag in a catalog legend.
type TagInfo struct {
	Tag         string `yaml:"tag" json:"tag"`
	Label       string `yaml:"label" json:"label"`
	Description string `yaml:"description" json:"description"`
	Color       string `yaml:"color" json:"color"` // Hex, e.g. "#22C55E"
}

// Catalog is the fixed command list behind one reference panel.
type Catalog struct {
	ID       string    `yaml:"id" json:"id"`
	Title    string    `yaml:"title" json:"title"`
	Subtitle string    `yaml:"subtitle" json:"subtitle"`
	Tip      string    `yaml:"tip,omitempty" json:"tip,omitempty"`
	OSAware  bool      `yaml:"os_aware,omitempty" json:"os_aware,omitempty"`
	Tags     []TagInfo `yaml:"tags,omitempty" json:"tags,omitempty"`
	Commands []Command `yaml:"commands" json:"commands"`
}

// TagInfo returns the legend entry for tag, if declared.
func (c *Catalog) TagInfo(tag string) (TagInfo, bool) {
	for _, t := range c.Tags {
		if t.Tag == tag {
			return t, true
		}
	}
	return TagInfo{}, false
}

// Categories returns category names in first-appearance order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, cmd := range c.Commands {
		if !seen[cmd.Category] {
			seen[cmd.Category] = true
			out = append(out, cmd.Category)
		}
	}
	return out
}

// Topic is a bullet within an agenda session.
type Topic struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}

// Session is one block of the off-site agenda.
type Session struct {
	Title       string  `yaml:"title" json:"title"`
	Duration    string  `yaml:"duration,omitempty" json:"duration,omitempty"`
	Description string  `yaml:"description" json:"description"`
	Topics      []Topic `yaml:"topics,omitempty" json:"topics,omitempty"`
	Note        string  `yaml:"note,omitempty" json:"note,omitempty"`
}

// PlanStep is one stage of the project plan.
type PlanStep struct {
	Title       string `yaml:"title" json:"title"`
	Minutes     int    `yaml:"minutes" json:"minutes"`
	Description string `yaml:"description" json:"description"`
}

// Section is a collapsible block of detail text.
type Section struct {
	Title string `yaml:"title" json:"title"`
	Body  string `yaml:"body" json:"body"`
}

// UseCase is the activity preview shown before the tutorial.
type UseCase struct {
	Title        string     `yaml:"title" json:"title"`
	Category     string     `yaml:"category,omitempty" json:"category,omitempty"`
	BusinessUnit string     `yaml:"business_unit,omitempty" json:"business_unit,omitempty"`
	Languages    []string   `yaml:"languages,omitempty" json:"languages,omitempty"`
	Summary      string     `yaml:"summary" json:"summary"`
	Tools        []string   `yaml:"tools,omitempty" json:"tools,omitempty"`
	ToolsNote    string     `yaml:"tools_note,omitempty" json:"tools_note,omitempty"`
	Duration     string     `yaml:"total_duration,omitempty" json:"total_duration,omitempty"`
	Agenda       []Session  `yaml:"agenda,omitempty" json:"agenda,omitempty"`
	Plan         []PlanStep `yaml:"plan,omitempty" json:"plan,omitempty"`
	Details      []Section  `yaml:"details,omitempty" json:"details,omitempty"`
	Resources    []Resource `yaml:"resources,omitempty" json:"resources,omitempty"`
}

// PlanMinutes sums the minutes of every plan step.
func (u *UseCase) PlanMinutes() int {
	total := 0
	for _, p := range u.Plan {
		total += p.Minutes
	}
	return total
}
