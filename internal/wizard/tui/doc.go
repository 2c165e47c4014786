// Package tui implements the full-screen terminal interface of the offsite
// onboarding guide.
//
// Built on Bubble Tea, it follows the Elm architecture: every screen is a
// value model with Update returning the next model and an optional command.
//
// # Screens
//
// The coordinator (AppModel) owns three screens, each reachable by a route:
//   - Landing ("/"): welcome text, activity objectives and a menu
//   - Use case ("/usecase"): summary, agenda, project plan and collapsible
//     detail sections
//   - Steps ("/step-by-step"): step list, the current step body, and the git
//     and terminal reference panels
//
// All screen models are created up front, so completed steps and panel
// filters survive moving between screens. Nothing is persisted.
//
// All screens use a unified container pattern (RenderApplicationContainer)
// with a header, content area and a bubbles/help footer.
//
// # Key Bindings
//
//   - Landing: ↑/↓ navigate, Enter select, q quit
//   - Use case: ↑/↓ scroll, Tab/Shift+Tab select section, Enter expand, s start, Esc back
//   - Steps: ←/→ previous/next, 1-9 jump, Space mark complete, g/t open a panel, Esc back
//   - Focused panel: ↑/↓ select, Enter/y copy, 1-9 toggle tag, c clear, m/w OS, Tab/Esc leave
//
// Press ? on any screen for the full list.
//
// # Clipboard
//
// Copying runs as a tea.Cmd. A successful write marks the command as copied
// for reference.CopyAckDuration; a failed write is logged and shows nothing.
// Copy results are always delivered to the steps screen, whichever screen
// is showing when they arrive.
package tui
