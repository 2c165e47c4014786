// Package content holds the static copy rendered by offsite: the tutorial
// steps, the two command catalogs and the use case preview.
//
// The default content is embedded from data/*.yaml and decoded once on
// first use. A directory passed with --content can replace any of the
// four files; files it lacks fall back to the embedded copies.
//
// # Files
//
//   - steps.yaml: tutorial title, tip, ordered steps and resources
//   - git.yaml: git command catalog with its tag legend
//   - terminal.yaml: OS-aware terminal command catalog
//   - usecase.yaml: activity preview (agenda, plan, details)
//
// # Step Kinds
//
// Each step carries a kind that picks its renderer. Kinds are decoded from
// their YAML names and an unknown name fails the load:
//
//	steps:
//	  - title: Install Node.js
//	    kind: install-node
//	    guide: |
//	      ## Check the install
//	      ...
//
// Steps without a kind are generic.
//
// # Validation
//
// Load and LoadDir validate the bundle and return every problem at once,
// joined with errors.Join, so a content author sees the full list.
package content
