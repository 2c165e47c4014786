// Package urls provides centralized constants for the external links used
// throughout the application.
//
// Links that appear in step guides and headers are defined here so they can
// be updated in one place. Links that only appear in content files live in
// those YAML files instead.
//
// Usage:
//
//	import "github.com/muurk/offsite/internal/urls"
//
//	fmt.Printf("Download Node.js from %s\n", urls.NodeDownload)
package urls
