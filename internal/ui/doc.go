// Package ui holds the presentation-side pieces the CLI renders with: the
// global display-mode marker and the route guard driven by the session's
// authenticated signal.
package ui
