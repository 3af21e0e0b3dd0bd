package ui

import "time"

// LayoutCompactWidth is the terminal width below which detail views drop or
// shrink their side panes.
const LayoutCompactWidth = 100

// DefaultUIInterval is the default UI refresh interval.
const DefaultUIInterval = time.Second
