// Package paths provides centralized path handling for wrench.
// It implements XDG Base Directory specification compliance for wrench's own
// files (config, preferences, aliases, logs) and knows where the game client
// keeps its settings on each operating system.
package paths
