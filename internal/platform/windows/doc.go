// Package windows provides Windows support using UI Automation for element
// lookup and user32 for the pointer and window list.
// Only amd64 and arm64 are wired up. Elsewhere, including on every other
// OS, the package is empty and registers nothing.
package windows
