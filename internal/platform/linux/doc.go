// Package linux provides Linux support using X11 for the pointer, window
// stacking order and screen capture, and the AT-SPI accessibility bus over
// D-Bus for element lookup.
// On other OSes the package is empty and registers nothing.
package linux
