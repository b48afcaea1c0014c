// Package ui holds the state model of a key-grid control surface and the
// dispatch of key presses to application callbacks.
//
// Core abstractions:
//   - Element: one key face bound to an optional action
//   - View: a named rows x cols grid of optional Elements for one screen
//   - FocusRegistry: the views of one device and which of them is focused
//   - Dispatcher: resolves raw key events against the focused View, filters
//     repeated presses (cooldown) and invokes the bound action
//   - Session: ties a device, a renderer, a registry and a dispatcher together
//
// Rendering a View makes it the focused view. Pushing an image from a view
// that is not focused first blanks the device so keys from the previously
// focused view do not linger.
package ui
