// Package ui contains the Bubble Tea program that hosts a filter select and a
// filtered select.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function (key presses, window sizes, option map reloads, confirmation).
//   - Key handlers (internal/ui/keys.go, internal/ui/input.go) act on the
//     focused state.Select. Whenever an action changes that control's value the
//     model fires the control's change notification, the same way a toolkit
//     widget would.
//
// Binding:
//   - The filter and filtered controls are bound through internal/binder. A
//     change notification on the filter control makes the binding repopulate
//     the filtered control and fire its change notification, which the model
//     observes to keep the viewport and status line current.
//   - A backend.Watcher may deliver a reloaded option map; the model then
//     rebinds the same pair of controls so exactly one listener stays attached.
//
// The Harness type drives the model synchronously for tests.
package ui
