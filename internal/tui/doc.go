// Package tui is the interactive shopping-list screen, built on Bubble Tea.
//
// The screen never touches the store. It renders whatever snapshot the
// controller last published and turns key presses into controller intents;
// each intent's outcome comes back as a message so failures can be shown in
// the status line.
package tui
