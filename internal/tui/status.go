package tui

import "fmt"

// StatusBar renders the top status bar.
func StatusBar(total, checked, width int) string {
	text := fmt.Sprintf("  cartling - %d items, %d checked  ", total, checked)
	return statusBarStyle.Width(width).Render(text)
}
