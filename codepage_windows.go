//go:build windows

package main

import (
	"log/slog"

	"golang.org/x/sys/windows"
)

const utf8CodePage = 65001

// setConsoleUTF8 lets OEM key glyphs reach the console intact.
func setConsoleUTF8() {
	if err := windows.SetConsoleOutputCP(utf8CodePage); err != nil {
		slog.Debug("[keyhook] SetConsoleOutputCP failed", "error", err)
	}
	if err := windows.SetConsoleCP(utf8CodePage); err != nil {
		slog.Debug("[keyhook] SetConsoleCP failed", "error", err)
	}
}
