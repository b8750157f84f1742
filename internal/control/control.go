// Package control holds what the daemon and keyhookctl share about the
// control commands.
package control

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"keyhook/internal/keys"
	"keyhook/internal/shortcut"
)

// Control command names.
const (
	CmdStatus = "status"
	CmdList   = "list"
	CmdReload = "reload"
	CmdParse  = "parse"
	CmdStop   = "stop"
)

// Describe parses text as a shortcut and reports how keyhook normalizes it.
func Describe(text string, state keys.State) (string, error) {
	sc, err := shortcut.Parse(text, state)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 1, ' ', 0)
	fmt.Fprintf(w, "shortcut:\t%s\n", sc.String())
	fmt.Fprintf(w, "display:\t%s\n", sc.DisplayString())
	fmt.Fprintf(w, "key:\t%s (0x%03X)\n", sc.Key(), uint16(sc.Key()))
	if base := keys.BaseKey(sc.Key()); base != sc.Key() {
		fmt.Fprintf(w, "base key:\t%s (0x%02X)\n", base, uint16(base))
	}
	if keys.IsGeneric(sc.Key()) {
		fmt.Fprintf(w, "matches:\tleft and right %s\n", sc.Key())
	}
	fmt.Fprintf(w, "modifier:\t%s\n", sc.Modifier())
	fmt.Fprintf(w, "state:\t%s\n", sc.State())
	w.Flush()
	return b.String(), nil
}
