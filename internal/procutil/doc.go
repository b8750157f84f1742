// Package procutil starts the commands bound to shortcuts. Children run
// detached from the daemon so a long-running program never blocks the
// keyboard hook.
package procutil
