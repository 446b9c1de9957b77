//go:build !linux && !darwin && !windows

package platform

import "log"

// Notify writes the notification to the log where no desktop service is
// known.
func Notify(title, body string, opts Options) error {
	if title == "" {
		title = opts.appName()
	}
	log.Printf("%s: %s", title, body)
	return nil
}
