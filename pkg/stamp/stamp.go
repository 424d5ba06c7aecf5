// Package stamp formats the audit stamp written on product status
// transitions. The stamp is a single overwritten string, not a log: only
// the most recent actor and time survive.
package stamp

import "time"

// Layout mirrors the browser locale timestamp the stamp was specified
// against, e.g. "1/2/2026, 3:04:05 PM".
const Layout = "1/2/2006, 3:04:05 PM"

// Format renders "<display name> - <locale timestamp>".
func Format(displayName string, t time.Time) string {
	return displayName + " - " + t.Format(Layout)
}
