// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "time"

// Clock provides the current time. Its location defines the calendar day
// used for daily summaries.
type Clock interface {
	Now() time.Time
}
