// Package clock provides the wall clock used to stamp submissions.
package clock

import "time"

// System reads the real time in UTC.
type System struct{}

func (System) Now() time.Time {
	return time.Now().UTC()
}
