package utils

import (
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// layout for displayed clock times, 12 hour with a zero padded hour and no
// seconds
const clockLayout = "03:04 PM"

// FormatClockTime converts a unix timestamp in seconds, as the provider sends
// it, into the clock string we store on log records. Display times are pinned
// to UTC so the same timestamp always renders the same everywhere.
func FormatClockTime(timestamp string) (string, error) {
	seconds, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return "", errors.Wrapf(err, "unable to parse timestamp '%s'", timestamp)
	}
	return time.Unix(seconds, 0).UTC().Format(clockLayout), nil
}
