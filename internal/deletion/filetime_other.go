//go:build !windows

package deletion

import (
	"os"
	"time"
)

// createdTime falls back to the modification time where the platform does
// not expose a birth time through os.FileInfo.
func createdTime(info os.FileInfo) time.Time {
	return info.ModTime()
}
