//go:build windows

package deletion

import (
	"os"
	"syscall"
	"time"
)

// createdTime returns the file's creation time.
func createdTime(info os.FileInfo) time.Time {
	if d, ok := info.Sys().(*syscall.Win32FileAttributeData); ok {
		return time.Unix(0, d.CreationTime.Nanoseconds())
	}
	return info.ModTime()
}
