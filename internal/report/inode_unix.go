//go:build unix

package report

import "golang.org/x/sys/unix"

type fileID struct {
	dev, inode uint64
}

// lookupID extrae dispositivo e inodo; ok=false si stat falla.
func lookupID(path string) (fileID, bool) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return fileID{}, false
	}
	return fileID{dev: uint64(st.Dev), inode: uint64(st.Ino)}, true
}
