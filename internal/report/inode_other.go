//go:build !unix

package report

type fileID struct {
	dev, inode uint64
}

// Sin inodos: nunca se detectan enlaces duros.
func lookupID(string) (fileID, bool) {
	return fileID{}, false
}
