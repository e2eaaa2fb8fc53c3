//go:build unix

package strata

import (
	"time"

	"golang.org/x/sys/unix"
)

// waitReadable performs a select() on the given fd. Returns (true, nil)
// when the fd is readable, (false, nil) on timeout. EINTR folds into the
// timeout path: the caller re-checks its latches and polls again, which
// is exactly what a signal interruption should trigger.
func waitReadable(fd int, timeout time.Duration) (ready bool, err error) {
	var readFds unix.FdSet
	readFds.Zero()
	readFds.Set(fd)

	var tv *unix.Timeval
	if timeout >= 0 {
		tvVal := unix.NsecToTimeval(timeout.Nanoseconds())
		tv = &tvVal
	}

	n, err := unix.Select(fd+1, &readFds, nil, nil, tv)
	if err != nil {
		if err == unix.EINTR {
			return false, nil
		}
		return false, err
	}
	return n > 0, nil
}

// readFd reads available bytes from the fd, folding EINTR into a zero
// read.
func readFd(fd int, buf []byte) (int, error) {
	n, err := unix.Read(fd, buf)
	if err == unix.EINTR {
		return 0, nil
	}
	return n, err
}
