package storage

import (
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// ErrLockedByOther mirrors the teacher's sys.go ErrWriteByOther: returned
// when another process already holds the backing file's lock.
var ErrLockedByOther = errors.New("database file locked by another process")

// Lock acquires an advisory lock on the file: shared if readOnly, exclusive
// otherwise. It is the portable x/sys/unix equivalent of the teacher's raw
// syscall.Flock calls in sys.go.
func (m *MappedFile) Lock(readOnly bool) error {
	how := unix.LOCK_EX
	if readOnly {
		how = unix.LOCK_SH
	}
	err := unix.Flock(int(m.f.Fd()), how|unix.LOCK_NB)
	if err == nil {
		return nil
	}
	if errors.Is(err, unix.EWOULDBLOCK) || errors.Is(err, unix.EAGAIN) {
		return ErrLockedByOther
	}
	return errors.Wrap(err, "flock failed")
}

// WaitLock retries Lock until it succeeds or timeout elapses (zero waits
// indefinitely), matching the teacher's waitflock loop in sys.go.
func (m *MappedFile) WaitLock(readOnly bool, timeout time.Duration) error {
	start := time.Now()
	for {
		err := m.Lock(readOnly)
		if !errors.Is(err, ErrLockedByOther) {
			return err
		}
		if timeout > 0 && time.Since(start) > timeout {
			return errors.New("timeout acquiring database lock")
		}
		time.Sleep(50 * time.Millisecond)
	}
}

// Unlock releases the advisory lock.
func (m *MappedFile) Unlock() error {
	return unix.Flock(int(m.f.Fd()), unix.LOCK_UN)
}
