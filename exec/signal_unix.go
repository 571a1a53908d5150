//go:build unix

package exec

import (
	"os"
	"syscall"

	"github.com/fwojciec/skeptic"
)

func suspend(p *os.Process) error {
	if err := p.Signal(syscall.SIGSTOP); err != nil {
		return skeptic.WrapErrorf(err, skeptic.EINTERNAL, "pausing speech")
	}
	return nil
}

func resume(p *os.Process) error {
	if err := p.Signal(syscall.SIGCONT); err != nil {
		return skeptic.WrapErrorf(err, skeptic.EINTERNAL, "resuming speech")
	}
	return nil
}
