//go:build !unix

package exec

import (
	"os"

	"github.com/fwojciec/skeptic"
)

func suspend(*os.Process) error {
	return skeptic.Errorf(skeptic.ENOTSUPPORTED, "pausing speech is not supported on this platform")
}

func resume(*os.Process) error {
	return skeptic.Errorf(skeptic.ENOTSUPPORTED, "resuming speech is not supported on this platform")
}
