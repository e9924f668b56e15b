package tools

import (
	"os/exec"

	logging "github.com/op/go-logging"
	"github.com/pkg/errors"
)

var log = logging.MustGetLogger("tools")

// LookPathFunc resolves an executable name to a path. exec.LookPath is the default.
type LookPathFunc func(file string) (string, error)

// CheckDependencies makes sure every executable resolves, and stops at the first one that does not.
func CheckDependencies(deps []string, lookPath LookPathFunc) error {
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	log.Info("Making sure dependencies exist...")
	for _, dep := range deps {
		path, err := lookPath(dep)
		if err != nil {
			log.Errorf("%s is NOT installed!", dep)
			return errors.Wrapf(ErrDependencyMissing, "%s: %v", dep, err)
		}
		log.Infof("%s is installed! (%s)", dep, path)
	}

	return nil
}
