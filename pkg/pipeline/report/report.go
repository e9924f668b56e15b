// Package report writes a YAML summary of a pipeline run.
package report

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type StageReport struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Output   string `yaml:"output,omitempty"`
	Status   string `yaml:"status"`
	Duration string `yaml:"duration,omitempty"`
	Error    string `yaml:"error,omitempty"`
}

type Report struct {
	RunID    string            `yaml:"run_id"`
	Status   string            `yaml:"status"`
	Started  time.Time         `yaml:"started"`
	Finished time.Time         `yaml:"finished"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
	Stages   []StageReport     `yaml:"stages"`
}

// Write stores the report at path, replacing any existing file.
func Write(path string, rep *Report) error {
	data, err := yaml.Marshal(rep)
	if err != nil {
		return errors.Wrap(err, "unable to marshal report")
	}

	err = os.WriteFile(path, data, 0o644) //nolint:gosec
	if err != nil {
		return errors.Wrapf(err, "unable to write report %s", path)
	}

	return nil
}

// Read loads a report written by Write.
func Read(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read report %s", path)
	}

	rep := &Report{}
	err = yaml.Unmarshal(data, rep)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to unmarshal report %s", path)
	}

	return rep, nil
}
