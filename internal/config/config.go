// Package config holds the resolved configuration of one assembly run and the file layout it implies.
package config

import (
	"github.com/askiada/go-assembly-pipeline/internal/tools"
)

const (
	ProbeFastqcheck = "fastqcheck"
	ProbeNative     = "native"

	DefaultSpadesThreads = 16
)

// Config is the configuration of one run. Build it from user input with Validate and do not modify it afterwards.
type Config struct {
	// ForwardReads and ReverseReads are the paired-end FASTQ files, usually gzip compressed.
	ForwardReads string
	ReverseReads string

	// SampleID prefixes every final artifact.
	SampleID string

	// ResultsDir receives the final artifacts.
	ResultsDir string

	// SpadesDir and ImprovedDir are the intermediate directories of the assembler and improver stages.
	SpadesDir   string
	ImprovedDir string

	SpadesThreads int

	// DeleteTmp removes SpadesDir and ImprovedDir once the final artifacts are copied.
	DeleteTmp bool

	// ReadLengthProbe is either ProbeFastqcheck or ProbeNative.
	ReadLengthProbe string

	Executables tools.Executables

	// GraphFile and ReportFile are optional outputs describing the run.
	GraphFile  string
	ReportFile string
}

// Dependencies lists the executables the run needs.
func (c Config) Dependencies() []string {
	return c.Executables.Dependencies(c.ReadLengthProbe != ProbeNative)
}
