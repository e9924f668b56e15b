package config

import (
	"os"
	"path/filepath"
	"strings"

	logging "github.com/op/go-logging"
	"github.com/pkg/errors"

	"github.com/askiada/go-assembly-pipeline/internal/tools"
)

var log = logging.MustGetLogger("config")

var (
	ErrMissingArgument  = errors.New("missing required argument")
	ErrInputNotFound    = errors.New("input file not found")
	ErrSampleIDMismatch = errors.New("fastq files have a different prefix")
	ErrOutputExists     = errors.New("final pipeline file already exists")
	ErrInvalidThreads   = errors.New("thread count must be at least 1")
	ErrInvalidProbe     = errors.New("unknown read length probe")
	ErrOverlappingDirs  = errors.New("directories overlap")
)

const (
	forwardSuffix = "_1.fastq.gz"
	reverseSuffix = "_2.fastq.gz"
)

// CheckInput makes sure path is an existing regular file.
func CheckInput(path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		log.Errorf("Cannot find file %s!", path)
		return errors.Wrap(ErrInputNotFound, path)
	}
	log.Infof("%s found", path)

	return nil
}

// SampleIDFromReads derives the sample id from the read file names: "X_1.fastq.gz" and "X_2.fastq.gz" give "X".
// Both names must give the same id.
func SampleIDFromReads(forward, reverse string) (string, error) {
	forwardID := strings.TrimSpace(strings.TrimSuffix(filepath.Base(forward), forwardSuffix))
	reverseID := strings.TrimSpace(strings.TrimSuffix(filepath.Base(reverse), reverseSuffix))

	if forwardID != reverseID {
		log.Errorf("Fastq files have a different prefix! (%s, %s)", forwardID, reverseID)
		return "", errors.Wrapf(ErrSampleIDMismatch, "%q and %q", forwardID, reverseID)
	}
	if forwardID == "" {
		return "", errors.Wrap(ErrMissingArgument, "sample id cannot be derived from the fastq file names")
	}

	return forwardID, nil
}

func absPath(cwd, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}

	return filepath.Join(cwd, path)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// within reports whether path is dir or lies under it. Both must be clean absolute paths.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}

	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// checkLayout makes sure removing or sharing the intermediate directories cannot touch the inputs,
// the results or the completion marker of another stage.
func checkLayout(cfg Config, cwd string) error {
	if cfg.SpadesDir == cfg.ImprovedDir {
		return errors.Wrapf(ErrOverlappingDirs, "spades and improved directories are both %s", cfg.SpadesDir)
	}

	for _, dir := range []string{cfg.SpadesDir, cfg.ImprovedDir} {
		if within(cfg.ResultsDir, dir) {
			return errors.Wrapf(ErrOverlappingDirs, "results directory %s is inside %s", cfg.ResultsDir, dir)
		}
		if within(filepath.Clean(cwd), dir) {
			return errors.Wrapf(ErrOverlappingDirs, "working directory %s is inside %s", cwd, dir)
		}
		if !cfg.DeleteTmp {
			continue
		}
		for _, reads := range []string{cfg.ForwardReads, cfg.ReverseReads} {
			if within(reads, dir) {
				return errors.Wrapf(ErrOverlappingDirs, "%s would be deleted with %s", reads, dir)
			}
		}
	}

	return nil
}

func withDefaultExecutables(exes tools.Executables) tools.Executables {
	defaults := tools.DefaultExecutables()
	if exes.Fastqcheck == "" {
		exes.Fastqcheck = defaults.Fastqcheck
	}
	if exes.Spades == "" {
		exes.Spades = defaults.Spades
	}
	if exes.ImproveAssembly == "" {
		exes.ImproveAssembly = defaults.ImproveAssembly
	}
	if exes.Quast == "" {
		exes.Quast = defaults.Quast
	}

	return exes
}

// Validate checks the user input and fills in everything left unset. Relative paths are resolved against cwd.
//
// It fails when a read file is missing, when the sample id cannot be derived, when the final improved assembly
// already exists in cwd or in the results directory, or when the intermediate directories overlap each other,
// the working directory or the results directory.
func Validate(raw Config, cwd string) (Config, error) {
	cfg := raw

	if cfg.ForwardReads == "" || cfg.ReverseReads == "" {
		return Config{}, errors.Wrap(ErrMissingArgument, "forward and reverse reads are required")
	}
	if cfg.ResultsDir == "" {
		return Config{}, errors.Wrap(ErrMissingArgument, "results directory is required")
	}
	if cfg.SpadesThreads < 1 {
		return Config{}, errors.Wrapf(ErrInvalidThreads, "got %d", cfg.SpadesThreads)
	}

	switch cfg.ReadLengthProbe {
	case "":
		cfg.ReadLengthProbe = ProbeFastqcheck
	case ProbeFastqcheck, ProbeNative:
	default:
		return Config{}, errors.Wrap(ErrInvalidProbe, cfg.ReadLengthProbe)
	}

	cfg.ForwardReads = absPath(cwd, cfg.ForwardReads)
	cfg.ReverseReads = absPath(cwd, cfg.ReverseReads)
	for _, reads := range []string{cfg.ForwardReads, cfg.ReverseReads} {
		err := CheckInput(reads)
		if err != nil {
			return Config{}, err
		}
	}

	cfg.SampleID = strings.TrimSpace(cfg.SampleID)
	if cfg.SampleID == "" {
		sampleID, err := SampleIDFromReads(cfg.ForwardReads, cfg.ReverseReads)
		if err != nil {
			return Config{}, err
		}
		cfg.SampleID = sampleID
	}

	cfg.ResultsDir = absPath(cwd, cfg.ResultsDir)
	for _, dir := range []string{cwd, cfg.ResultsDir} {
		final := filepath.Join(dir, ImprovedFinalName(cfg.SampleID))
		if fileExists(final) {
			log.Errorf("Final pipeline file found %s! Exiting...", final)
			return Config{}, errors.Wrap(ErrOutputExists, final)
		}
	}

	if cfg.SpadesDir == "" {
		cfg.SpadesDir = cfg.SampleID + "_spades"
	}
	cfg.SpadesDir = absPath(cwd, cfg.SpadesDir)
	if cfg.ImprovedDir == "" {
		cfg.ImprovedDir = cfg.SampleID + "_improved"
	}
	cfg.ImprovedDir = absPath(cwd, cfg.ImprovedDir)

	err := checkLayout(cfg, cwd)
	if err != nil {
		log.Errorf("Invalid directory layout: %v", err)
		return Config{}, err
	}

	cfg.Executables = withDefaultExecutables(cfg.Executables)

	if cfg.GraphFile != "" {
		cfg.GraphFile = absPath(cwd, cfg.GraphFile)
	}
	if cfg.ReportFile != "" {
		cfg.ReportFile = absPath(cwd, cfg.ReportFile)
	}

	return cfg, nil
}
