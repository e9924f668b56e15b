package main

import (
	"io"
	"os"
	"strings"

	logging "github.com/op/go-logging"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/askiada/go-assembly-pipeline/internal/config"
	"github.com/askiada/go-assembly-pipeline/internal/tools"
	"github.com/askiada/go-assembly-pipeline/pkg/pipeline/drawer"
	"github.com/askiada/go-assembly-pipeline/pkg/pipeline/measure"
	"github.com/askiada/go-assembly-pipeline/pkg/pipeline/model"
	"github.com/askiada/go-assembly-pipeline/pkg/pipeline/report"
)

const (
	flagForwardReads    = "forward_reads"
	flagReverseReads    = "reverse_reads"
	flagSampleID        = "sample_id"
	flagResultsDir      = "results_dir"
	flagDeleteTmp       = "delete_tmp"
	flagSpadesThreads   = "spades_threads"
	flagSpadesDir       = "spades_dir"
	flagImprovedDir     = "improved_dir"
	flagConfig          = "config"
	flagLogLevel        = "log_level"
	flagReadLengthProbe = "read_length_probe"
	flagFastqcheckExec  = "fastqcheck_exec"
	flagSpadesExec      = "spades_exec"
	flagImproveExec     = "improve_assembly_exec"
	flagQuastExec       = "quast_exec"
	flagGraph           = "graph"
	flagReport          = "report"
)

const envPrefix = "ASSEMBLY"

const logFormat = `%{time:2006-01-02 15:04:05,000} %{level}: %{message}`

func registerFlags(flags *pflag.FlagSet) {
	defaults := tools.DefaultExecutables()

	flags.StringP(flagForwardReads, "1", "", "fastq file with forward reads")
	flags.StringP(flagReverseReads, "2", "", "fastq file with reverse reads")
	flags.StringP(flagSampleID, "i", "", "sample id used as prefix to name output files (derived from the fastq file names when unset)")
	flags.StringP(flagResultsDir, "r", "", "directory to store pipeline's final assembly")
	flags.BoolP(flagDeleteTmp, "d", true, "delete assembly files once the final assembly is copied (use -d=false to keep them)")

	flags.IntP(flagSpadesThreads, "t", config.DefaultSpadesThreads, "number of threads used by Spades")
	flags.StringP(flagSpadesDir, "s", "", "directory to store Spades resulting files")
	flags.StringP(flagImprovedDir, "m", "", "directory to store improve_assembly resulting files")

	flags.String(flagConfig, "", "yaml, json or toml file holding any of the flags")
	flags.String(flagLogLevel, "INFO", "log level (DEBUG, INFO, WARNING, ERROR)")
	flags.String(flagReadLengthProbe, config.ProbeFastqcheck, "how read lengths are measured: fastqcheck or native")
	flags.String(flagFastqcheckExec, defaults.Fastqcheck, "fastqcheck executable")
	flags.String(flagSpadesExec, defaults.Spades, "Spades executable")
	flags.String(flagImproveExec, defaults.ImproveAssembly, "improve_assembly executable")
	flags.String(flagQuastExec, defaults.Quast, "Quast executable")
	flags.String(flagGraph, "", "write a DOT graph of the stages and their timings to this file")
	flags.String(flagReport, "", "write a YAML report of the run to this file")
}

// bindConfig layers the flags over ASSEMBLY_* environment variables and the optional config file.
func bindConfig(v *viper.Viper, flags *pflag.FlagSet) error {
	err := v.BindPFlags(flags)
	if err != nil {
		return errors.Wrap(err, "unable to bind flags")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file := v.GetString(flagConfig); file != "" {
		v.SetConfigFile(file)
		err := v.ReadInConfig()
		if err != nil {
			return errors.Wrapf(err, "unable to read config file %s", file)
		}
	}

	return nil
}

func rawConfig(v *viper.Viper) config.Config {
	return config.Config{
		ForwardReads:    v.GetString(flagForwardReads),
		ReverseReads:    v.GetString(flagReverseReads),
		SampleID:        v.GetString(flagSampleID),
		ResultsDir:      v.GetString(flagResultsDir),
		SpadesDir:       v.GetString(flagSpadesDir),
		ImprovedDir:     v.GetString(flagImprovedDir),
		SpadesThreads:   v.GetInt(flagSpadesThreads),
		DeleteTmp:       v.GetBool(flagDeleteTmp),
		ReadLengthProbe: v.GetString(flagReadLengthProbe),
		Executables: tools.Executables{
			Fastqcheck:      v.GetString(flagFastqcheckExec),
			Spades:          v.GetString(flagSpadesExec),
			ImproveAssembly: v.GetString(flagImproveExec),
			Quast:           v.GetString(flagQuastExec),
		},
		GraphFile:  v.GetString(flagGraph),
		ReportFile: v.GetString(flagReport),
	}
}

func loadConfig(v *viper.Viper) (config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return config.Config{}, errors.Wrap(err, "unable to get working directory")
	}

	return config.Validate(rawConfig(v), cwd)
}

// runOptions returns the pipeline options producing the graph and the report requested by cfg.
func runOptions(cfg config.Config, runID string) []model.PipelineOption {
	var opts []model.PipelineOption

	if cfg.GraphFile != "" {
		m := measure.NewDefaultMeasure()
		opts = append(opts, measure.PipelineMeasure(m), drawer.PipelineDrawer(drawer.NewDOTDrawer(cfg.GraphFile), m))
	}

	if cfg.ReportFile != "" {
		opts = append(opts, report.PipelineReport(cfg.ReportFile, runID, map[string]string{
			"sample_id":     cfg.SampleID,
			"forward_reads": cfg.ForwardReads,
			"reverse_reads": cfg.ReverseReads,
			"results_dir":   cfg.ResultsDir,
			"spades_dir":    cfg.SpadesDir,
			"improved_dir":  cfg.ImprovedDir,
		}))
	}

	return opts
}

func setupLogging(w io.Writer, level string) error {
	lvl, err := logging.LogLevel(level)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", level)
	}

	backend := logging.NewLogBackend(w, "", 0)
	formatted := logging.NewBackendFormatter(backend, logging.MustStringFormatter(logFormat))
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(lvl, "")
	logging.SetBackend(leveled)

	return nil
}
