package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-assembly-pipeline/internal/config"
	"github.com/askiada/go-assembly-pipeline/internal/tools"
)

func parse(t *testing.T, args ...string) *viper.Viper {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	registerFlags(flags)
	require.NoError(t, flags.Parse(args))

	v := viper.New()
	require.NoError(t, bindConfig(v, flags))

	return v
}

func TestRawConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := rawConfig(parse(t, "-1", "S_1.fastq.gz", "-2", "S_2.fastq.gz", "-r", "results"))

	assert.Equal(t, config.Config{
		ForwardReads:    "S_1.fastq.gz",
		ReverseReads:    "S_2.fastq.gz",
		ResultsDir:      "results",
		SpadesThreads:   16,
		DeleteTmp:       true,
		ReadLengthProbe: config.ProbeFastqcheck,
		Executables:     tools.DefaultExecutables(),
	}, cfg)
}

func TestRawConfigFlags(t *testing.T) {
	t.Parallel()

	cfg := rawConfig(parse(t,
		"--forward_reads", "a_1.fastq.gz", "--reverse_reads", "a_2.fastq.gz",
		"-i", "A", "-r", "out", "-d=false", "-t", "8", "-s", "sp", "-m", "im",
		"--read_length_probe", "native", "--spades_exec", "/opt/spades.py",
		"--graph", "run.dot", "--report", "run.yaml",
	))

	assert.Equal(t, "A", cfg.SampleID)
	assert.False(t, cfg.DeleteTmp)
	assert.Equal(t, 8, cfg.SpadesThreads)
	assert.Equal(t, "sp", cfg.SpadesDir)
	assert.Equal(t, "im", cfg.ImprovedDir)
	assert.Equal(t, config.ProbeNative, cfg.ReadLengthProbe)
	assert.Equal(t, "/opt/spades.py", cfg.Executables.Spades)
	assert.Equal(t, "quast.py", cfg.Executables.Quast)
	assert.Equal(t, "run.dot", cfg.GraphFile)
	assert.Equal(t, "run.yaml", cfg.ReportFile)
}

func TestDeleteTmpFlag(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		args     []string
		expected bool
	}{
		"default":       {expected: true},
		"lower case":    {args: []string{"-d=false"}, expected: false},
		"capitalised":   {args: []string{"-d=False"}, expected: false},
		"numeric":       {args: []string{"--delete_tmp=0"}, expected: false},
		"bare flag":     {args: []string{"-d"}, expected: true},
		"explicit true": {args: []string{"--delete_tmp=True"}, expected: true},
	}

	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, rawConfig(parse(t, tc.args...)).DeleteTmp)
		})
	}
}

func TestDeleteTmpFlagRejectsWords(t *testing.T) {
	t.Parallel()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.SetOutput(&bytes.Buffer{})
	registerFlags(flags)
	assert.Error(t, flags.Parse([]string{"-d=no"}))
	assert.Contains(t, flags.Lookup(flagDeleteTmp).Usage, "-d=false")
}

func TestRawConfigEnvironment(t *testing.T) {
	t.Setenv("ASSEMBLY_SPADES_THREADS", "2")
	t.Setenv("ASSEMBLY_RESULTS_DIR", "from_env")

	cfg := rawConfig(parse(t, "-r", "from_flag"))
	assert.Equal(t, 2, cfg.SpadesThreads)
	assert.Equal(t, "from_flag", cfg.ResultsDir, "flags take precedence over the environment")
}

func TestRawConfigFile(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "assembly.yaml")
	require.NoError(t, os.WriteFile(file, []byte("sample_id: FROM_FILE\nspades_threads: 3\ndelete_tmp: false\n"), 0o600))

	cfg := rawConfig(parse(t, "--config", file, "-t", "5"))
	assert.Equal(t, "FROM_FILE", cfg.SampleID)
	assert.Equal(t, 5, cfg.SpadesThreads)
	assert.False(t, cfg.DeleteTmp)
}

func TestBindConfigMissingFile(t *testing.T) {
	t.Parallel()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	registerFlags(flags)
	require.NoError(t, flags.Parse([]string{"--config", filepath.Join(t.TempDir(), "absent.yaml")}))

	assert.Error(t, bindConfig(viper.New(), flags))
}

func TestRunOptions(t *testing.T) {
	t.Parallel()

	assert.Empty(t, runOptions(config.Config{}, "run"))
	assert.Len(t, runOptions(config.Config{GraphFile: "run.dot"}, "run"), 2)
	assert.Len(t, runOptions(config.Config{GraphFile: "run.dot", ReportFile: "run.yaml"}, "run"), 3)
}

func TestVersion(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cmd := newRootCommand()
	cmd.SetOut(out)
	cmd.SetArgs([]string{"--version"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "assembly-pipeline version 1.0\n", out.String())
}

func TestSetupLoggingInvalidLevel(t *testing.T) {
	t.Parallel()

	assert.Error(t, setupLogging(&bytes.Buffer{}, "LOUD"))
}
