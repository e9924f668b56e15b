package assembly_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-assembly-pipeline/internal/assembly"
	"github.com/askiada/go-assembly-pipeline/internal/config"
	"github.com/askiada/go-assembly-pipeline/pkg/pipeline/model"
)

func finalizeConfig(t *testing.T, deleteTmp bool) config.Config {
	t.Helper()
	work := t.TempDir()

	return config.Config{
		SampleID:    "ERR42",
		ResultsDir:  filepath.Join(work, "nested", "results"),
		SpadesDir:   filepath.Join(work, "ERR42_spades"),
		ImprovedDir: filepath.Join(work, "ERR42_improved"),
		DeleteTmp:   deleteTmp,
	}
}

func seedArtifacts(t *testing.T, cfg config.Config) map[string][]byte {
	t.Helper()
	contents := map[string][]byte{}
	for i, artifact := range cfg.FinalArtifacts() {
		content := []byte{byte(i), '>', 'c', 'o', 'n', 't', 'i', 'g', '\n', 0xff}
		require.NoError(t, os.MkdirAll(filepath.Dir(artifact.Source), 0o755))
		require.NoError(t, os.WriteFile(artifact.Source, content, 0o600))
		contents[artifact.Destination] = content
	}

	return contents
}

func TestFinalize(t *testing.T) {
	t.Parallel()

	cfg := finalizeConfig(t, false)
	contents := seedArtifacts(t, cfg)

	require.NoError(t, assembly.Finalize(cfg))

	entries, err := os.ReadDir(cfg.ResultsDir)
	require.NoError(t, err)
	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.Name()
	}
	assert.ElementsMatch(t, []string{
		"ERR42.spades.contigs.fasta",
		"ERR42.spades.improved.fasta",
		"ERR42.spades.contigs.quast.csv",
		"ERR42.spades.improved.quast.csv",
	}, names)

	for dst, expected := range contents {
		got, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, expected, got, dst)
	}
	assert.DirExists(t, cfg.SpadesDir)
	assert.DirExists(t, cfg.ImprovedDir)
}

func TestFinalizeDeletesIntermediateDirectories(t *testing.T) {
	t.Parallel()

	cfg := finalizeConfig(t, true)
	seedArtifacts(t, cfg)

	require.NoError(t, assembly.Finalize(cfg))

	assert.NoDirExists(t, cfg.SpadesDir)
	assert.NoDirExists(t, cfg.ImprovedDir)
	for _, artifact := range cfg.FinalArtifacts() {
		assert.FileExists(t, artifact.Destination)
	}
}

func TestFinalizeMissingArtifact(t *testing.T) {
	t.Parallel()

	cfg := finalizeConfig(t, true)
	seedArtifacts(t, cfg)
	require.NoError(t, os.Remove(cfg.ImprovedQualityReport()))

	err := assembly.Finalize(cfg)
	require.Error(t, err)
	assert.DirExists(t, cfg.SpadesDir, "nothing is removed when a copy fails")
	assert.DirExists(t, cfg.ImprovedDir)
}

func TestPublish(t *testing.T) {
	t.Parallel()

	cfg := finalizeConfig(t, true)
	seedArtifacts(t, cfg)

	stage := assembly.Publish(cfg)
	assert.Equal(t, assembly.PublishStage, stage.Name())
	assert.Equal(t, model.PublishStageType, stage.Type)
	assert.Equal(t, filepath.Join(cfg.ResultsDir, "ERR42.spades.improved.fasta"), stage.Output())
	assert.False(t, stage.IsComplete())

	require.NoError(t, stage.Run(context.Background()))
	assert.True(t, stage.IsComplete())
	assert.NoDirExists(t, cfg.SpadesDir)
}
