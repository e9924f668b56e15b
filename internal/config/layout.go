package config

import "path/filepath"

// Names of the files the external tools produce in their output directory.
const (
	ContigsFile       = "contigs.fasta"
	QualityReportFile = "transposed_report.tsv"
	ImprovedFile      = "scaffolds.scaffolded.gapfilled.length_filtered.sorted.fa"
)

// Artifact is a stage output and the name it is published under in the results directory.
type Artifact struct {
	Source      string
	Destination string
}

// ImprovedFinalName is the name of the final improved assembly. Its presence marks a finished run.
func ImprovedFinalName(sampleID string) string {
	return sampleID + ".spades.improved.fasta"
}

func (c Config) SpadesAssembly() string {
	return filepath.Join(c.SpadesDir, ContigsFile)
}

func (c Config) SpadesQualityReport() string {
	return filepath.Join(c.SpadesDir, QualityReportFile)
}

func (c Config) ImprovedAssembly() string {
	return filepath.Join(c.ImprovedDir, ImprovedFile)
}

func (c Config) ImprovedQualityReport() string {
	return filepath.Join(c.ImprovedDir, QualityReportFile)
}

// FinalArtifacts lists the four files copied into the results directory at the end of a run.
func (c Config) FinalArtifacts() []Artifact {
	return []Artifact{
		{Source: c.SpadesAssembly(), Destination: filepath.Join(c.ResultsDir, c.SampleID+".spades.contigs.fasta")},
		{Source: c.ImprovedAssembly(), Destination: filepath.Join(c.ResultsDir, ImprovedFinalName(c.SampleID))},
		{Source: c.SpadesQualityReport(), Destination: filepath.Join(c.ResultsDir, c.SampleID+".spades.contigs.quast.csv")},
		{Source: c.ImprovedQualityReport(), Destination: filepath.Join(c.ResultsDir, c.SampleID+".spades.improved.quast.csv")},
	}
}
