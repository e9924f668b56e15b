// Package tools describes the external programs the assembly pipeline delegates to:
// which executables are required, how their command lines are built and how they are run.
package tools

import "strconv"

// Executables holds the name or path of every external tool.
// A bare name is resolved on PATH.
type Executables struct {
	Fastqcheck      string
	Spades          string
	ImproveAssembly string
	Quast           string
}

// DefaultExecutables returns the executable names the tools install under.
func DefaultExecutables() Executables {
	return Executables{
		Fastqcheck:      "fastqcheck",
		Spades:          "spades.py",
		ImproveAssembly: "improve_assembly",
		Quast:           "quast.py",
	}
}

// Dependencies lists the executables a run needs, in the order they are checked.
// fastqcheck is only needed when read lengths are probed with it.
func (e Executables) Dependencies(withFastqcheck bool) []string {
	deps := make([]string, 0, 4)
	if withFastqcheck {
		deps = append(deps, e.Fastqcheck)
	}

	return append(deps, e.Spades, e.ImproveAssembly, e.Quast)
}

// FastqcheckCommand reads a FASTQ stream on stdin and writes its statistics on stdout.
func (e Executables) FastqcheckCommand() Command {
	return Command{Name: e.Fastqcheck}
}

// SpadesCommand assembles the paired reads into outDir using the k-mer list kmers.
func (e Executables) SpadesCommand(kmers, forward, reverse, outDir string, threads int) Command {
	return Command{
		Name: e.Spades,
		Args: []string{
			"-k", kmers,
			"--careful",
			"-1", forward, "-2", reverse,
			"-o", outDir, "-t", strconv.Itoa(threads),
		},
	}
}

// ImproveAssemblyCommand scaffolds and gap-fills assembly using the paired reads.
func (e Executables) ImproveAssemblyCommand(assembly, forward, reverse, outDir string) Command {
	return Command{
		Name: e.ImproveAssembly,
		Args: []string{
			"-a", assembly,
			"-f", forward, "-r", reverse,
			"-o", outDir,
		},
	}
}

// QuastCommand evaluates assembly and writes its reports, transposed_report.tsv included, into outDir.
func (e Executables) QuastCommand(assembly, outDir string) Command {
	return Command{
		Name: e.Quast,
		Args: []string{
			assembly,
			"--fast",
			"--threads", "1",
			"-o", outDir,
		},
	}
}
