// Command assembly-pipeline assembles a bacterial genome de novo from paired Illumina reads with Spades,
// improves the assembly with improve_assembly and evaluates both with Quast.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	logging "github.com/op/go-logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/askiada/go-assembly-pipeline/internal/assembly"
)

const version = "1.0"

var log = logging.MustGetLogger("assembly-pipeline")

func newRootCommand() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:     "assembly-pipeline",
		Short:   "Pipeline for bacterial de novo assembly using Spades and improve_assembly from paired Illumina data",
		Version: version,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			err := bindConfig(v, cmd.Flags())
			if err != nil {
				return err
			}
			return setupLogging(cmd.ErrOrStderr(), v.GetString(flagLogLevel))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}

			runID := uuid.NewString()
			log.Infof("Run %s: assembling sample %s", runID, cfg.SampleID)

			return assembly.NewDriver(cfg, runOptions(cfg, runID)...).Run(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate("{{.Name}} version {{.Version}}\n")

	registerFlags(cmd.Flags())

	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		log.Error(err)
		os.Exit(255)
	}
}
