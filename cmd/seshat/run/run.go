package run

import (
	"fmt"
	"os"

	"github.com/flarebyte/seshat-scribe/internal/config"
	"github.com/flarebyte/seshat-scribe/internal/gitclient"
	"github.com/flarebyte/seshat-scribe/internal/stage"
	"github.com/spf13/cobra"
)

var (
	cfgPath     string
	outputsPath string
)

// Cmd represents the `seshat run` command.
var Cmd = &cobra.Command{
	Use:           "run",
	Short:         "Commit and push pending working-tree changes in size-bounded chunks",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfgPath == "" {
			return fmt.Errorf("missing required flag: --config")
		}
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		deps := stage.Deps{Git: gitclient.New(cfg.Repo)}
		env, runErr := executePipeline(cmd.Context(), cfg, deps)

		// Outputs go out on every exit path, before any failure is raised.
		if err := publishOutputs(env, os.Stdout, outputsTarget()); err != nil && runErr == nil {
			runErr = err
		}
		if runErr != nil {
			reportDeferred(env, cmdStderr)
			return runErr
		}
		return evaluateRunExit(env, cmdStderr)
	},
}

func outputsTarget() string {
	if outputsPath != "" {
		return outputsPath
	}
	return os.Getenv(outputsEnv)
}

func init() {
	Cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to config file (.cue or .yaml)")
	Cmd.Flags().StringVarP(&outputsPath, "outputs", "o", "", "Path to a key=value outputs file (defaults to $SESHAT_OUTPUT)")
}
