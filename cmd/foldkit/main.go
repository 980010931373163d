// Command foldkit folds lines of input through a pipeline of expression
// stages and prints the result.
//
//	seq 1 20 | foldkit --stage 'filter:x % 2 == 0' --stage 'transform:x * x' --terminal sum
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/kbukum/foldkit/config"
	"github.com/kbukum/foldkit/errors"
	"github.com/kbukum/foldkit/logger"
	"github.com/kbukum/foldkit/plan"
	"github.com/kbukum/foldkit/version"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit status.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("foldkit", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	config.RegisterFlags(flags)
	showVersion := flags.BoolP("version", "v", false, "print version and exit")
	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return errors.ExitCode(errors.ErrCodeInvalidConfig)
	}
	if *showVersion {
		fmt.Fprintln(stdout, "foldkit", version.GetFullVersion())
		return 0
	}

	cfg, err := config.Load(config.WithFlags(flags))
	if err != nil {
		fmt.Fprintln(stderr, "foldkit:", err)
		return errors.ExitCode(errors.CodeOf(err))
	}
	log := logger.NewWithWriter(&cfg.Log, "foldkit", stderr)
	logger.SetGlobalLogger(log)

	if err := execute(ctx, cfg, log, stdin, stdout); err != nil {
		log.Error("run failed", logger.ErrorFields("run", err))
		return errors.ExitCode(errors.CodeOf(err))
	}
	return 0
}

func execute(ctx context.Context, cfg *config.Config, log *logger.Logger, stdin io.Reader, stdout io.Writer) error {
	p, err := plan.New(cfg.Pipeline)
	if err != nil {
		return err
	}
	it, err := plan.Open(cfg.Inputs, stdin)
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			log.Info("received signal, canceling run", logger.Fields("signal", sig.String()))
			cancel()
		case <-runCtx.Done():
		}
	}()

	log.Info("running pipeline", logger.Fields(
		logger.FieldStages, p.Stages(),
		logger.FieldTerminal, p.Terminal(),
		"inputs", len(cfg.Inputs),
	))
	res, err := p.Run(runCtx, it)
	if err != nil {
		return err
	}
	for _, line := range res.Lines() {
		if _, err := fmt.Fprintln(stdout, line); err != nil {
			return errors.Internal(err).WithDetail(logger.FieldOperation, "write")
		}
	}
	return nil
}
