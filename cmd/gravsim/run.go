package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/alvinng4/gravsim/catalog"
	"github.com/alvinng4/gravsim/diagnostics"
	"github.com/alvinng4/gravsim/gravlog"
	"github.com/alvinng4/gravsim/integrate"
	"github.com/alvinng4/gravsim/nbstate"
	"github.com/alvinng4/gravsim/progress"
	"github.com/alvinng4/gravsim/resultio"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRunCmd(log *gravlog.Logger) *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one N-body integration to completion and write a result file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, v)
			if err != nil {
				return err
			}
			return runSimulation(cmd, log, cfg)
		},
	}
	bindRunFlags(cmd, v)
	return cmd
}

func runSimulation(cmd *cobra.Command, log *gravlog.Logger, cfg Config) error {
	b, err := loadSystem(cfg)
	if err != nil {
		return err
	}

	scheme, err := integrate.ParseScheme(cfg.Integrator)
	if err != nil {
		return err
	}
	opts := integrate.DefaultOptions(catalog.G)
	opts.Dt = cfg.Dt
	opts.Tolerance = cfg.Tolerance
	stepper, err := integrate.New(scheme, opts)
	if err != nil {
		return err
	}

	rec, err := nbstate.NewRecorder(cfg.StoreEveryN)
	if err != nil {
		return err
	}

	cancel := make(chan struct{})
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt)
	defer signal.Stop(sigc)
	go func() {
		if _, ok := <-sigc; ok {
			log.Warnf("interrupt received, cancelling run")
			close(cancel)
		}
	}()

	prog := progress.Sink(progress.Noop{})
	if !quiet(cmd) {
		prog = progress.NewTerminal(cmd.ErrOrStderr(), 500*time.Millisecond)
	}

	start := time.Now()
	result, err := integrate.RunToCompletion(stepper, b, cfg.Tf, rec, cancel, prog)
	elapsed := time.Since(start)
	for _, w := range result.Warnings {
		log.Warnf("%s", w)
	}
	if err != nil && !result.Cancelled {
		return err
	}
	if result.Cancelled {
		log.Warnf("run cancelled after %d steps", result.Steps)
	}

	frames := rec.Frames()
	energy, _ := diagnostics.Series(frames, b.M, catalog.G, progress.Noop{})

	meta := resultio.Meta{
		SaveDate:    time.Now().UTC().Format(time.RFC3339),
		System:      cfg.System,
		Integrator:  cfg.Integrator,
		N:           b.N,
		TfDays:      cfg.Tf,
		Dt:          cfg.Dt,
		Tolerance:   cfg.Tolerance,
		DataSize:    len(frames),
		StoreEveryN: cfg.StoreEveryN,
		RunTimeSec:  elapsed.Seconds(),
		Masses:      b.M,
	}

	out := cmd.OutOrStdout()
	if cfg.Out != "" {
		f, err := os.Create(cfg.Out)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	if err := resultio.Write(out, meta, frames, energy); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d samples in %s\n", len(frames), elapsed)
	return nil
}

func loadSystem(cfg Config) (nbstate.Bodies, error) {
	if cfg.System != catalog.Custom {
		return catalog.Load(cfg.System)
	}
	if cfg.Custom == "" {
		return nbstate.Bodies{}, fmt.Errorf("--system=custom requires --custom=<file.csv>")
	}
	f, err := os.Open(cfg.Custom)
	if err != nil {
		return nbstate.Bodies{}, err
	}
	defer f.Close()
	systems, err := catalog.ReadCustom(f)
	if err != nil {
		return nbstate.Bodies{}, err
	}
	if len(systems) == 0 {
		return nbstate.Bodies{}, fmt.Errorf("%s contains no systems", cfg.Custom)
	}
	s := systems[0]
	return nbstate.NewBodies(s.M, s.X, s.V, 0)
}

func quiet(cmd *cobra.Command) bool {
	q, _ := cmd.Flags().GetBool("quiet")
	return q
}
