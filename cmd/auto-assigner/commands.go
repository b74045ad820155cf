package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"auto-assigner/internal/autoassign"
	"auto-assigner/internal/watch"
)

var (
	resolveFirst bool
	ownerPath    string
)

// errInvalid is returned by validate when fields are unassigned.
var errInvalid = errors.New("validation failed")

var resolveCmd = &cobra.Command{
	Use:   "resolve [fixture]",
	Short: "Resolve every tagged field in the active scope",
	Args:  cobra.ExactArgs(1),
	RunE:  runResolve,
}

var validateCmd = &cobra.Command{
	Use:   "validate [fixture]",
	Short: "Report tagged fields that are not assigned",
	Long: `Checks every tagged field in the active scope the way entering play
mode does. Exits non-zero when any field is nil, dead or an empty list.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

var refreshCmd = &cobra.Command{
	Use:   "refresh [fixture]",
	Short: "Clear and re-resolve the owners on one game object",
	Example: `  auto-assigner resolve examples/platformer/project.yaml
  auto-assigner refresh examples/platformer/project.yaml --owner Goblin`,
	Args: cobra.ExactArgs(1),
	RunE: runRefresh,
}

var watchCmd = &cobra.Command{
	Use:   "watch [fixture]",
	Short: "Resolve again whenever the fixture file changes",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func runResolve(cmd *cobra.Command, args []string) error {
	s, err := openSession(args[0])
	if err != nil {
		return err
	}
	defer s.Close()

	printPass(cmd.OutOrStdout(), s.coord.Pass())

	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	s, err := openSession(args[0])
	if err != nil {
		return err
	}
	defer s.Close()

	if resolveFirst {
		s.coord.RunPass()
	}

	report := s.coord.Validate()
	printValidation(cmd.OutOrStdout(), report)

	if !report.Valid() {
		return fmt.Errorf("%w: %w", errInvalid, report.Err)
	}

	return nil
}

func runRefresh(cmd *cobra.Command, args []string) error {
	s, err := openSession(args[0])
	if err != nil {
		return err
	}
	defer s.Close()

	owners, err := s.owners(ownerPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	report := autoassign.PassReport{Token: s.project.World.ActiveScope().Token, Ran: true}

	for _, o := range owners {
		r := s.coord.Refresh(o)
		report.Owners = append(report.Owners, autoassign.OwnerResult{Owner: o, Results: r.Results, Changed: r.Changed})
		report.Changed = report.Changed || r.Changed
	}

	printPass(out, report)

	if s.dirty() {
		fmt.Fprintln(out, "scope marked dirty")
	}

	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	current, err := openSession(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	bind := func(s *session) {
		s.coord.Init(s.project.World)
		s.project.World.Reload()
		fmt.Fprintf(out, "resolved %s (%d diagnostics)\n", path, len(s.diags.Errors)+len(s.diags.Warnings)+len(s.diags.Infos))
	}

	bind(current)

	// Reloads arrive serially on the watcher goroutine.
	reload := func() {
		next, err := openSession(path)
		if err != nil {
			logger.Warn("reload failed, keeping previous project", zap.Error(err))
			return
		}

		_ = current.Close()
		current = next
		bind(current)
	}

	w, err := watch.New(path, reload, logger)
	if err != nil {
		_ = current.Close()
		return err
	}

	if err := w.Start(ctx); err != nil {
		w.Stop()
		_ = current.Close()

		return err
	}

	<-ctx.Done()
	w.Stop()

	return current.Close()
}
