package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"auto-assigner/examples/platformer"
	"auto-assigner/internal/analyze"
	"auto-assigner/internal/autoassign"
	"auto-assigner/internal/config"
	"auto-assigner/internal/diagnostic"
	"auto-assigner/internal/fixture"
	"auto-assigner/internal/host"
)

// session is a loaded fixture with a coordinator bound to it.
type session struct {
	project *fixture.Project
	coord   *autoassign.Coordinator
	diags   *diagnostic.Collector
}

func projectTypes() *fixture.Types {
	types := fixture.NewTypes()
	platformer.Register(types)

	return types
}

func loadConfig() (*config.Config, autoassign.Config, error) {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return nil, autoassign.Config{}, err
	}

	coordCfg, err := cfg.Coordinator()
	if err != nil {
		return nil, autoassign.Config{}, err
	}

	return cfg, coordCfg, nil
}

func openSession(path string) (*session, error) {
	cfg, coordCfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	project, err := fixture.LoadFile(path, projectTypes())
	if err != nil {
		return nil, err
	}

	registry := analyze.NewRegistry()
	platformer.Owners(registry)

	diags := &diagnostic.Collector{}
	sink := diagnostic.Tee{diagnostic.NewLogSink(logger, cfg.LogPrefix), diags}

	coord := autoassign.New(autoassign.Deps{
		Structure:   project.World,
		Assets:      project.Assets,
		Persistence: project.World,
		Player:      project.World,
		Sink:        sink,
		Registry:    registry,
		Logger:      logger,
	}, coordCfg)

	return &session{project: project, coord: coord, diags: diags}, nil
}

func (s *session) Close() error {
	s.coord.Shutdown()
	return s.project.Close()
}

// owners returns the tagged owners attached to the game object at path in
// the active scope. The first path segment names a root.
func (s *session) owners(path string) ([]host.Component, error) {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil, errors.New("empty owner path")
	}

	rootName, rest, _ := strings.Cut(path, "/")

	var target host.Node

	for _, r := range s.project.World.ActiveScope().Roots {
		if r.Name() == rootName {
			target = r.Find(rest)
			break
		}
	}

	if target == nil {
		return nil, fmt.Errorf("no game object at %q", path)
	}

	var owners []host.Component

	for _, c := range target.Components() {
		if s.coord.HasTaggedFields(c) {
			owners = append(owners, c)
		}
	}

	if len(owners) == 0 {
		return nil, fmt.Errorf("%q has no components with auto-assigned fields", path)
	}

	return owners, nil
}

func printPass(w io.Writer, report autoassign.PassReport) {
	if !report.Ran {
		fmt.Fprintln(w, "no scope open")
		return
	}

	fmt.Fprintf(w, "scope %s: %d owners, %d fields assigned\n", report.Token, len(report.Owners), report.Fields())

	for _, o := range report.Owners {
		fmt.Fprintf(w, "  %s\n", analyze.Describe(o.Owner))

		for _, r := range o.Results {
			fmt.Fprintf(w, "    %-12s %s", r.Field, r.Status)

			if len(r.Values) > 0 {
				fmt.Fprintf(w, " -> %s", describeAll(r.Values))
			}

			if r.Err != nil {
				fmt.Fprintf(w, " (%v)", r.Err)
			}

			fmt.Fprintln(w)
		}
	}

	if dump {
		spew.Fdump(w, report)
	}
}

func describeAll(objs []host.Object) string {
	parts := make([]string, 0, len(objs))
	for _, o := range objs {
		parts = append(parts, o.Name())
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

func printValidation(w io.Writer, report autoassign.Report) {
	if report.Valid() {
		fmt.Fprintf(w, "scope %s: %d owners, all tagged fields assigned\n", report.Token, report.Owners)
		return
	}

	fmt.Fprintf(w, "scope %s: %d unassigned fields\n", report.Token, len(report.Violations))

	for _, v := range report.Violations {
		fmt.Fprintf(w, "  %s.%s\n", v.OwnerType, v.Field)
	}

	if dump {
		spew.Fdump(w, report.Violations)
	}
}

// dirty reports whether the active unit has unsaved changes.
func (s *session) dirty() bool {
	return s.project.World.DirtyCount(s.project.World.ActiveScope().Token) > 0
}
