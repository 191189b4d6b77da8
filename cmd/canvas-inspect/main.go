// Command canvas-inspect loads a canvas snapshot, optionally applies a layout,
// and prints the resulting node table. It can also export the laid-out canvas
// as SVG and/or PNG in one pass.
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/mwestveld/newscanvas/pkg/config"
	"github.com/mwestveld/newscanvas/pkg/export"
	"github.com/mwestveld/newscanvas/pkg/layout"
	"github.com/mwestveld/newscanvas/pkg/snapshot"
	"github.com/mwestveld/newscanvas/pkg/state"
	"github.com/mwestveld/newscanvas/pkg/version"
)

func main() {
	modeFlag := flag.String("mode", "", "Layout mode: center-out, propagate, group-date, group-location, group-entity (empty = keep stored positions)")
	rootFlag := flag.String("root", "", "Root node ID for propagate mode (empty = highest ranked)")
	depthFlag := flag.Int("depth", config.DefaultDepth, "Drill depth for grouping modes")
	rankFlag := flag.String("rank", "degree", "Root ranking: degree or pagerank")
	mode3D := flag.Bool("3d", false, "Compute layered 3D depth instead of flat rings")
	svgOut := flag.String("svg", "", "Write an SVG snapshot to this path")
	pngOut := flag.String("png", "", "Write a PNG snapshot to this path")
	titleFlag := flag.String("title", "", "Title for exported snapshots")
	versionFlag := flag.Bool("version", false, "Show version")
	help := flag.Bool("help", false, "Show help")
	flag.Parse()

	if *help {
		fmt.Println("Usage: canvas-inspect [options] <snapshot.json>")
		fmt.Println("\nInspect and export news-canvas snapshots.")
		flag.PrintDefaults()
		os.Exit(0)
	}
	if *versionFlag {
		fmt.Printf("canvas-inspect %s\n", version.Version)
		os.Exit(0)
	}
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: canvas-inspect [options] <snapshot.json>")
		os.Exit(2)
	}

	mode, err := parseMode(*modeFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	ranking, err := parseRanking(*rankFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	tuningPath, err := config.TuningPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving tuning config path: %v\n", err)
		os.Exit(1)
	}
	tuning, err := config.LoadTuning(tuningPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading tuning config: %v\n", err)
		os.Exit(1)
	}

	doc, err := snapshot.Load(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading snapshot: %v\n", err)
		os.Exit(1)
	}

	st := state.NewStore()
	st.SetTuning(tuning)
	doc.Mount(st)

	if mode != "" {
		s := st.State()
		depth := mode.ClampDepth(*depthFlag)
		res := layout.Compute(mode, s.Nodes, s.Edges, layout.Options{
			RootID:  *rootFlag,
			Depth:   depth,
			Mode3D:  *mode3D,
			Ranking: ranking,
			Tuning:  tuning,
		})
		st.Dispatch(state.ApplyLayout{
			Positions: res.Positions,
			Groups:    res.Groups,
			Mode:      mode,
			Depth:     depth,
		})
	}

	printCanvas(os.Stdout, st)

	var g errgroup.Group
	final := st.State()
	opts := export.SnapshotOptions{
		Title: *titleFlag,
		Nodes: final.Nodes,
		Edges: final.Edges,
		Result: layout.Result{
			Positions: nil, // node positions already reflect the applied layout
			Groups:    final.LayoutGroups,
		},
	}
	if *svgOut != "" {
		svgOpts := opts
		svgOpts.Path = *svgOut
		g.Go(func() error { return export.SaveCanvasSnapshot(svgOpts) })
	}
	if *pngOut != "" {
		pngOpts := opts
		pngOpts.Path = *pngOut
		g.Go(func() error { return export.SaveCanvasSnapshot(pngOpts) })
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting snapshot: %v\n", err)
		os.Exit(1)
	}
}

func parseMode(s string) (layout.Mode, error) {
	switch layout.Mode(s) {
	case "", layout.ModeCenterOut, layout.ModePropagate,
		layout.ModeGroupDate, layout.ModeGroupLocation, layout.ModeGroupEntity:
		return layout.Mode(s), nil
	default:
		return "", fmt.Errorf("unknown layout mode %q", s)
	}
}

func parseRanking(s string) (layout.Ranking, error) {
	switch s {
	case "degree":
		return layout.RankDegree, nil
	case "pagerank":
		return layout.RankPageRank, nil
	default:
		return layout.RankDegree, fmt.Errorf("unknown ranking %q (want degree or pagerank)", s)
	}
}
