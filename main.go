package main

/* Tim Henderson (tadh@case.edu)
*
* Copyright (c) 2015, Tim Henderson, Case Western Reserve University
* Cleveland, Ohio 44106. All Rights Reserved.
*
* This library is free software; you can redistribute it and/or modify
* it under the terms of the GNU General Public License as published by
* the Free Software Foundation; either version 3 of the License, or (at
* your option) any later version.
*
* This library is distributed in the hope that it will be useful, but
* WITHOUT ANY WARRANTY; without even the implied warranty of
* MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
* General Public License for more details.
*
* You should have received a copy of the GNU General Public License
* along with this library; if not, write to the Free Software
* Foundation, Inc.,
*   51 Franklin Street, Fifth Floor,
*   Boston, MA  02110-1301
*   USA
 */

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/getopt"
)

import (
	"github.com/timtadh/levmine/canon"
	"github.com/timtadh/levmine/cmd"
	"github.com/timtadh/levmine/config"
	"github.com/timtadh/levmine/graph"
	"github.com/timtadh/levmine/miner"
	"github.com/timtadh/levmine/reporters"
)

func init() {
	cmd.UsageMessage = "levmine --help"
	cmd.ExtendedMessage = `
levmine - mine patterns from a graph, level by level

$ levmine -o <path> --support=<int> [Global Options] \
    <input-path> <mode> [Mode Options]

Note: You must supply [Global Options] then <input-path> then <mode>
      [Mode Options]. Changes in ordering are not supported.

Note: You may either supply the <input-path> as a regular file or a gzipped
      file. If supplying a gzip file the file extension must be '.gz'. The
      format is chosen from the extension: '.veg' (or '.veg.gz') loads the
      veg format, '.dot' (or '.dot.gz') loads graphviz dot. Edges are
      treated as undirected; self loops and duplicate edges are dropped.

Global Options
    -h, --help                view this message
    --modes                   show the available modes
    -o, --output=<path>       path to output directory (required)
                              NB: will overwrite contents of dir
    -c, --cache=<path>        path to cache directory (optional)
                              NB: will overwrite contents of dir
    --support=<int>           minimum support of patterns (required)
    -w, --workers=<int>       number of workers (default 1, -1 for one per cpu)
    --skip-log=<level>        don't output the given log level.

Developer Options
    --cpu-profile=<path>      write a cpu-profile to this location

Modes
    fsm                       frequent subgraphs, grown an edge at a time
    motif                     all connected induced subgraphs of a fixed size
    clique                    complete subgraphs of a fixed size

    fsm Options
        -h, --help               view this message
        --max-vertices=<int>     stop once patterns reach this many vertices
                                 (default 4)
        --support-mode=<name>    freq or domain (default domain). domain is
                                 the minimum image support; freq is the raw
                                 embedding count.
        --no-vertex-labels       ignore vertex labels
        --edge-labels            distinguish edges by label

    fsm Example
        $ levmine -o /tmp/levmine --support=5 \
            ./data/citeseer.veg.gz fsm --max-vertices=5

    motif Options
        -h, --help               view this message
        -s, --size=<int>         number of vertices in a motif (default 3)
        --vertex-labels          distinguish motifs by vertex label

    motif Example
        $ levmine -o /tmp/levmine --support=1 \
            ./data/mico.veg.gz motif --size=4

    clique Options
        -h, --help               view this message
        -s, --size=<int>         number of vertices in a clique (default 3)

    clique Example
        $ levmine -o /tmp/levmine --support=1 \
            ./data/wiki.dot clique --size=4
`
}

type mode func(argv []string, conf *config.Config) (*miner.Config, []string)

func fsmMode(argv []string, conf *config.Config) (*miner.Config, []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"h",
		[]string{
			"help",
			"max-vertices=",
			"support-mode=",
			"no-vertex-labels",
			"edge-labels",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		cmd.Usage(cmd.ErrorCodes["opts"])
	}
	cfg := &miner.Config{
		Mode:         miner.FSM,
		SupportMode:  miner.MinImage,
		MaxVertices:  4,
		VertexLabels: true,
	}
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			cmd.Usage(0)
		case "--max-vertices":
			cfg.MaxVertices = cmd.ParseInt(oa.Arg())
		case "--support-mode":
			switch oa.Arg() {
			case "freq":
				cfg.SupportMode = miner.Frequency
			case "domain":
				cfg.SupportMode = miner.MinImage
			default:
				fmt.Fprintf(os.Stderr, "Unknown support mode '%v'\n", oa.Arg())
				cmd.Usage(cmd.ErrorCodes["opts"])
			}
		case "--no-vertex-labels":
			cfg.VertexLabels = false
		case "--edge-labels":
			cfg.EdgeLabels = true
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			cmd.Usage(cmd.ErrorCodes["opts"])
		}
	}
	return cfg, args
}

func motifMode(argv []string, conf *config.Config) (*miner.Config, []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"hs:",
		[]string{
			"help",
			"size=",
			"vertex-labels",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		cmd.Usage(cmd.ErrorCodes["opts"])
	}
	cfg := &miner.Config{
		Mode:        miner.Motif,
		SupportMode: miner.Frequency,
		Size:        3,
	}
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			cmd.Usage(0)
		case "-s", "--size":
			cfg.Size = cmd.ParseInt(oa.Arg())
		case "--vertex-labels":
			cfg.VertexLabels = true
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			cmd.Usage(cmd.ErrorCodes["opts"])
		}
	}
	return cfg, args
}

func cliqueMode(argv []string, conf *config.Config) (*miner.Config, []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"hs:",
		[]string{
			"help",
			"size=",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		cmd.Usage(cmd.ErrorCodes["opts"])
	}
	cfg := &miner.Config{
		Mode:        miner.Clique,
		SupportMode: miner.Frequency,
		Size:        3,
	}
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			cmd.Usage(0)
		case "-s", "--size":
			cfg.Size = cmd.ParseInt(oa.Arg())
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			cmd.Usage(cmd.ErrorCodes["opts"])
		}
	}
	return cfg, args
}

func loadGraph(inputPath string) (*graph.Graph, error) {
	input := func() (reader io.Reader, closer func()) {
		return cmd.InputFile(inputPath)
	}
	name := strings.TrimSuffix(inputPath, ".gz")
	switch {
	case strings.HasSuffix(name, ".veg"):
		return graph.LoadVeg(input)
	case strings.HasSuffix(name, ".dot"):
		return graph.LoadDot(input)
	}
	return nil, errors.Errorf("unknown graph format for %v (expected .veg or .dot)", inputPath)
}

func main() {
	os.Exit(run())
}

func run() int {
	modes := map[string]mode{
		"fsm":    fsmMode,
		"motif":  motifMode,
		"clique": cliqueMode,
	}

	args, optargs, err := getopt.GetOpt(
		os.Args[1:],
		"ho:c:w:",
		[]string{
			"help",
			"output=", "cache=",
			"modes",
			"support=",
			"workers=",
			"skip-log=",
			"cpu-profile=",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, "could not process your arguments (perhaps you forgot a mode?) try:")
		fmt.Fprintf(os.Stderr, "$ %v fsm %v\n", os.Args[0], strings.Join(os.Args[1:], " "))
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	output := ""
	cache := ""
	support := 0
	workers := 0
	cpuProfile := ""
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			cmd.Usage(0)
		case "-o", "--output":
			output = cmd.EmptyDir(oa.Arg())
		case "-c", "--cache":
			cache = cmd.EmptyDir(oa.Arg())
		case "--support":
			support = cmd.ParseInt(oa.Arg())
		case "-w", "--workers":
			workers = cmd.ParseInt(oa.Arg())
		case "--modes":
			fmt.Fprintln(os.Stderr, "Modes:")
			for k := range modes {
				fmt.Fprintln(os.Stderr, "  ", k)
			}
			os.Exit(0)
		case "--skip-log":
			level := oa.Arg()
			errors.Logf("INFO", "not logging level %v", level)
			errors.SkipLogging[level] = true
		case "--cpu-profile":
			cpuProfile = cmd.AssertFile(oa.Arg())
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			cmd.Usage(cmd.ErrorCodes["opts"])
		}
	}

	if support <= 0 {
		fmt.Fprintf(os.Stderr, "Support <= 0, must be > 0\n")
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	if output == "" {
		fmt.Fprintf(os.Stderr, "You must supply an output dir (-o)\n")
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	if len(args) < 2 {
		fmt.Fprintf(os.Stderr, "You must supply an input path and a mode\n")
		cmd.Usage(cmd.ErrorCodes["opts"])
	}
	inputPath := cmd.AssertFileOrDirExists(args[0])

	if cpuProfile != "" {
		errors.Logf("DEBUG", "starting cpu profile: %v", cpuProfile)
		f, err := os.Create(cpuProfile)
		if err != nil {
			log.Fatal(err)
		}
		err = pprof.StartCPUProfile(f)
		if err != nil {
			log.Fatal(err)
		}
		defer func() {
			errors.Logf("DEBUG", "closing cpu profile")
			pprof.StopCPUProfile()
			err := f.Close()
			errors.Logf("DEBUG", "closed cpu profile, err: %v", err)
		}()
	}

	conf := &config.Config{
		Cache:       cache,
		Output:      output,
		Support:     support,
		Parallelism: workers,
	}

	modeName := args[1]
	makeMode, has := modes[modeName]
	if !has {
		fmt.Fprintf(os.Stderr, "Unknown mode '%v'\n", modeName)
		cmd.Usage(cmd.ErrorCodes["opts"])
	}
	cfg, rest := makeMode(args[2:], conf)
	if len(rest) != 0 {
		fmt.Fprintf(os.Stderr, "Unconsumed arguments %v\n", rest)
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	G, err := loadGraph(inputPath)
	if err != nil {
		log.Println(err)
		return 1
	}
	errors.Logf("INFO", "loaded %v", G)

	fr, err := reporters.NewFile(conf, "patterns")
	if err != nil {
		log.Println(err)
		return 1
	}
	rptr := reporters.NewChain(reporters.NewLog(), fr)

	m, err := miner.New(conf, cfg, G, canon.NewGoiso(), rptr)
	if err != nil {
		log.Println(err)
		return 1
	}
	res, err := m.Mine()
	if err != nil {
		m.Close()
		log.Println(err)
		return 1
	}
	if cfg.Mode == miner.Clique {
		errors.Logf("INFO", "found %v cliques of size %v", res.Cliques, cfg.Size)
	} else {
		errors.Logf("INFO", "finished at level %v with %v embeddings", res.Level, len(res.Embeddings))
	}
	err = m.Close()
	if err != nil {
		log.Println(err)
		return 1
	}
	return 0
}
