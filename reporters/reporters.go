package reporters

import (
	"fmt"
	"io"
	"os"
)

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/levmine/config"
	"github.com/timtadh/levmine/miner"
)

// File writes one line per frequent canonical pattern to the patterns file
// in the output directory: level, support, then the pattern presentation.
type File struct {
	config   *config.Config
	patterns io.WriteCloser
}

func NewFile(c *config.Config, patternsFilename string) (*File, error) {
	patterns, err := os.Create(c.OutputFile(patternsFilename))
	if err != nil {
		return nil, err
	}
	r := &File{
		config:   c,
		patterns: patterns,
	}
	return r, nil
}

func (r *File) Report(rep *miner.Report) error {
	_, err := fmt.Fprintf(r.patterns, "%d\t%d\t%v\n", rep.Level, rep.Support, rep.Pattern)
	return err
}

func (r *File) Close() error {
	return r.patterns.Close()
}

// Log reports through the log stream instead of a file.
type Log struct{}

func NewLog() *Log {
	return &Log{}
}

func (r *Log) Report(rep *miner.Report) error {
	errors.Logf("INFO", "level %v support %v pattern %v", rep.Level, rep.Support, rep.Pattern)
	return nil
}

func (r *Log) Close() error {
	return nil
}

// Chain fans a report out to several reporters.
type Chain struct {
	Reporters []miner.Reporter
}

func NewChain(reporters ...miner.Reporter) *Chain {
	return &Chain{Reporters: reporters}
}

func (r *Chain) Report(rep *miner.Report) error {
	for _, rptr := range r.Reporters {
		err := rptr.Report(rep)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Chain) Close() error {
	for _, rptr := range r.Reporters {
		err := rptr.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
