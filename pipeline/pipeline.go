// Package pipeline turns a batch of source files into one composite image.
//
// Each file is read, tokenized, styled, and rendered to a block
// on a bounded pool of workers.
// Files that fail are dropped and reported as diagnostics;
// the remaining blocks are laid out together on one canvas.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/ozanyetkin/faux-code/block"
	"github.com/ozanyetkin/faux-code/canvas"
	"github.com/ozanyetkin/faux-code/config"
	"github.com/ozanyetkin/faux-code/discover"
	"github.com/ozanyetkin/faux-code/lang"
	"github.com/ozanyetkin/faux-code/layout"
	"github.com/ozanyetkin/faux-code/syntax"
	"github.com/ozanyetkin/faux-code/text"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNoBlocks is returned when no file produced a block.
	ErrNoBlocks = errors.New("no blocks to render")
	// ErrEmptyBlock is the diagnostic for a file whose block has no area.
	ErrEmptyBlock = errors.New("empty block")
)

// A Result is the outcome of a run.
type Result struct {
	Composite *canvas.Composite
	// Files are the files that were rendered,
	// parallel to Composite.Blocks.
	Files []discover.File
	// Dropped holds one error for each dropped file, or is nil.
	Dropped *multierror.Error
}

// Run renders the files and lays them out.
//
// A file that cannot be read or renders to an empty block
// is dropped and recorded in Result.Dropped.
// If every file is dropped, Run returns the Result and ErrNoBlocks.
// If ctx is cancelled, no more files are started
// and Run returns the context's error.
func Run(ctx context.Context, files []discover.File, opts config.Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	theme, err := text.ThemeNamed(opts.Theme)
	if err != nil {
		return nil, err
	}
	workers := opts.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	blocks := make([]*block.Block, len(files))
	errs := make([]error, len(files))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, f := range files {
		if ctx.Err() != nil {
			break
		}
		i, f := i, f
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			blocks[i], errs[i] = Render(f, opts, theme)
			return nil
		})
	}
	g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{Composite: &canvas.Composite{
		Size:       opts.Size(),
		Background: opts.Background,
		Font:       text.Mono,
	}}
	if res.Composite.Background == nil {
		res.Composite.Background = theme.Canvas
	}
	var sizes []layout.Size
	for i, b := range blocks {
		if errs[i] != nil {
			res.Dropped = multierror.Append(res.Dropped, errs[i])
			continue
		}
		res.Composite.Blocks = append(res.Composite.Blocks, b)
		res.Files = append(res.Files, files[i])
		sizes = append(sizes, layout.Size{W: b.Width, H: b.Height})
	}
	if len(sizes) == 0 {
		return res, ErrNoBlocks
	}
	ps, err := layout.Layout(sizes, opts.Size(), opts.LayoutOptions())
	if err != nil {
		return res, err
	}
	res.Composite.Placements = ps
	return res, nil
}

// Render reads a file and renders it to a block.
// The error, if any, is prefixed with the file's name.
func Render(f discover.File, opts config.Options, theme *text.Theme) (*block.Block, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		var pe *fs.PathError
		if errors.As(err, &pe) {
			err = pe.Err
		}
		return nil, fmt.Errorf("%s: %w", f.Name, err)
	}
	lines := Lines(string(data), f.Name, opts)
	// Faces cache glyphs and are not safe for concurrent use.
	face := text.Face(text.Mono, opts.FontSize)
	defer face.Close()
	b := block.Render(f.Name, lines, face, opts.BlockOptions(theme))
	if b.Degenerate() {
		return nil, fmt.Errorf("%s: %w", f.Name, ErrEmptyBlock)
	}
	return b, nil
}

// Lines returns the styled lines of a source file's text,
// truncated to the options' line limits.
// The language is classified from the name.
func Lines(src, name string, opts config.Options) []syntax.Line {
	if src == "" {
		return nil
	}
	src = strings.ToValidUTF8(src, "\uFFFD")
	src = strings.TrimSuffix(src, "\n")
	raw := syntax.Clip(strings.Split(src, "\n"), opts.MaxLines, opts.MaxLineWidth)
	l := lang.Classify(name)
	lines := make([]syntax.Line, len(raw))
	for i, s := range raw {
		lines[i] = syntax.Style(syntax.Tokenize(s, l))
	}
	return lines
}
