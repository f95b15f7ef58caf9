// faux-code renders source files as abstract, syntax-colored blocks
// tiled onto one image.
//
// Usage:
//
//	faux-code [flags] [file ...]
//
// With no file arguments, the current directory is searched
// for JavaScript, TypeScript, Python, and Java files,
// and the most recently modified are rendered.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/ozanyetkin/faux-code/config"
	"github.com/ozanyetkin/faux-code/discover"
	"github.com/ozanyetkin/faux-code/pipeline"
	"github.com/ozanyetkin/faux-code/syntax"
)

func main() {
	log.SetPrefix("faux-code: ")
	log.SetFlags(0)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		log.Print(err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	opts := config.Default()
	fs := flag.NewFlagSet("faux-code", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: faux-code [flags] [file ...]\n\n")
		fmt.Fprintf(fs.Output(), "Renders source files as syntax-colored blocks on one image.\n")
		fmt.Fprintf(fs.Output(), "With no files, searches the directory given by -dir.\n\n")
		fs.PrintDefaults()
	}
	opts.Flags(fs)
	dir := fs.String("dir", ".", "directory to search when no files are given")
	markup := fs.Bool("markup", false, "print the styled markup of each file instead of drawing")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	var files []discover.File
	if fs.NArg() > 0 {
		files = discover.Paths(fs.Args())
	} else {
		found, skipped, err := discover.Files(*dir, opts.Limit)
		if err != nil {
			return err
		}
		if skipped != nil {
			for _, e := range skipped.Errors {
				log.Printf("skipped %v", e)
			}
		}
		files = found
	}

	if *markup {
		return printMarkup(stdout, files, opts)
	}

	res, err := pipeline.Run(ctx, files, opts)
	if res != nil && res.Dropped != nil {
		for _, e := range res.Dropped.Errors {
			log.Printf("dropped %v", e)
		}
	}
	if err != nil {
		return err
	}
	if err := res.Composite.WriteFile(opts.Output); err != nil {
		return err
	}
	log.Printf("wrote %d blocks to %s", len(res.Composite.Blocks), opts.Output)
	return nil
}

// printMarkup writes the styled markup of each readable file.
// It returns pipeline.ErrNoBlocks if no file could be read.
func printMarkup(w io.Writer, files []discover.File, opts config.Options) error {
	var n int
	for _, f := range files {
		data, err := os.ReadFile(f.Path)
		if err != nil {
			log.Printf("dropped %v", err)
			continue
		}
		if n > 0 {
			fmt.Fprintln(w)
		}
		n++
		fmt.Fprintf(w, "<pre title=\"%s\">\n", syntax.Escape(f.Name))
		for _, l := range pipeline.Lines(string(data), f.Name, opts) {
			fmt.Fprintln(w, l.Markup())
		}
		if _, err := fmt.Fprintln(w, "</pre>"); err != nil {
			return err
		}
	}
	if n == 0 {
		return pipeline.ErrNoBlocks
	}
	return nil
}
