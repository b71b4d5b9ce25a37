// Package cli implements the mangle command: flag handling, config
// discovery, the per-file pipeline, and the output cache.
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tinyjs/mangle/internal/cache"
	"github.com/tinyjs/mangle/internal/config"
	"github.com/tinyjs/mangle/internal/diagnostics"
	"github.com/tinyjs/mangle/internal/lexer"
	"github.com/tinyjs/mangle/internal/parser"
	"github.com/tinyjs/mangle/internal/pipeline"
	"github.com/tinyjs/mangle/internal/printer"
	"github.com/tinyjs/mangle/internal/renamer"
)

// Options are the resolved command-line settings for one invocation.
type Options struct {
	OutPath    string
	InPlace    bool
	ConfigPath string
	UseCache   bool
	CacheDir   string
	NoMangle   bool
	Verbose    bool

	Stdout io.Writer
	Stderr io.Writer
}

// isSourceFile checks if a file has a recognized source extension
func isSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// Run executes the command line and returns the process exit code.
func Run(args []string) int {
	opts := &Options{Stdout: os.Stdout, Stderr: os.Stderr}

	fs := flag.NewFlagSet("mangle", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.StringVar(&opts.OutPath, "o", "", "write output to `file` (single input only)")
	fs.BoolVar(&opts.InPlace, "w", false, "write result back to the input file")
	fs.StringVar(&opts.ConfigPath, "config", "", "explicit config `file` (skips discovery)")
	fs.BoolVar(&opts.UseCache, "cache", false, "enable the output cache")
	fs.StringVar(&opts.CacheDir, "cache-dir", "", "cache `directory` (implies -cache)")
	fs.BoolVar(&opts.NoMangle, "no-mangle", false, "parse and print without renaming")
	fs.BoolVar(&opts.Verbose, "v", false, "verbose output")
	version := fs.Bool("version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *version {
		fmt.Fprintf(opts.Stdout, "mangle %s\n", config.Version)
		return 0
	}

	files := fs.Args()
	if len(files) == 0 {
		fmt.Fprintln(opts.Stderr, "Usage: mangle [flags] file.js ...")
		fs.PrintDefaults()
		return 2
	}
	if opts.OutPath != "" && len(files) > 1 {
		fmt.Fprintln(opts.Stderr, "mangle: -o cannot be used with multiple inputs")
		return 2
	}
	if opts.OutPath != "" && opts.InPlace {
		fmt.Fprintln(opts.Stderr, "mangle: -o and -w are mutually exclusive")
		return 2
	}
	if opts.CacheDir != "" {
		opts.UseCache = true
	}

	exitCode := 0
	for _, file := range files {
		if !isSourceFile(file) {
			fmt.Fprintf(opts.Stderr, "mangle: skipping %s: not a recognized source file\n", file)
			continue
		}
		if code := runFile(file, opts); code != 0 {
			exitCode = code
		}
	}
	return exitCode
}

func runFile(file string, opts *Options) int {
	source, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(opts.Stderr, "mangle: %s\n", err)
		return 1
	}

	cfg, cfgPath, err := loadConfig(file, opts)
	if err != nil {
		fmt.Fprintf(opts.Stderr, "mangle: %s\n", err)
		return 1
	}
	if opts.Verbose && cfgPath != "" {
		fmt.Fprintf(opts.Stderr, "mangle: using config %s\n", cfgPath)
	}

	store := openCache(file, cfg, opts)
	if store != nil {
		defer store.Close()
	}

	var key string
	if store != nil {
		key = cache.Key(source, config.Version, !opts.NoMangle, cfg.Reserved)
		if output, ok, err := store.Get(key); err == nil && ok {
			if opts.Verbose {
				fmt.Fprintf(opts.Stderr, "mangle: cache hit for %s\n", file)
			}
			return writeOutput(file, output, opts)
		} else if err != nil && opts.Verbose {
			fmt.Fprintf(opts.Stderr, "mangle: cache read failed: %s\n", err)
		}
	}

	ctx := &pipeline.PipelineContext{
		FilePath:   file,
		SourceCode: string(source),
		Mangle:     !opts.NoMangle,
		Reserved:   cfg.Reserved,
	}

	p := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&renamer.ResolverProcessor{},
		&renamer.ManglerProcessor{},
		&printer.PrinterProcessor{},
	)
	ctx = p.Run(ctx)

	if len(ctx.Errors) > 0 {
		diagnostics.Print(opts.Stderr, ctx.Errors)
		return 1
	}

	if store != nil {
		if err := store.Put(key, ctx.Output); err != nil && opts.Verbose {
			fmt.Fprintf(opts.Stderr, "mangle: cache write failed: %s\n", err)
		}
	}

	return writeOutput(file, ctx.Output, opts)
}

func loadConfig(file string, opts *Options) (*config.Config, string, error) {
	if opts.ConfigPath != "" {
		cfg, err := config.Load(opts.ConfigPath)
		return cfg, opts.ConfigPath, err
	}
	return config.Discover(filepath.Dir(file))
}

// openCache returns an open store, or nil when caching is off or the
// store cannot be opened. Cache failures never fail the run.
func openCache(file string, cfg *config.Config, opts *Options) *cache.Cache {
	if !opts.UseCache && !cfg.Cache.Enabled {
		return nil
	}
	dir := opts.CacheDir
	if dir == "" {
		dir = cfg.Cache.Dir
	}
	if dir == "" {
		dir = config.DefaultCacheDir
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(filepath.Dir(file), dir)
	}
	store, err := cache.Open(dir)
	if err != nil {
		if opts.Verbose {
			fmt.Fprintf(opts.Stderr, "mangle: cache disabled: %s\n", err)
		}
		return nil
	}
	return store
}

func writeOutput(file, output string, opts *Options) int {
	switch {
	case opts.InPlace:
		if err := os.WriteFile(file, []byte(output), 0o644); err != nil {
			fmt.Fprintf(opts.Stderr, "mangle: %s\n", err)
			return 1
		}
	case opts.OutPath != "":
		if err := os.WriteFile(opts.OutPath, []byte(output), 0o644); err != nil {
			fmt.Fprintf(opts.Stderr, "mangle: %s\n", err)
			return 1
		}
	default:
		fmt.Fprintln(opts.Stdout, output)
	}
	return 0
}
