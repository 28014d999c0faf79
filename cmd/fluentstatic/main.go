package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	mcpserver "github.com/cascadiacollections/fluentstatic/pkg/mcp"
	"github.com/cascadiacollections/fluentstatic/pkg/mcplog"
	"github.com/cascadiacollections/fluentstatic/pkg/runner"
	"github.com/cascadiacollections/fluentstatic/pkg/util"
)

const version = "0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "extract":
		os.Exit(runExtract(args))
	case "watch":
		os.Exit(runWatch(args))
	case "serve":
		os.Exit(runServe(args))
	case "version":
		fmt.Printf("fluentstatic %s\n", version)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// commonFlags registers the flags shared by extract and watch, returning the
// config-mutating apply step.
func commonFlags(fs *flag.FlagSet) func(cfg runner.Config) runner.Config {
	write := fs.Bool("write", false, "rewrite transformed sources in place")
	outCSS := fs.String("out-css", "", "write the concatenated stylesheet to this path")
	include := fs.String("include", "", "comma-separated include patterns (doublestar)")
	exclude := fs.String("exclude", "", "comma-separated exclude patterns (doublestar)")
	concurrency := fs.Int("concurrency", 0, "worker pool size (0 = default)")

	return func(cfg runner.Config) runner.Config {
		cfg = applyProjectConfig(cfg)
		if *write {
			cfg.Write = true
		}
		if *outCSS != "" {
			cfg.CSSOutPath = *outCSS
		}
		if *include != "" {
			cfg.Include = splitPatterns(*include)
		}
		if *exclude != "" {
			cfg.Exclude = splitPatterns(*exclude)
		}
		if *concurrency > 0 {
			cfg.Concurrency = *concurrency
		}
		return cfg
	}
}

func runExtract(args []string) int {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	apply := commonFlags(fs)
	verbose := fs.Bool("verbose", false, "enable debug logging")
	jsonLogs := fs.Bool("json-logs", false, "emit logs as JSON")
	fs.Parse(args)

	root := "."
	if fs.NArg() > 0 {
		root = fs.Arg(0)
	}

	logger := newLogger(*verbose, *jsonLogs)
	cfg := apply(runner.DefaultConfig())

	r, err := runner.New(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer r.Close()

	result, err := r.Run(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	if cfg.CSSOutPath == "" && result.CSS != "" {
		// Stdout carries the stylesheet; logs go to stderr.
		fmt.Println(result.CSS)
	}

	fmt.Fprintf(os.Stderr, "%d files, %d changed, %d classes, %d failed (%dms)\n",
		result.FilesProcessed, result.FilesChanged, result.ClassesGenerated,
		result.FilesFailed, result.DurationMs)

	if result.FilesFailed > 0 {
		return 1
	}
	return 0
}

func runWatch(args []string) int {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	apply := commonFlags(fs)
	verbose := fs.Bool("verbose", false, "enable debug logging")
	jsonLogs := fs.Bool("json-logs", false, "emit logs as JSON")
	fs.Parse(args)

	root := "."
	if fs.NArg() > 0 {
		root = fs.Arg(0)
	}

	logger := newLogger(*verbose, *jsonLogs)
	cfg := apply(runner.DefaultConfig())

	r, err := runner.New(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer r.Close()

	// Full pass first, then incremental.
	if _, err := r.Run(root); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	w, err := runner.NewWatcher(r, runner.DefaultWatchOptions(), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	if err := w.Start(root); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer w.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	return 0
}

func runServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	apply := commonFlags(fs)
	callLog := fs.String("call-log", "", "append a JSONL record per tool call to this file")
	fs.Parse(args)

	// MCP traffic owns stdout, so logs must stay on stderr.
	logger := newLogger(false, false)
	cfg := apply(runner.DefaultConfig())

	r, err := runner.New(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer r.Close()

	log, err := mcplog.Open(*callLog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	if log != nil {
		defer log.Close()
	}

	srv := mcpserver.NewServer(r, log)
	if err := srv.ServeStdio(); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		return 1
	}
	return 0
}

func newLogger(verbose, jsonLogs bool) *slog.Logger {
	cfg := util.DefaultLoggerConfig()
	if verbose {
		cfg.Level = util.LevelDebug
	}
	if jsonLogs {
		cfg.Format = util.FormatJSON
	}
	return util.NewLogger(cfg)
}

func splitPatterns(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func printUsage() {
	fmt.Println("Usage: fluentstatic <command> [flags] [dir]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  extract    Extract styles and rewrite sources (default dir: .)")
	fmt.Println("  watch      Extract, then re-extract files as they change")
	fmt.Println("  serve      Start the MCP server on stdin/stdout")
	fmt.Println("  version    Print version")
	fmt.Println("  help       Show this help message")
	fmt.Println()
	fmt.Println("Extract/watch flags:")
	fmt.Println("  --write            rewrite transformed sources in place")
	fmt.Println("  --out-css PATH     write the stylesheet to PATH instead of stdout")
	fmt.Println("  --include LIST     comma-separated include patterns")
	fmt.Println("  --exclude LIST     comma-separated exclude patterns")
	fmt.Println("  --concurrency N    worker pool size")
	fmt.Println("  --verbose          debug logging")
	fmt.Println("  --json-logs        JSON log format")
}
