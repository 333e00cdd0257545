package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	wikifilter "github.com/alnah/go-wikifilter"
	"github.com/alnah/go-wikifilter/internal/config"
	"github.com/alnah/go-wikifilter/internal/hints"
	"github.com/alnah/go-wikifilter/internal/pandoc"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Configure GOMAXPROCS before the batch worker default is computed.
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if hasVerboseFlag(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...any) {}))
	}

	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args, DefaultEnv())
	stop()
	os.Exit(code)
}

// runMain dispatches to a command and returns the process exit code.
// pandoc runs a filter as "wikifilter FORMAT", so anything that is not a
// command name is handed to filter mode.
func runMain(ctx context.Context, args []string, env *Environment) int {
	var rest []string
	if len(args) > 1 {
		rest = args[1:]
	}

	warnUnknownEnvVars(env.Stderr)

	var err error
	switch {
	case len(rest) == 0:
		err = runFilter(nil, env)
	case rest[0] == "filter":
		err = runFilter(rest[1:], env)
	case rest[0] == "batch":
		err = runBatch(ctx, rest[1:], env)
	case rest[0] == "convert":
		err = runConvert(ctx, rest[1:], env)
	case rest[0] == "preview":
		err = runPreview(ctx, rest[1:], env)
	case rest[0] == "version":
		fmt.Fprintf(env.Stdout, "go-wikifilter %s\n", Version)
		return ExitSuccess
	case rest[0] == "help":
		runHelp(rest[1:], env)
		return ExitSuccess
	case rest[0] == "-h" || rest[0] == "--help":
		printUsage(env.Stdout)
		return ExitSuccess
	default:
		err = runFilter(rest, env)
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "wikifilter: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	var missing *wikifilter.MissingAssetError
	switch {
	case errors.As(err, &missing):
		return hints.ForMissingAsset(missing.Path)
	case errors.Is(err, pandoc.ErrPandocNotFound):
		return hints.ForPandocNotFound()
	case errors.Is(err, pandoc.ErrMalformedDocument):
		return hints.ForMalformedInput()
	case errors.Is(err, config.ErrConfigNotFound):
		var nf *configNotFoundError
		if errors.As(err, &nf) {
			return hints.ForConfigNotFound(config.SearchPaths(nf.name))
		}
		return hints.ForConfigNotFound(nil)
	case errors.Is(err, ErrCreateOutputDir):
		return hints.ForOutputDirectory()
	}
	return ""
}

// hasVerboseFlag reports whether -v or --verbose appears before a "--".
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		switch a {
		case "--":
			return false
		case "-v", "--verbose":
			return true
		}
	}
	return false
}

// notifyContext returns a context that is canceled when an interrupt
// or termination signal is received. Call stop() to release resources.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
