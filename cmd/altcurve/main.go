// Command altcurve evaluates, inspects and converts keyframed curves, and
// manages curves in a curve store.
//
// Usage:
//
//	altcurve [-config file] [-store dir] [-redis addr] <command> [arguments]
//
// Curve files are JSON (.json) or YAML (.yaml, .yml). The exit status is 1
// if a command fails and 2 if it is used incorrectly.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sgostarter/i/l"
)

const usageText = `usage: altcurve [flags] <command> [arguments]

Commands:
  eval <file> <t>...             evaluate a curve at the given times
  sample <file> [-n N] [-from t] [-to t]
                                 print evenly spaced samples
  info <file>                    print keyframes, ranges and problems
  sanitize <file> [-o out]       drop duplicate keyframes and sort the rest
  tangents <file> [-o out]       recalculate automatic tangents
  convert <in> <out>             convert between JSON and YAML
  store list
  store get <name> [-o out]
  store put <name> <file>
  store add <file>
  store rm <name>
  store eval <name> <t>...

Flags:
`

const defaultConfigFile = "altcurve.yaml"

// errUsage marks errors caused by invalid invocations.
var errUsage = errors.New("usage")

func usageError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type app struct {
	stdout io.Writer
	stderr io.Writer
	logger l.Wrapper
	cfg    Config
}

func run(args []string, stdout, stderr io.Writer) int {
	fset := flag.NewFlagSet("altcurve", flag.ContinueOnError)
	fset.SetOutput(stderr)
	fset.Usage = func() {
		fmt.Fprint(stderr, usageText)
		fset.PrintDefaults()
	}

	configFile := fset.String("config", "", "configuration `file` (default "+defaultConfigFile+" if present)")
	storeDir := fset.String("store", "", "`directory` of the file store")
	redisAddr := fset.String("redis", "", "use the redis server at `addr` as the store")

	if err := fset.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}

		return 2
	}

	if fset.NArg() == 0 {
		fset.Usage()

		return 2
	}

	path, required := *configFile, true
	if path == "" {
		path, required = defaultConfigFile, false
	}

	cfg, err := loadConfig(path, required)
	if err != nil {
		fmt.Fprintln(stderr, "altcurve:", err)

		return 1
	}

	if *storeDir != "" {
		cfg.Store = *storeDir
	}

	if *redisAddr != "" {
		cfg.Redis.Addr = *redisAddr
	}

	a := &app{
		stdout: stdout,
		stderr: stderr,
		logger: l.NewConsoleLoggerWrapper().WithFields(l.StringField(l.ClsKey, "altcurve")),
		cfg:    cfg,
	}

	if err = a.dispatch(fset.Arg(0), fset.Args()[1:]); err != nil {
		fmt.Fprintln(stderr, "altcurve:", err)

		if errors.Is(err, errUsage) {
			return 2
		}

		return 1
	}

	return 0
}

func (a *app) dispatch(cmd string, args []string) error {
	switch cmd {
	case "eval":
		return a.eval(args)
	case "sample":
		return a.sample(args)
	case "info":
		return a.info(args)
	case "sanitize":
		return a.sanitize(args)
	case "tangents":
		return a.tangents(args)
	case "convert":
		return a.convert(args)
	case "store":
		return a.store(args)
	default:
		return usageError("unknown command %q", cmd)
	}
}
