package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/sgostarter/i/l"
	"github.com/spf13/cast"
	"honnef.co/go/altcurve"
	"honnef.co/go/altcurve/curvestore"
)

// parseArgs parses flags that may appear anywhere among the positional
// arguments, which it returns. Everything after "--" is positional.
func parseArgs(fset *flag.FlagSet, args []string) ([]string, error) {
	var pos []string

	for {
		if err := fset.Parse(args); err != nil {
			return nil, usageError("%s", err)
		}

		rest := fset.Args()
		if n := len(args) - len(rest); n > 0 && args[n-1] == "--" {
			return append(pos, rest...), nil
		}

		args = rest
		if len(args) == 0 {
			return pos, nil
		}

		pos = append(pos, args[0])
		args = args[1:]
	}
}

func (a *app) newFlagSet(name string) *flag.FlagSet {
	fset := flag.NewFlagSet(name, flag.ContinueOnError)
	fset.SetOutput(a.stderr)

	return fset
}

func parseTimes(args []string) ([]float64, error) {
	ts := make([]float64, len(args))

	for i, arg := range args {
		t, err := cast.ToFloat64E(arg)
		if err != nil {
			return nil, usageError("invalid time %q", arg)
		}

		ts[i] = t
	}

	return ts, nil
}

func loadCurve(path string) (altcurve.Curve, curvestore.Format, error) {
	format, ok := curvestore.FormatOf(path)
	if !ok {
		return altcurve.Curve{}, 0, usageError("%s: unknown file type", path)
	}

	d, err := os.ReadFile(path)
	if err != nil {
		return altcurve.Curve{}, 0, err
	}

	c, err := format.Decode(d)
	if err != nil {
		return altcurve.Curve{}, 0, fmt.Errorf("%s: %w", path, err)
	}

	return c, format, nil
}

// writeCurve writes c to the file out, in the format implied by its name,
// or to standard output in the given format if out is empty.
func (a *app) writeCurve(c altcurve.Curve, out string, format curvestore.Format) error {
	if out != "" {
		var ok bool
		if format, ok = curvestore.FormatOf(out); !ok {
			return usageError("%s: unknown file type", out)
		}
	}

	d, err := format.Encode(c)
	if err != nil {
		return err
	}

	if out == "" {
		if format == curvestore.JSON {
			d = append(d, '\n')
		}

		_, err = a.stdout.Write(d)

		return err
	}

	return os.WriteFile(out, d, 0644)
}

func (a *app) eval(args []string) error {
	if len(args) < 2 {
		return usageError("eval <file> <t>...")
	}

	c, _, err := loadCurve(args[0])
	if err != nil {
		return err
	}

	ts, err := parseTimes(args[1:])
	if err != nil {
		return err
	}

	for _, t := range ts {
		fmt.Fprintf(a.stdout, "%g %g\n", t, c.Eval(t))
	}

	return nil
}

func (a *app) sample(args []string) error {
	fset := a.newFlagSet("sample")
	n := fset.Int("n", 11, "number of samples")
	from := fset.String("from", "", "first sample `time` (default start of the curve)")
	to := fset.String("to", "", "last sample `time` (default end of the curve)")

	pos, err := parseArgs(fset, args)
	if err != nil {
		return err
	}

	if len(pos) != 1 {
		return usageError("sample <file> [-n N] [-from t] [-to t]")
	}

	if *n < 1 {
		return usageError("-n must be positive")
	}

	c, _, err := loadCurve(pos[0])
	if err != nil {
		return err
	}

	r := c.TimeRange()

	if *from != "" {
		if r.Min, err = cast.ToFloat64E(*from); err != nil {
			return usageError("invalid -from %q", *from)
		}
	}

	if *to != "" {
		if r.Max, err = cast.ToFloat64E(*to); err != nil {
			return usageError("invalid -to %q", *to)
		}
	}

	for s := range c.Samples(r, *n) {
		fmt.Fprintf(a.stdout, "%g %g\n", s.Time, s.Value)
	}

	return nil
}

func (a *app) info(args []string) error {
	if len(args) != 1 {
		return usageError("info <file>")
	}

	c, _, err := loadCurve(args[0])
	if err != nil {
		return err
	}

	w := a.stdout
	fmt.Fprintf(w, "keyframes: %d\n", c.Len())
	fmt.Fprintf(w, "extrapolation: pre=%s post=%s\n", c.PreInfinity(), c.PostInfinity())
	fmt.Fprintf(w, "time range: %s\n", c.TimeRange())
	fmt.Fprintf(w, "value range: %s\n", c.ValueRange())
	fmt.Fprintf(w, "hash: %016x\n", c.Hash())

	ranges := c.SegmentValueRanges()
	for i, k := range c.All() {
		fmt.Fprintf(w, "%4d %s\n", i, k)

		if i < len(ranges) {
			line := fmt.Sprintf("     segment value range %s", ranges[i])
			if seg, ok := c.Segment(i); ok {
				if exact := seg.ValueRange(); exact != ranges[i] {
					line += fmt.Sprintf(", exact %s", exact)
				}
			}

			fmt.Fprintln(w, line)
		}
	}

	if err := c.Validate(); err != nil {
		fmt.Fprintf(w, "problem: %s\n", err)
	}

	return nil
}

func (a *app) sanitize(args []string) error {
	fset := a.newFlagSet("sanitize")
	out := fset.String("o", "", "output `file` (default standard output)")

	pos, err := parseArgs(fset, args)
	if err != nil {
		return err
	}

	if len(pos) != 1 {
		return usageError("sanitize <file> [-o out]")
	}

	c, format, err := loadCurve(pos[0])
	if err != nil {
		return err
	}

	keys, rep := altcurve.SanitizeReport(c.Keyframes())
	for _, k := range rep.Removed {
		fmt.Fprintf(a.stderr, "removed keyframe %s: time already in use\n", k)
	}

	if rep.Reordered {
		fmt.Fprintln(a.stderr, "keyframes were out of order")
	}

	return a.writeCurve(c.WithKeyframes(keys), *out, format)
}

func (a *app) tangents(args []string) error {
	fset := a.newFlagSet("tangents")
	out := fset.String("o", "", "output `file` (default standard output)")

	pos, err := parseArgs(fset, args)
	if err != nil {
		return err
	}

	if len(pos) != 1 {
		return usageError("tangents <file> [-o out]")
	}

	c, format, err := loadCurve(pos[0])
	if err != nil {
		return err
	}

	if err := c.Validate(); err != nil {
		a.logger.WithFields(l.ErrorField(err), l.StringField("file", pos[0])).Error("tangents of an invalid curve")
	}

	return a.writeCurve(c.WithAutoTangents(), *out, format)
}

func (a *app) convert(args []string) error {
	if len(args) != 2 {
		return usageError("convert <in> <out>")
	}

	c, _, err := loadCurve(args[0])
	if err != nil {
		return err
	}

	return a.writeCurve(c, args[1], 0)
}

func (a *app) store(args []string) error {
	if len(args) == 0 {
		return usageError("store list|get|put|add|rm|eval")
	}

	s, err := a.cfg.newStore(a.logger)
	if err != nil {
		return err
	}

	ctx := context.Background()
	cmd, args := args[0], args[1:]

	switch cmd {
	case "list":
		names, err := s.List(ctx)
		if err != nil {
			return err
		}

		for _, name := range names {
			fmt.Fprintln(a.stdout, name)
		}

		return nil
	case "get":
		fset := a.newFlagSet("store get")
		out := fset.String("o", "", "output `file` (default standard output)")

		pos, err := parseArgs(fset, args)
		if err != nil {
			return err
		}

		if len(pos) != 1 {
			return usageError("store get <name> [-o out]")
		}

		c, err := s.Get(ctx, pos[0])
		if err != nil {
			return err
		}

		format, _ := a.cfg.format()

		return a.writeCurve(c, *out, format)
	case "put", "add":
		var name, path string

		switch {
		case cmd == "put" && len(args) == 2:
			name, path = args[0], args[1]
		case cmd == "add" && len(args) == 1:
			path = args[0]
		default:
			return usageError("store put <name> <file> | store add <file>")
		}

		c, _, err := loadCurve(path)
		if err != nil {
			return err
		}

		if name == "" {
			if name, err = s.Add(ctx, c); err != nil {
				return err
			}
		} else if err = s.Put(ctx, name, c); err != nil {
			return err
		}

		fmt.Fprintln(a.stdout, name)

		return nil
	case "rm":
		if len(args) == 0 {
			return usageError("store rm <name>...")
		}

		for _, name := range args {
			if err := s.Delete(ctx, name); err != nil {
				return err
			}
		}

		return nil
	case "eval":
		if len(args) < 2 {
			return usageError("store eval <name> <t>...")
		}

		ts, err := parseTimes(args[1:])
		if err != nil {
			return err
		}

		c, err := s.Get(ctx, args[0])
		if err != nil {
			return err
		}

		for _, t := range ts {
			fmt.Fprintf(a.stdout, "%g %g\n", t, c.Eval(t))
		}

		return nil
	default:
		return usageError("unknown store command %q", cmd)
	}
}
