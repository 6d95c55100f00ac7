package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	json "github.com/json-iterator/go"
	"github.com/rawbytedev/charconv"
	"github.com/rawbytedev/charconv/internal/report"
	"github.com/urfave/cli/v2"
)

const (
	typeArg      = "type"
	radixArg     = "radix"
	digitsArg    = "digits"
	formatArg    = "format"
	precisionArg = "precision"
	jsonArg      = "json"
)

var errInvalidInput = errors.New("invalid input")

type record struct {
	Input  string `json:"input"`
	Type   string `json:"type"`
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (e *env) convertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "parse each argument, or each line of stdin, and write it back out",
		ArgsUsage: "[value...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: typeArg, Aliases: []string{"t"}, Usage: "i8 to i64, u8 to u64, f32 or f64"},
			&cli.StringFlag{Name: radixArg, Aliases: []string{"r"}, Usage: "integer output radix: bin, oct, dec or hex"},
			&cli.IntFlag{Name: digitsArg, Aliases: []string{"d"}, Usage: "zero pad integer digits to this width"},
			&cli.StringFlag{Name: formatArg, Aliases: []string{"f"}, Usage: "float format: fixed, scientific, flex or hex"},
			&cli.IntFlag{Name: precisionArg, Aliases: []string{"p"}, Usage: "float precision, -1 for shortest"},
			&cli.BoolFlag{Name: jsonArg, Usage: "write one JSON record per value"},
		},
		Action: e.convert,
	}
}

// stringSetting returns the flag when set and the config value otherwise.
func stringSetting(c *cli.Context, name, fallback string) string {
	if c.IsSet(name) {
		return c.String(name)
	}
	return fallback
}

func intSetting(c *cli.Context, name string, fallback int) int {
	if c.IsSet(name) {
		return c.Int(name)
	}
	return fallback
}

func (e *env) style(c *cli.Context) (kind, style, error) {
	k, err := parseKind(stringSetting(c, typeArg, e.cfg.Type))
	if err != nil {
		return 0, style{}, err
	}
	r, err := parseRadix(stringSetting(c, radixArg, e.cfg.Radix))
	if err != nil {
		return 0, style{}, err
	}
	formatName := stringSetting(c, formatArg, e.cfg.Format)
	f, ok := charconv.ParseRealFormat(formatName)
	if !ok {
		return 0, style{}, fmt.Errorf("unknown float format %q", formatName)
	}
	s := style{
		radix:     r,
		digits:    intSetting(c, digitsArg, e.cfg.Digits.V),
		format:    f,
		precision: intSetting(c, precisionArg, e.cfg.Precision.V),
	}
	if s.digits < 0 || s.precision < -1 {
		return 0, style{}, fmt.Errorf("digits %d and precision %d out of range", s.digits, s.precision)
	}
	return k, s, nil
}

func (e *env) convert(c *cli.Context) error {
	k, s, err := e.style(c)
	if err != nil {
		return err
	}
	inputs := c.Args().Slice()
	if len(inputs) == 0 {
		sc := bufio.NewScanner(e.stdin)
		for sc.Scan() {
			if line := strings.TrimSpace(sc.Text()); line != "" {
				inputs = append(inputs, line)
			}
		}
		if err := sc.Err(); err != nil {
			return err
		}
	}

	var enc *json.Encoder
	if c.Bool(jsonArg) {
		enc = json.NewEncoder(e.stdout)
	}
	failed := 0
	for _, in := range inputs {
		e.metrics.conversions.WithLabelValues(k.String()).Inc()
		rec := record{Input: in, Type: k.String()}
		out, ok := k.convert(in, s)
		if ok {
			rec.Output = out
		} else {
			failed++
			e.metrics.failures.WithLabelValues(k.String()).Inc()
			err := fmt.Errorf("%w: %q is not a valid %s", errInvalidInput, in, k)
			e.rep.Report(err, report.Fields{"input": in, "type": k.String()})
			rec.Error = err.Error()
		}
		if enc != nil {
			if err := enc.Encode(rec); err != nil {
				return err
			}
			continue
		}
		if ok {
			fmt.Fprintln(e.stdout, out)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed: %w", failed, len(inputs), errInvalidInput)
	}
	return nil
}
