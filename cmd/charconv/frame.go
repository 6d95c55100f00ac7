package main

import (
	"fmt"
	"io"
	"os"

	json "github.com/json-iterator/go"
	"github.com/rawbytedev/charconv/pkg/textframe"
	"github.com/urfave/cli/v2"
)

const (
	outArg      = "out"
	inArg       = "in"
	compressArg = "compress"
	maxSizeArg  = "max-size"
	codeArg     = "code"
)

func (e *env) frameCommand() *cli.Command {
	return &cli.Command{
		Name:  "frame",
		Usage: "pack values into a checksummed frame or unpack one",
		Subcommands: []*cli.Command{
			{
				Name:      "encode",
				Usage:     "write the arguments as a data frame",
				ArgsUsage: "[value...]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: typeArg, Aliases: []string{"t"}, Usage: "parse arguments as this type instead of text"},
					&cli.StringFlag{Name: outArg, Aliases: []string{"o"}, Usage: "output file, stdout when empty", TakesFile: true},
					&cli.BoolFlag{Name: compressArg, Usage: "zstd compress the payload"},
					&cli.IntFlag{Name: codeArg, Usage: "write an error frame with this code and the arguments as message"},
					maxSizeFlag(),
				},
				Action: e.frameEncode,
			},
			{
				Name:  "decode",
				Usage: "print the values of a frame, one per line",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: inArg, Aliases: []string{"i"}, Usage: "input file, stdin when empty", TakesFile: true},
					&cli.BoolFlag{Name: jsonArg, Usage: "print the values as a JSON array"},
					maxSizeFlag(),
				},
				Action: e.frameDecode,
			},
		},
	}
}

func maxSizeFlag() cli.Flag {
	return &cli.StringFlag{Name: maxSizeArg, Usage: "largest frame accepted, such as 64KiB"}
}

func (e *env) frameOptions(c *cli.Context) textframe.Options {
	return textframe.Options{
		MaxFrameSize: stringSetting(c, maxSizeArg, e.cfg.Frame.MaxSize),
		Compress:     c.Bool(compressArg) || e.cfg.Frame.Compress,
		Reporter:     e.rep,
	}
}

func (e *env) frameEncode(c *cli.Context) error {
	enc, err := textframe.NewEncoder(e.frameOptions(c))
	if err != nil {
		return err
	}
	defer enc.Close()

	var frame []byte
	if c.IsSet(codeArg) {
		code := c.Int(codeArg)
		if code < 0 || code > 0xff {
			return fmt.Errorf("error code %d does not fit in a byte", code)
		}
		msg := ""
		if c.NArg() > 0 {
			msg = c.Args().First()
		}
		frame, err = enc.EncodeError(textframe.ErrorFrame{Code: byte(code), Message: msg})
	} else {
		values, verr := e.frameValues(c)
		if verr != nil {
			return verr
		}
		frame, err = enc.Encode(values...)
	}
	if err != nil {
		return err
	}
	e.metrics.frames.WithLabelValues("encode").Inc()

	if path := c.String(outArg); path != "" {
		return os.WriteFile(path, frame, 0o644)
	}
	_, err = e.stdout.Write(frame)
	return err
}

// frameValues parses the arguments as --type when given and keeps them as
// text otherwise.
func (e *env) frameValues(c *cli.Context) ([]any, error) {
	args := c.Args().Slice()
	values := make([]any, len(args))
	if !c.IsSet(typeArg) {
		for i, a := range args {
			values[i] = a
		}
		return values, nil
	}
	k, err := parseKind(c.String(typeArg))
	if err != nil {
		return nil, err
	}
	for i, a := range args {
		v, ok := k.parse(a)
		if !ok {
			e.metrics.failures.WithLabelValues(k.String()).Inc()
			return nil, fmt.Errorf("%w: %q is not a valid %s", errInvalidInput, a, k)
		}
		e.metrics.conversions.WithLabelValues(k.String()).Inc()
		values[i] = v
	}
	return values, nil
}

func (e *env) frameDecode(c *cli.Context) error {
	var (
		frame []byte
		err   error
	)
	if path := c.String(inArg); path != "" {
		frame, err = os.ReadFile(path)
	} else {
		frame, err = io.ReadAll(e.stdin)
	}
	if err != nil {
		return err
	}

	dec, err := textframe.NewDecoder(e.frameOptions(c))
	if err != nil {
		return err
	}
	defer dec.Close()

	typ, err := textframe.Peek(frame)
	if err != nil {
		return err
	}
	e.metrics.frames.WithLabelValues("decode").Inc()
	if typ == textframe.TypeError {
		ef, err := dec.DecodeError(frame)
		if err != nil {
			return err
		}
		return ef
	}

	spans, err := dec.Decode(frame)
	if err != nil {
		return err
	}
	if c.Bool(jsonArg) {
		values := make([]string, len(spans))
		for i, s := range spans {
			values[i] = string(s)
		}
		return json.NewEncoder(e.stdout).Encode(values)
	}
	for _, s := range spans {
		fmt.Fprintf(e.stdout, "%s\n", s)
	}
	return nil
}
