// Command bcx is a thin CLI wrapper over the bencodex codec: it reads bytes
// from standard input, calls Encode/Decode or the JSON bridge, and writes
// the result to standard output.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bencodex/bencodex-go"
	"github.com/bencodex/bencodex-go/bencodexjson"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, "usage: bcx <encode|decode|validate|json-to-bencodex|bencodex-to-json> [flags]")
		return 2
	}

	cmd := args[0]
	flagSet := pflag.NewFlagSet("bcx", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)

	verbose := flagSet.BoolP("verbose", "v", false, "emit structured diagnostics to stderr")
	useSIMD := flagSet.Bool("simd", true, "use the two-stage SIMD decoder instead of the scalar one")
	base64Binary := flagSet.Bool("base64", false, "render ByteString values as base64 instead of hex in JSON output")
	maxDepth := flagSet.Int("max-depth", -1, "reject input nested deeper than this (-1: no limit)")
	maxStringLength := flagSet.Int("max-string-length", -1, "reject strings longer than this (-1: no limit)")

	if err := flagSet.Parse(args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}

	logger := newLogger(stderr, *verbose)

	data, err := io.ReadAll(stdin)
	if err != nil {
		fmt.Fprintln(stderr, "error reading stdin:", err)
		return 1
	}

	limits := limitsFromFlags(*maxDepth, *maxStringLength)
	opt := bencodexjson.Options{BinaryEncoding: bencodexjson.Hex}
	if *base64Binary {
		opt.BinaryEncoding = bencodexjson.Base64
	}

	switch cmd {
	case "encode":
		return cmdEncode(data, opt, stdout, stderr, logger)
	case "decode":
		return cmdDecode(data, limits, *useSIMD, opt, stdout, stderr, logger)
	case "validate":
		return cmdValidate(data, limits, *useSIMD, stdout, stderr, logger)
	case "bencodex-to-json":
		return cmdBencodexToJSON(data, limits, *useSIMD, opt, stdout, stderr, logger)
	case "json-to-bencodex":
		return cmdJSONToBencodex(data, opt, stdout, stderr, logger)
	default:
		fmt.Fprintf(stderr, "unknown subcommand %q\n", cmd)
		return 2
	}
}

func newLogger(stderr io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

func limitsFromFlags(maxDepth, maxStringLength int) bencodex.Limits {
	limits := bencodex.DefaultLimits()
	if maxDepth >= 0 {
		limits.MaxDepth = maxDepth
	}
	if maxStringLength >= 0 {
		limits.MaxStringLength = maxStringLength
	}
	return limits
}

func cmdEncode(data []byte, opt bencodexjson.Options, stdout, stderr io.Writer, logger *slog.Logger) int {
	v, err := bencodexjson.FromJSON(data, opt)
	if err != nil {
		fmt.Fprintln(stderr, "error: invalid JSON input:", err)
		return 1
	}
	if err := bencodex.EncodeTo(stdout, v); err != nil {
		fmt.Fprintln(stderr, "error encoding:", err)
		return 1
	}
	return 0
}

func cmdDecode(data []byte, limits bencodex.Limits, useSIMD bool, opt bencodexjson.Options, stdout, stderr io.Writer, logger *slog.Logger) int {
	v, err := decode(data, limits, useSIMD, logger)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	out, err := bencodexjson.ToJSON(v, opt)
	if err != nil {
		fmt.Fprintln(stderr, "error rendering JSON:", err)
		return 1
	}
	fmt.Fprintln(stdout, string(out))
	return 0
}

func cmdValidate(data []byte, limits bencodex.Limits, useSIMD bool, stdout, stderr io.Writer, logger *slog.Logger) int {
	if _, err := decode(data, limits, useSIMD, logger); err != nil {
		fmt.Fprintln(stderr, "invalid:", err)
		return 1
	}
	fmt.Fprintln(stdout, "valid")
	return 0
}

func cmdBencodexToJSON(data []byte, limits bencodex.Limits, useSIMD bool, opt bencodexjson.Options, stdout, stderr io.Writer, logger *slog.Logger) int {
	v, err := decode(data, limits, useSIMD, logger)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	out, err := bencodexjson.ToJSON(v, opt)
	if err != nil {
		fmt.Fprintln(stderr, "error rendering JSON:", err)
		return 1
	}
	fmt.Fprintln(stdout, string(out))
	return 0
}

func cmdJSONToBencodex(data []byte, opt bencodexjson.Options, stdout, stderr io.Writer, logger *slog.Logger) int {
	v, err := bencodexjson.FromJSON(data, opt)
	if err != nil {
		fmt.Fprintln(stderr, "error: invalid JSON input:", err)
		return 1
	}
	if err := bencodex.EncodeTo(stdout, v); err != nil {
		fmt.Fprintln(stderr, "error encoding:", err)
		return 1
	}
	return 0
}

func decode(data []byte, limits bencodex.Limits, useSIMD bool, logger *slog.Logger) (bencodex.Value, error) {
	if useSIMD {
		logger.Debug("decoding with SIMD pipeline", "bytes", len(data))
		return bencodex.DecodeSIMDWithLimits(data, limits)
	}
	logger.Debug("decoding with scalar pipeline", "bytes", len(data))
	return bencodex.DecodeWithLimits(data, limits)
}
