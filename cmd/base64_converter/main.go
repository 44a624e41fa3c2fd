// Package main provides the base64_converter command. It serves the
// conversion API or converts text given as arguments or on stdin.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"base64_converter/config"
	"base64_converter/converter"
	"base64_converter/encoding"
	"base64_converter/server/http_server"
)

const usage = `Usage: base64_converter [-config file] <command> [flags] [text...]

Commands:
  serve                  serve the HTTP API
  encode [-format f]     encode text (base64, base64url, hex, binary, ascii85)
  decode [-format f]     decode text
  detect                 guess the format of text

Text is read from the arguments, or from stdin when none are given.
`

var errNoInput = errors.New("no input: pass text as arguments or pipe it on stdin")

type env struct {
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
	isTerminal func() bool
	serve      func(*config.Config) error
}

func main() {
	os.Exit(run(os.Args[1:], env{
		stdin:      os.Stdin,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		isTerminal: func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
		serve:      http_server.StartServer,
	}))
}

func run(args []string, e env) int {
	global := flag.NewFlagSet("base64_converter", flag.ContinueOnError)
	global.SetOutput(e.stderr)
	global.Usage = func() { fmt.Fprint(e.stderr, usage) }
	configPath := global.String("config", "", "path to a TOML config file")
	if err := global.Parse(args); err != nil {
		return 2
	}
	if global.NArg() == 0 {
		global.Usage()
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(e.stderr, "Error: %v\n", err)
		return 1
	}
	if err := cfg.ConfigureLogging(); err != nil {
		fmt.Fprintf(e.stderr, "Error: %v\n", err)
		return 1
	}

	command, rest := global.Arg(0), global.Args()[1:]
	switch command {
	case "serve":
		if err := e.serve(cfg); err != nil {
			logrus.WithError(err).Error("Server stopped")
			return 1
		}
		return 0
	case "encode", "decode":
		return runConvert(encoding.Mode(command), rest, cfg, e)
	case "detect":
		input, err := readInput(rest, e)
		if err != nil {
			fmt.Fprintf(e.stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintln(e.stdout, encoding.DetectInputFormatEnhanced(input))
		return 0
	default:
		fmt.Fprintf(e.stderr, "Error: unknown command %q\n", command)
		global.Usage()
		return 2
	}
}

func runConvert(mode encoding.Mode, args []string, cfg *config.Config, e env) int {
	fs := flag.NewFlagSet(string(mode), flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	formatName := fs.String("format", "base64", "codec format")
	wrap := fs.Bool("wrap", false, "break base64 output into lines")
	lineLength := fs.Int("line-length", cfg.LineLength, "line length used with -wrap")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	format, err := encoding.ParseFormat(*formatName)
	if err != nil {
		fmt.Fprintf(e.stderr, "Error: %v\n", err)
		return 2
	}
	input, err := readInput(fs.Args(), e)
	if err != nil {
		fmt.Fprintf(e.stderr, "Error: %v\n", err)
		return 1
	}

	out := converter.Convert(input, mode, format, converter.Options{
		LineBreaks: *wrap,
		LineLength: *lineLength,
	})
	if !out.Success {
		fmt.Fprintf(e.stderr, "Error: %s\n", out.Error)
		return 1
	}
	fmt.Fprintln(e.stdout, out.Output)
	return 0
}

// readInput joins args with spaces, or reads stdin when there are none. One
// trailing newline from stdin is dropped.
func readInput(args []string, e env) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if e.isTerminal != nil && e.isTerminal() {
		return "", errNoInput
	}
	data, err := io.ReadAll(e.stdin)
	if err != nil {
		return "", fmt.Errorf("error reading stdin: %w", err)
	}
	s := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(s, "\r"), nil
}
