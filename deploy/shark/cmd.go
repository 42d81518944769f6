package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/forest33/shark/business/entity"
	"github.com/forest33/shark/pkg/codec"
)

const (
	commandDissect   = "dissect"
	commandProtocols = "protocols"
	commandServe     = "serve"
	commandInit      = "init"
	commandHelp      = "help"
)

type commandData struct {
	configPath   string
	protocol     string
	file         string
	inputFormat  string
	outputFormat string
	color        string
	tolerant     bool
	verbose      bool
	args         []string
}

var commandHandlers = map[string]func(*commandData) int{
	commandDissect:   handlerDissect,
	commandProtocols: handlerProtocols,
	commandServe:     handlerServe,
	commandInit:      handlerInit,
}

func parseCommandLine() (string, *commandData) {
	var (
		data    = &commandData{}
		args    = os.Args[1:]
		command = commandDissect
	)

	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		if _, ok := commandHandlers[args[0]]; ok {
			command, args = args[0], args[1:]
		} else if args[0] == commandHelp {
			printHelp()
			os.Exit(0)
		}
	}
	fs := pflag.NewFlagSet(command, pflag.ExitOnError)
	fs.StringVarP(&data.configPath, "config", "c", "", "configuration file (default: $SHARK_CONFIG or shark.yaml next to the executable)")
	fs.BoolVarP(&data.verbose, "verbose", "v", false, "debug logging")

	switch command {
	case commandDissect:
		fs.StringVarP(&data.protocol, "protocol", "p", "", "first dissector (default: Dissection.rootProtocol)")
		fs.StringVarP(&data.file, "file", "f", "", "capture file, - reads stdin")
		fs.StringVarP(&data.inputFormat, "input", "i", "", "capture format (auto, hex, raw, hdlc)")
		fs.StringVarP(&data.outputFormat, "output", "o", "", "output format (text, json, yaml)")
		fs.StringVar(&data.color, "color", "", "coloured text output (auto, always, never)")
		fs.BoolVarP(&data.tolerant, "tolerant", "t", false, "keep dissected layers when a nested layer fails")
	case commandProtocols:
		fs.StringVarP(&data.outputFormat, "output", "o", "", "output format (text, json, yaml)")
	case commandServe:
		fs.StringVarP(&data.protocol, "protocol", "p", "", "first dissector (default: Dissection.rootProtocol)")
		fs.StringVarP(&data.outputFormat, "output", "o", "", "ingest output format (text, json, yaml)")
		fs.BoolVarP(&data.tolerant, "tolerant", "t", false, "keep dissected layers when a nested layer fails")
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	data.args = fs.Args()

	return command, data
}

func handlerDissect(data *commandData) int {
	frames, err := readFrames(data)
	if err != nil {
		zlog.Error().Err(err).Msg("failed to read frames")
		return 1
	}
	if len(frames) == 0 {
		zlog.Warn().Msg("no frames to dissect")
		return 1
	}

	var (
		formatter = newFormatter()
		failed    int
	)
	for i, frame := range frames {
		ds, err := sharkUseCase.Dissect("", frame)
		if err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "frame %d: %v\n", i+1, err)
			continue
		}
		if len(frames) > 1 && cfg.Output.Format == entity.OutputFormatText {
			fmt.Fprintf(os.Stdout, "# frame %d\n", i+1)
		}
		if err := formatter.Format(os.Stdout, ds); err != nil {
			zlog.Error().Err(err).Msg("failed to write dissection")
			return 1
		}
	}

	zlog.Debug().Int("frames", len(frames)).Int("failed", failed).Msg("dissection complete")

	if failed != 0 {
		return 1
	}
	return 0
}

func readFrames(data *commandData) ([][]byte, error) {
	switch {
	case data.file == "-":
		return captureAdapter.Read(os.Stdin)
	case data.file != "":
		return captureAdapter.ReadFile(data.file)
	case len(data.args) != 0:
		frame, err := codec.ParseHex(strings.Join(data.args, " "))
		if err != nil {
			return nil, err
		}
		return [][]byte{frame}, nil
	default:
		return captureAdapter.Read(os.Stdin)
	}
}

func handlerProtocols(_ *commandData) int {
	protocols := sharkUseCase.Protocols()

	var err error
	switch cfg.Output.Format {
	case entity.OutputFormatJSON:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		err = enc.Encode(protocols)
	case entity.OutputFormatYAML:
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		err = enc.Encode(protocols)
	default:
		err = printProtocols(os.Stdout, protocols)
	}
	if err != nil {
		zlog.Error().Err(err).Msg("failed to list protocols")
		return 1
	}
	return 0
}

func printProtocols(w io.Writer, protocols []*entity.ProtocolInfo) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tNEXT")
	for _, p := range protocols {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.ID, p.Name, strings.Join(p.Nexts, ", "))
	}
	return tw.Flush()
}

func handlerServe(_ *commandData) int {
	return serve()
}

func handlerInit(_ *commandData) int {
	cfgHandler.Update(cfg)
	if err := cfgHandler.Save(); err != nil {
		zlog.Error().Err(err).Msg("failed to save configuration")
		return 1
	}

	zlog.Info().Str("path", cfgHandler.GetPath()).Msg("initialization successfully complete")
	return 0
}

func printHelp() {
	fmt.Printf("Usage: shark [command] [flags] [hex bytes...]\n")
	fmt.Printf(" dissect	- dissect frames from arguments, a capture file or stdin (default)\n")
	fmt.Printf(" protocols	- list registered dissectors\n")
	fmt.Printf(" serve		- run REST API and UDP ingest\n")
	fmt.Printf(" init		- write configuration file with defaults\n")
	fmt.Printf(" help		- show this help\n")
	fmt.Printf("Get help for a specific command: shark command -h\n")
}
