package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"treedraw/config"
	"treedraw/layout"
	"treedraw/render"
	"treedraw/tree"
)

func main() {
	var output string
	var (
		input      = flag.String("input", "", "Input tree JSON file (a positional argument works too)")
		configPath = flag.String("config", "settings.json", "Settings JSON file")
		format     = flag.String("format", "", "Output format: png, svg, ascii (default: inferred from the output extension)")
		verbose    = flag.Bool("v", false, "Print the parsed tree and canvas size")
	)
	flag.StringVar(&output, "o", "out.png", "Output file")
	flag.StringVar(&output, "output", "out.png", "Output file")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [tree.json]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Renders a serialized B+ Tree as an image.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s tree.json                  # render tree.json to out.png\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --input=tree.json -o t.svg # vector output\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -format ascii tree.json    # box-drawing output\n", os.Args[0])
	}
	flag.Parse()

	in := *input
	if in == "" && flag.NArg() > 0 {
		in = flag.Arg(0)
	}
	if in == "" {
		in = "in.json"
	}

	// The settings file is optional unless the user pointed at one.
	configRequired := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			configRequired = true
		}
	})

	cfg, err := config.Load(*configPath, configRequired)
	if err != nil {
		fail(err)
	}

	f, err := os.Open(in)
	if err != nil {
		fail(fmt.Errorf("cannot read input: %v", err))
	}
	t, err := tree.Load(f, cfg.NodeName)
	f.Close()
	if err != nil {
		fail(err)
	}

	res, err := layout.New(cfg).Layout(t)
	if err != nil {
		fail(err)
	}

	outFormat := render.FormatForPath(output)
	if *format != "" {
		if outFormat, err = render.ParseFormat(*format); err != nil {
			fail(err)
		}
	}
	renderer, err := render.New(outFormat)
	if err != nil {
		fail(err)
	}

	data, err := renderer.Render(res, cfg)
	if err != nil {
		fail(err)
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		fail(err)
	}

	if *verbose {
		fmt.Print(t)
		fmt.Printf("%s %dx%d -> %s\n", color.GreenString("rendered"), res.Width, res.Height, output)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("error:"), err)
	os.Exit(1)
}
