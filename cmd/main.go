package main

import (
	"flag"
	"fmt"
	"os"

	"sigil/internal/logger"
	"sigil/internal/runner"
	"sigil/pkg/color"

	"github.com/charmbracelet/log"
)

// Main entry point for the sigil scope demonstrator.
func main() {
	options := runner.Runner{}

	flag.BoolVar(&options.Help, "h", false, "Show help")
	flag.BoolVar(&options.Verbose, "v", false, "Verbose mode")
	flag.BoolVar(&options.Interactive, "i", false, "Interactive scope explorer")
	flag.BoolVar(&options.NoColor, "n", false, "No color")

	flag.Parse()
	args := flag.Args()

	logger.Init(options.Verbose, options.NoColor)
	if options.Help {
		fmt.Printf("Usage: %s [options] <script>\n", os.Args[0])
		fmt.Println("Options:")
		flag.PrintDefaults()
		return
	}

	if options.NoColor {
		color.EnableColor(false)
	}

	if !options.Interactive && len(args) == 0 {
		log.Fatal("No input script provided", "help", fmt.Sprintf("%s -h", os.Args[0]))
	}

	if len(args) > 0 {
		options.SourceFile = args[0]
	}

	err := options.Run()
	if err != nil {
		log.Fatal("Demonstration failed", "error", err)
	}
}
