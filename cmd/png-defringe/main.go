package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ironsheep/png-defringe/internal/defringe"
	"github.com/ironsheep/png-defringe/internal/imaging"
	"github.com/ironsheep/png-defringe/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	debug := os.Getenv("PNG_DEFRINGE_LOG_LEVEL") == "debug"

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, debug))
}

// run executes the command line in args and returns the process exit code.
func run(args []string, stdout, stderr io.Writer, debug bool) int {
	if len(args) == 1 {
		switch args[0] {
		case "--version", "-v", "version":
			fmt.Fprintf(stdout, "png-defringe %s\n", Version)
			fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
			return 0
		case "--help", "-h", "help":
			printUsage(stdout)
			return 0
		case "serve":
			if debug {
				log.Printf("png-defringe MCP server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
			}
			if err := server.New().Run(); err != nil {
				log.Printf("Server error: %v", err)
				return 1
			}
			return 0
		}
	}

	if len(args) != 3 {
		printUsage(stderr)
		return 2
	}

	if err := defringeFile(args[0], args[1], args[2], debug); err != nil {
		log.Printf("Error: %v", err)
		return 1
	}
	return 0
}

// defringeFile loads input, applies the named action and writes output.
func defringeFile(actionName, input, output string, debug bool) error {
	action, err := defringe.ParseAction(actionName)
	if err != nil {
		return err
	}

	grid, err := imaging.LoadGrid(imaging.NewImageCache(), input)
	if err != nil {
		return err
	}

	res, err := defringe.Apply(grid, action)
	if errors.Is(err, defringe.ErrNoOpaquePixels) {
		return fmt.Errorf("%s: every pixel is transparent, nothing to average (try \"match\" or \"black\")", input)
	}
	if err != nil {
		return err
	}

	if !imaging.KeepsAlpha(output) {
		log.Printf("Warning: %s cannot store alpha, transparency will be lost", output)
	}
	if err := imaging.Save(grid, output); err != nil {
		return err
	}

	if debug {
		log.Printf("%s: %s %dx%d, %d transparent pixels, %d changed, %d passes, average %s -> %s",
			input, res.Action, res.Width, res.Height, res.TransparentPixels,
			res.PixelsChanged, res.Passes, res.AverageHex, output)
	}
	return nil
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "png-defringe - remove color fringes from transparent pixels")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  png-defringe <action> <input_file> <output_file>")
	fmt.Fprintln(w, "  png-defringe serve")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Actions:")
	for _, a := range defringe.Actions() {
		fmt.Fprintf(w, "  %-8s %s\n", a, a.Description())
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  --version, -v    Print version information")
	fmt.Fprintln(w, "  --help, -h       Print this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintln(w, "  PNG_DEFRINGE_LOG_LEVEL=debug    Enable debug logging")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "serve runs an MCP server over stdin/stdout exposing the same actions as tools.")
}
