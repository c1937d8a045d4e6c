package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mizuki/animlib/internal/api"
	"github.com/mizuki/animlib/internal/cli"
	"github.com/mizuki/animlib/internal/config"
	"github.com/mizuki/animlib/internal/diag"
	"github.com/mizuki/animlib/internal/service"
	"github.com/mizuki/animlib/internal/storage"
	"github.com/mizuki/animlib/internal/ui"
)

var version = "0.1.0"

func printHelp() {
	fmt.Printf(`animlib - animation library manager for Live2D-style rigs

USAGE:
    animlib [OPTIONS] [COMMAND]

OPTIONS:
    --help      Show this help information
    --version   Print version information
    --init      Create the animation library and config file
    --dir       Animation directory (overrides config and ANIMLIB_DIR)
    --server    Start the HTTP API server
    --port      Port for the HTTP API server (default: %d)

COMMANDS:
    (no command)       Start interactive TUI mode
    list, ls           List animations
    search <query>     Fuzzy search the catalog
    show, get <file>   Show an animation
    info <file>        Show catalog info for a file
    delete, rm <file>  Delete an animation
    refresh            Re-scan the animation directory
    preset <name>      Save a parameter preset
    import <path>      Import a Cubism motion3.json file
    copy <file>        Copy an animation's JSON to the clipboard
    git                Git-backed library sync
    help               Show CLI command help

EXAMPLES:
    animlib                                      # Interactive browser
    animlib --init                               # Initialize library
    animlib list --format json                   # List as JSON
    animlib preset look-right --param ParamAngleX=30
    animlib import motions/idle.motion3.json
    animlib --server --port 9000                 # HTTP API

STORAGE:
    Default directory: ~/.animlib/animations
    Override with: ANIMLIB_DIR=<path> or library_dir in ~/.animlib/config.yaml
`, config.DefaultPort)
}

func main() {
	var (
		showHelp    = flag.Bool("help", false, "show help information")
		showVersion = flag.Bool("version", false, "print version information")
		initLibrary = flag.Bool("init", false, "create the animation library and config file")
		dirFlag     = flag.String("dir", "", "animation directory")
		serverMode  = flag.Bool("server", false, "start the HTTP API server")
		portFlag    = flag.Int("port", 0, "port for the HTTP API server")
	)
	flag.Usage = printHelp
	flag.Parse()

	if *showHelp {
		printHelp()
		return
	}
	if *showVersion {
		fmt.Printf("animlib %s\n", version)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if cfg.Theme != "" && os.Getenv("ANIMLIB_THEME") == "" {
		os.Setenv("ANIMLIB_THEME", cfg.Theme)
	}

	dir := cfg.AnimationsDir()
	if *dirFlag != "" {
		dir = *dirFlag
	}

	if *initLibrary {
		if _, err := storage.Open(dir, diag.Console()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := cfg.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Animation library initialized at %s\n", dir)
		return
	}

	args := flag.Args()

	// Interactive mode keeps stderr quiet; diagnostics surface in the UI.
	var reporter diag.Reporter = diag.Console()
	if len(args) == 0 && !*serverMode {
		reporter = diag.Nop{}
	}

	store, err := storage.Open(dir, reporter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	svc := service.New(store)

	switch {
	case *serverMode:
		port := cfg.Port
		if *portFlag != 0 {
			port = *portFlag
		}
		if err := api.NewServer(svc, port).Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case len(args) > 0:
		if err := cli.NewCLI(svc).ExecuteCommand(args); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

	default:
		program := tea.NewProgram(ui.NewModel(svc), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}
