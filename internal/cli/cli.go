// Package cli provides the headless command-line interface over the
// animation service.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mizuki/animlib/internal/clipboard"
	apperrors "github.com/mizuki/animlib/internal/errors"
	"github.com/mizuki/animlib/internal/git"
	"github.com/mizuki/animlib/internal/models"
	"github.com/mizuki/animlib/internal/renderer"
	"github.com/mizuki/animlib/internal/service"
)

// CLI executes animation library subcommands.
type CLI struct {
	service      *service.Service
	gitSync      *git.Sync
	errorHandler *apperrors.CLIErrorHandler
	out          io.Writer
}

// NewCLI creates a new CLI instance writing to stdout.
func NewCLI(svc *service.Service) *CLI {
	return &CLI{
		service:      svc,
		gitSync:      git.NewSync(svc.Dir()),
		errorHandler: apperrors.NewCLIErrorHandler(os.Getenv("ANIMLIB_VERBOSE") != ""),
		out:          os.Stdout,
	}
}

// SetOutput redirects command output, used by tests.
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}

// ExecuteCommand processes a CLI command and returns the result
func (c *CLI) ExecuteCommand(args []string) error {
	if len(args) == 0 {
		return c.printUsage()
	}

	command := args[0]
	commandArgs := args[1:]

	var err error
	switch command {
	case "list", "ls":
		err = c.listAnimations(commandArgs)
	case "show", "get":
		err = c.showAnimation(commandArgs)
	case "search":
		err = c.searchAnimations(commandArgs)
	case "info":
		err = c.showInfo(commandArgs)
	case "delete", "rm":
		err = c.deleteAnimation(commandArgs)
	case "refresh":
		err = c.refresh()
	case "preset":
		err = c.createPreset(commandArgs)
	case "import":
		err = c.importMotion(commandArgs)
	case "copy":
		err = c.copyAnimation(commandArgs)
	case "git":
		err = c.handleGit(commandArgs)
	case "help":
		err = c.printUsage()
	default:
		err = apperrors.CommandNotFoundError(command)
	}

	if err != nil {
		return c.errorHandler.HandleError(err)
	}
	return nil
}

// parseArgs splits positional arguments from --key value / --key=value
// flags. Repeated flags collect into a slice.
func parseArgs(args []string) ([]string, map[string][]string) {
	var positional []string
	flags := make(map[string][]string)

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") {
			positional = append(positional, arg)
			continue
		}
		key := strings.TrimPrefix(arg, "--")
		if eq := strings.Index(key, "="); eq >= 0 {
			flags[key[:eq]] = append(flags[key[:eq]], key[eq+1:])
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "--") {
			flags[key] = append(flags[key], args[i+1])
			i++
		} else {
			flags[key] = append(flags[key], "true")
		}
	}
	return positional, flags
}

func flagValue(flags map[string][]string, key, fallback string) string {
	if values, ok := flags[key]; ok && len(values) > 0 {
		return values[len(values)-1]
	}
	return fallback
}

func (c *CLI) listAnimations(args []string) error {
	_, flags := parseArgs(args)
	return c.printEntries(c.service.List(), flagValue(flags, "format", "table"))
}

func (c *CLI) searchAnimations(args []string) error {
	positional, flags := parseArgs(args)
	if len(positional) == 0 {
		return apperrors.InvalidCommandError("search", "query is required")
	}
	query := strings.Join(positional, " ")
	return c.printEntries(c.service.Search(query), flagValue(flags, "format", "table"))
}

func (c *CLI) printEntries(entries []models.CatalogEntry, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return apperrors.InternalError(err.Error())
		}
		fmt.Fprintln(c.out, string(data))
	case "table":
		fmt.Fprintf(c.out, "%-24s %-28s %10s %10s\n", "NAME", "FILE", "DURATION", "KEYFRAMES")
		for _, entry := range entries {
			duration := "-"
			if entry.Duration > 0 {
				duration = fmt.Sprintf("%.1fs", entry.Duration)
			}
			count := strconv.Itoa(entry.KeyframeCount)
			if entry.IsPreset() {
				count = "preset"
			}
			fmt.Fprintf(c.out, "%-24s %-28s %10s %10s\n", entry.Name, entry.FileName, duration, count)
		}
	case "text":
		for _, entry := range entries {
			fmt.Fprintln(c.out, entry.FileName)
		}
	default:
		return apperrors.InvalidCommandError("list", fmt.Sprintf("unknown format %q (json, table, text)", format))
	}
	return nil
}

func (c *CLI) showAnimation(args []string) error {
	positional, flags := parseArgs(args)
	if len(positional) == 0 {
		return apperrors.InvalidCommandError("show", "file name is required")
	}
	fileName := positional[0]

	doc, err := c.service.Load(fileName)
	if err != nil {
		return err
	}

	switch format := flagValue(flags, "format", "markdown"); format {
	case "json":
		text, err := renderer.JSON(doc)
		if err != nil {
			return apperrors.InternalError(err.Error())
		}
		fmt.Fprint(c.out, text)
	case "markdown", "md":
		fmt.Fprint(c.out, renderer.Markdown(fileName, doc))
	default:
		return apperrors.InvalidCommandError("show", fmt.Sprintf("unknown format %q (json, markdown)", format))
	}
	return nil
}

func (c *CLI) showInfo(args []string) error {
	positional, _ := parseArgs(args)
	if len(positional) == 0 {
		return apperrors.InvalidCommandError("info", "file name is required")
	}
	entry, err := c.service.Info(positional[0])
	if err != nil {
		return err
	}
	data, marshalErr := json.MarshalIndent(entry, "", "  ")
	if marshalErr != nil {
		return apperrors.InternalError(marshalErr.Error())
	}
	fmt.Fprintln(c.out, string(data))
	return nil
}

func (c *CLI) deleteAnimation(args []string) error {
	positional, _ := parseArgs(args)
	if len(positional) == 0 {
		return apperrors.InvalidCommandError("delete", "file name is required")
	}
	if err := c.service.Delete(positional[0]); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Deleted %s\n", positional[0])
	return nil
}

func (c *CLI) refresh() error {
	c.service.Refresh()
	fmt.Fprintf(c.out, "Library refreshed: %d animations\n", len(c.service.List()))
	return nil
}

func (c *CLI) createPreset(args []string) error {
	positional, flags := parseArgs(args)
	if len(positional) == 0 {
		return apperrors.InvalidCommandError("preset", "preset name is required")
	}
	name := strings.Join(positional, " ")

	parameters := make(map[string]float64)
	for _, pair := range flags["param"] {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return apperrors.InvalidCommandError("preset", fmt.Sprintf("bad --param %q, expected NAME=VALUE", pair))
		}
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return apperrors.InvalidCommandError("preset", fmt.Sprintf("bad --param value %q: not a number", value))
		}
		parameters[key] = f
	}
	if len(parameters) == 0 {
		return apperrors.InvalidCommandError("preset", "at least one --param NAME=VALUE is required")
	}

	saved, err := c.service.SavePreset(parameters, name, flagValue(flags, "description", ""), flagValue(flags, "file", ""))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Preset saved: %s (%d parameters)\n", saved.Metadata.Name, len(saved.Parameters))
	return nil
}

func (c *CLI) importMotion(args []string) error {
	positional, flags := parseArgs(args)
	if len(positional) == 0 {
		return apperrors.InvalidCommandError("import", "motion3.json path is required")
	}

	fps := 0.0
	if raw := flagValue(flags, "fps", ""); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return apperrors.InvalidCommandError("import", fmt.Sprintf("bad --fps value %q", raw))
		}
		fps = f
	}

	doc, err := c.service.ImportMotion(positional[0], flagValue(flags, "file", ""), fps)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Imported %s: %d keyframes, %.2fs\n", doc.Metadata.Name, len(doc.Keyframes), doc.Metadata.Duration)
	return nil
}

func (c *CLI) copyAnimation(args []string) error {
	positional, _ := parseArgs(args)
	if len(positional) == 0 {
		return apperrors.InvalidCommandError("copy", "file name is required")
	}
	doc, err := c.service.Load(positional[0])
	if err != nil {
		return err
	}
	text, renderErr := renderer.JSON(doc)
	if renderErr != nil {
		return apperrors.InternalError(renderErr.Error())
	}
	if err := clipboard.Copy(text); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternalError, "clipboard copy failed")
	}
	fmt.Fprintf(c.out, "Copied %s to clipboard\n", positional[0])
	return nil
}

func (c *CLI) handleGit(args []string) error {
	if len(args) == 0 {
		return apperrors.InvalidCommandError("git", "subcommand required (setup, push, pull, status)")
	}
	switch args[0] {
	case "setup":
		if len(args) < 2 {
			return apperrors.InvalidCommandError("git setup", "remote URL is required")
		}
		if err := c.gitSync.Setup(args[1]); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "Git sync configured")
	case "push":
		message := ""
		if len(args) > 1 {
			message = strings.Join(args[1:], " ")
		}
		if err := c.gitSync.Push(message); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "Library pushed")
	case "pull":
		if err := c.gitSync.Pull(); err != nil {
			return err
		}
		c.service.Refresh()
		fmt.Fprintln(c.out, "Library pulled")
	case "status":
		fmt.Fprintln(c.out, c.gitSync.Status())
	default:
		return apperrors.InvalidCommandError("git", fmt.Sprintf("unknown subcommand %q", args[0]))
	}
	return nil
}

func (c *CLI) printUsage() error {
	fmt.Fprint(c.out, `animlib - animation library manager

COMMANDS:
    list, ls                 List animations (--format json|table|text)
    search <query>           Fuzzy search the catalog
    show, get <file>         Show an animation (--format json|markdown)
    info <file>              Show catalog info for a file
    delete, rm <file>        Delete an animation file
    refresh                  Re-scan the animation directory
    preset <name>            Save a parameter preset
                             (--param NAME=VALUE ... [--description d] [--file f])
    import <path>            Import a Cubism motion3.json file
                             ([--file f] [--fps n])
    copy <file>              Copy an animation's JSON to the clipboard
    git setup|push|pull|status
                             Git-backed library sync
    help                     Show this help
`)
	return nil
}
