package shell

import (
	"bufio"
	"context"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/tiksnap/tiksnap/pkg/domain/interfaces"
	"github.com/tiksnap/tiksnap/pkg/domain/model"
	"github.com/tiksnap/tiksnap/pkg/domain/types"
	"github.com/tiksnap/tiksnap/pkg/utils/async"
	"github.com/tiksnap/tiksnap/pkg/utils/errutil"
)

const prompt = "tiksnap> "

type command struct {
	usage string
	run   func(ctx context.Context, args []string) error
}

// Shell is an interactive session: one command per user action
type Shell struct {
	session   interfaces.SessionUseCase
	navigator interfaces.Navigator
	printer   *Printer
	in        io.Reader

	group    async.Group
	commands map[string]command
	aliases  map[string]string
}

// New creates a shell over session. navigator may be nil, in which case image
// links are only printed.
func New(session interfaces.SessionUseCase, navigator interfaces.Navigator, printer *Printer, in io.Reader) *Shell {
	s := &Shell{
		session:   session,
		navigator: navigator,
		printer:   printer,
		in:        in,
	}

	s.commands = map[string]command{
		"get":    {usage: "get [url]      extract a post (the pasted input when no url)", run: s.cmdGet},
		"paste":  {usage: "paste          read the URL input from the clipboard", run: s.action(model.ActionPaste)},
		"mode":   {usage: "mode image|audio  switch display mode", run: s.cmdMode},
		"toggle": {usage: "toggle         switch to the other mode", run: s.action(model.ActionToggleMode)},
		"zip":    {usage: "zip            save all slideshow images as one zip", run: s.background(model.ActionDownloadZip)},
		"mp3":    {usage: "mp3            save the audio of the last submitted URL", run: s.background(model.ActionConvertAudio)},
		"image":  {usage: "image <n>      download image n through the proxy", run: s.cmdImage},
		"new":    {usage: "new            clear the input for a new download", run: s.action(model.ActionResetSession)},
		"show":   {usage: "show           print the current screen", run: s.cmdShow},
		"help":   {usage: "help           list commands", run: s.cmdHelp},
	}
	s.aliases = map[string]string{
		"g":     "get",
		"audio": "mp3",
		"reset": "new",
		"?":     "help",
	}

	return s
}

// Run reads commands until EOF or "quit" and waits for background operations
// before returning
func (s *Shell) Run(ctx context.Context) error {
	logger := ctxlog.From(ctx)
	defer s.group.Wait()

	scanner := bufio.NewScanner(s.in)
	s.printer.Println("type a TikTok URL or \"help\"")

	for {
		s.printer.Print(prompt)
		if !scanner.Scan() {
			break
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		name, args := fields[0], fields[1:]
		if name == "quit" || name == "exit" {
			break
		}
		if looksLikeURL(name) {
			name, args = "get", fields
		}
		if alias, ok := s.aliases[name]; ok {
			name = alias
		}

		cmd, ok := s.commands[name]
		if !ok {
			s.printer.Println("unknown command: " + name + " (try \"help\")")
			continue
		}

		if err := cmd.run(ctx, args); err != nil {
			errutil.Handle(ctx, "Command failed", goerr.Wrap(err, "shell command failed", goerr.V("command", name)))
		}
	}

	if err := scanner.Err(); err != nil {
		return goerr.Wrap(err, "failed to read input")
	}

	logger.Debug("Shell finished, waiting for background operations")
	return nil
}

func (s *Shell) action(action model.Action) func(ctx context.Context, args []string) error {
	return func(ctx context.Context, args []string) error {
		_, err := s.session.Dispatch(ctx, action, strings.Join(args, " "))
		return err
	}
}

// background runs a download so other commands stay usable meanwhile
func (s *Shell) background(action model.Action) func(ctx context.Context, args []string) error {
	return func(ctx context.Context, _ []string) error {
		s.group.Go(ctx, string(action), func(ctx context.Context) error {
			saved, err := s.session.Dispatch(ctx, action, "")
			if err != nil {
				errutil.Handle(ctx, "Background operation failed", err)
				return nil
			}
			s.printer.Saved(saved)
			return nil
		})
		return nil
	}
}

func (s *Shell) cmdGet(ctx context.Context, args []string) error {
	_, err := s.session.Dispatch(ctx, model.ActionSubmitExtract, strings.Join(args, " "))
	return err
}

func (s *Shell) cmdMode(ctx context.Context, args []string) error {
	if len(args) != 1 {
		s.printer.Println("usage: " + s.commands["mode"].usage)
		return nil
	}
	_, err := s.session.Dispatch(ctx, model.ActionSetMode, args[0])
	return err
}

func (s *Shell) cmdImage(ctx context.Context, args []string) error {
	if len(args) != 1 {
		s.printer.Println("usage: " + s.commands["image"].usage)
		return nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return goerr.Wrap(err, "image number must be an integer",
			goerr.T(types.ErrTagValidation),
			goerr.V("arg", args[0]),
		)
	}

	link, err := s.session.ImageLink(n - 1)
	if err != nil {
		s.printer.Println("no image " + args[0])
		return err
	}
	s.printer.Println(link)

	if s.navigator == nil {
		return nil
	}
	s.group.Go(ctx, "image", func(ctx context.Context) error {
		saved, err := s.navigator.Open(ctx, link)
		if err != nil {
			errutil.Handle(ctx, "Image download failed", err)
			return nil
		}
		s.printer.Saved(saved)
		return nil
	})
	return nil
}

func (s *Shell) cmdShow(ctx context.Context, _ []string) error {
	s.printer.Show(s.session.Screen())
	return nil
}

func (s *Shell) cmdHelp(ctx context.Context, _ []string) error {
	names := make([]string, 0, len(s.commands))
	for name := range s.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		s.printer.Println("  " + s.commands[name].usage)
	}
	s.printer.Println("  quit           leave the shell")
	return nil
}

func looksLikeURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
