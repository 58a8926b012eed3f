package runner

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"sigil/pkg/color"
	"sigil/pkg/script"

	"github.com/peterh/liner"
)

const (
	historyFile = ".sigil_history"
	prompt      = ">> "
)

var banner = "sigil scope explorer\n" +
	"Ctrl+C cancels input, Ctrl+D exits. Type :quit to exit, :help for statements."

var helpText = `statements:
  classify <token>           print the scope kind of a token
  define <name> = <literal>  bind a value (literals: 1, 2.5, true, "s", nil, [])
  resolve <name|A::B::N>     print the bound value, or undefined
  append <name> <literal>    append to a list-valued binding
  begin <callable> / end     push / pop a frame
  module <Name> / close      enter / leave a module namespace
  class <Name> / close       enter / leave a class namespace
  new <ClassName>            construct an instance, make it the receiver
  detach                     clear the receiver
`

// repl runs the interactive scope explorer on one persistent session.
func (opts *Runner) repl() error {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	sess := script.NewSession(nil, script.WithWriter(os.Stdout))

	for {
		line, err := ln.Prompt(prompt)
		if err != nil {
			// Ctrl+C aborts the current line, Ctrl+D (or a closed
			// terminal) ends the session.
			if err == liner.ErrPromptAborted {
				continue
			}

			fmt.Println()
			return nil
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit":
				return nil
			case ":help":
				fmt.Print(helpText)
			default:
				fmt.Println("unknown command. Type :quit to exit, :help for statements.")
			}
			continue
		}

		out, err := sess.ExecLine(line)
		if out != "" {
			fmt.Println(color.BlueText(out))
		}
		if err != nil {
			fmt.Println(color.Error(err.Error()))
		}

		reportWarnings(sess)
		ln.AppendHistory(trimmed)
	}
}
