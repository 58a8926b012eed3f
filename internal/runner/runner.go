package runner

import (
	"fmt"
	"os"

	"sigil/pkg/color"
	"sigil/pkg/script"

	"github.com/charmbracelet/log"
)

type Runner struct {
	Help        bool   // Show help message
	Verbose     bool   // Enable verbose output
	Interactive bool   // Run the interactive prompt instead of a script
	NoColor     bool   // Disable colored output
	SourceFile  string // Path to the demonstration script
}

// Run parses the demonstration script and executes it statement by
// statement, reporting resolution errors without aborting the run.
func (opts *Runner) Run() error {
	if opts.Interactive {
		return opts.repl()
	}

	log.Info("Processing file", "file", opts.SourceFile)

	input, err := os.ReadFile(opts.SourceFile)
	if err != nil {
		log.Fatal("Failed to read file", "file", opts.SourceFile, "error", err)
	}

	program, parseErrors := script.Parse(string(input))
	if len(parseErrors) > 0 {
		fmt.Println(color.BrightRedText("=== Script Errors ==="))
		fmt.Println(color.RedText(parseErrors[0].Error()))
		return fmt.Errorf("parsing failed with %d errors", len(parseErrors))
	}

	if opts.Verbose {
		fmt.Println(color.GreenText("\n=== Parsed Statements ==="))
		if len(program) == 0 {
			fmt.Println(color.GrayText("Empty script."))
		} else {
			for i, st := range program {
				fmt.Printf("%s: %s %s\n",
					color.CyanText(fmt.Sprintf("%d", i)),
					color.YellowText(string(st.Op)),
					color.BlueText(statementArgs(st)))
			}
		}
	}

	sess := script.NewSession(program, script.WithWriter(os.Stdout))

	fmt.Println(color.GreenText("\n=== Demonstration Output ==="))
	if err := sess.Run(func(stmtErr error) {
		fmt.Println(color.Error(stmtErr.Error()))
	}); err != nil {
		return fmt.Errorf("demonstration failed: %w", err)
	}

	reportWarnings(sess)
	return nil
}

// reportWarnings flushes constant-redefinition advisories.
func reportWarnings(sess *script.Session) {
	for _, w := range sess.Resolver().TakeWarnings() {
		log.Warn("Constant redefined",
			"name", w.Name,
			"namespace", w.Namespace,
			"was", w.Old.String(),
			"now", w.New.String())
	}
}

// statementArgs renders a statement's operands for the verbose dump.
func statementArgs(st script.Statement) string {
	if st.Arg != "" {
		return fmt.Sprintf("%s %s", st.Name, st.Arg)
	}

	return st.Name
}
