package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/neurodance/blazor/razor"
	"github.com/spf13/cobra"
)

func newBuildCmd() *cobra.Command {
	var (
		dump       bool
		verbose    bool
		components []string
	)

	cmd := &cobra.Command{
		Use:   "build <file>...",
		Short: "Compile template files and print the generated render code",
		Long: `Compile one or more template files.

Generated render functions are printed to stdout. Diagnostics are printed
to stderr with a markup snippet showing where they point. Tags named with
--component are compiled as components; everything else is a plain element.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(verbose)
			reg := razor.NewTagSet(components...)
			opts := &razor.Options{Components: reg}

			failed := false
			for _, name := range args {
				logger.Debug("compiling", "file", name)
				f, err := os.Open(name)
				if err != nil {
					return fmt.Errorf("open template: %w", err)
				}
				res, err := razor.Compile(f, name, opts)
				_ = f.Close()
				if err != nil {
					// An internal error abandons this document only.
					logger.Error("compile failed", "file", name, "err", err)
					failed = true
					continue
				}

				for _, nd := range res.Diags {
					pos := nd.Diag.Source.Span
					fmt.Fprintf(os.Stderr, "%s:%d:%d: %s: %s\n\t%s\n",
						name, pos.Line, pos.Column, nd.Diag.Kind, nd.Diag.Detail,
						razor.DiagContext(res.Doc, nd.Node))
					failed = true
				}

				if dump {
					fmt.Print(razor.Dump(res.Doc))
					continue
				}
				out, err := razor.EmitGo(res.Doc, reg, funcName(name))
				if err != nil {
					logger.Error("emit failed", "file", name, "err", err)
					failed = true
					continue
				}
				fmt.Print(out)
			}
			if failed {
				return fmt.Errorf("compilation finished with errors")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "print the intermediate tree instead of generated code")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	cmd.Flags().StringSliceVar(&components, "component", nil, "tag name to treat as a component (repeatable)")

	return cmd
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// funcName derives a Go identifier for the render function from the
// template file name: "user-card.razor" becomes "RenderUserCard".
func funcName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	var sb strings.Builder
	up := true
	for _, r := range base {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			up = true
			continue
		}
		if up {
			sb.WriteRune(unicode.ToUpper(r))
			up = false
		} else {
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return "Render"
	}
	return "Render" + sb.String()
}
