package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"xqhint/internal/config"
	"xqhint/internal/hint"
	"xqhint/internal/host"
	"xqhint/internal/plugin"
)

var (
	completeLine   int
	completeCh     int
	completeTyped  string
	completeFormat string
	completeInsert int
)

var completeCmd = &cobra.Command{
	Use:   "complete <file>",
	Short: "Show the hints offered at a cursor position",
	Long: `Open <file> in an in-memory editor, anchor the hint session at the start of
the token under the cursor, replay --typed one character at a time and print
the hints the provider returns. Lines and columns are zero-based; columns
count characters, not bytes. A negative --line puts the cursor at the end of
the file.

With --insert N the N-th hint is inserted and the edited text is printed.
Nothing is written to disk.`,
	Example: `  xqhint complete main.xqy --line 3 --ch 12
  xqhint complete main.xqy --line 3 --ch 10 --typed fo --format json
  xqhint complete main.xqy --line 3 --ch 12 --insert 0
  xqhint complete main.xqy --line -1 --typed xs:`,
	Args: cobra.ExactArgs(1),
	RunE: runComplete,
}

func init() {
	completeCmd.Flags().IntVar(&completeLine, "line", 0, "Cursor line (zero-based, negative for end of file)")
	completeCmd.Flags().IntVar(&completeCh, "ch", 0, "Cursor column (zero-based)")
	completeCmd.Flags().StringVar(&completeTyped, "typed", "", "Characters to type at the cursor before asking for hints")
	completeCmd.Flags().StringVar(&completeFormat, "format", "human", "Output format (human, json, yaml)")
	completeCmd.Flags().IntVar(&completeInsert, "insert", -1, "Insert the hint at this index")
	rootCmd.AddCommand(completeCmd)
}

// CompletionResponseCLI is the result of one completion request
type CompletionResponseCLI struct {
	File       string        `json:"file" yaml:"file"`
	Position   host.Position `json:"position" yaml:"position"`
	Prefix     string        `json:"prefix" yaml:"prefix"`
	Hints      []string      `json:"hints" yaml:"hints"`
	Display    []string      `json:"display" yaml:"display"`
	Generation uint64        `json:"generation" yaml:"generation"`
	Stale      bool          `json:"stale,omitempty" yaml:"stale,omitempty"`
	Inserted   string        `json:"inserted,omitempty" yaml:"inserted,omitempty"`
	Text       string        `json:"text,omitempty" yaml:"text,omitempty"`
}

func runComplete(cmd *cobra.Command, args []string) error {
	format := OutputFormat(completeFormat)
	e, err := newEnv(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer e.Close()

	if format == FormatHuman {
		e.cfg.Display.Style = config.DisplayTerminal
	}
	resp, err := complete(e, args[0], host.Position{Line: completeLine, Ch: completeCh}, completeTyped, completeInsert)
	if err != nil {
		return err
	}

	output, err := FormatResponse(resp, format)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}

// complete runs one hint session against file the way an editor would.
func complete(e *env, file string, at host.Position, typed string, insert int) (*CompletionResponseCLI, error) {
	ctx := newContext()

	ws, err := e.workspace()
	if err != nil {
		return nil, err
	}
	ext := plugin.NewExtension(e.cfg, e.logger)
	if _, err := ext.Activate(ws); err != nil {
		return nil, err
	}

	ed, err := ws.Open(ctx, file)
	if err != nil {
		return nil, err
	}
	provider, ok := ws.ProviderForPath(file)
	if !ok {
		return nil, fmt.Errorf("no hint provider for %s", file)
	}
	doc := ed.Document()
	if at.Line < 0 {
		at = doc.End()
	}
	if !doc.Valid(at) {
		return nil, fmt.Errorf("position %s is outside %s", at, doc.File().Path)
	}

	line, _ := doc.Line(at.Line)
	start := host.Position{Line: at.Line, Ch: hint.TokenStart(line, at.Ch)}
	if err := ed.SetCursor(start); err != nil {
		return nil, err
	}
	provider.HasHints(ed, "")
	if err := ed.SetCursor(at); err != nil {
		return nil, err
	}

	last := ""
	if start.Ch < at.Ch {
		last = string([]rune(line)[at.Ch-1])
	}
	for _, r := range typed {
		if err := ed.Type(string(r)); err != nil {
			return nil, err
		}
		last = string(r)
		provider.HasHints(ed, last)
	}

	out := &CompletionResponseCLI{
		File:     doc.File().Path,
		Position: ed.CursorPos(),
		Hints:    []string{},
		Display:  []string{},
	}

	r := provider.GetHints(ctx, last)
	out.Prefix = hint.Prefix(ext.Provider().Session().WrittenSinceStart)
	if r == nil {
		e.logger.Info("No hints at cursor", "file", out.File, "position", out.Position.String(), "char", last)
		return out, nil
	}
	out.Generation = r.Generation
	out.Stale = r.Stale
	if r.Hints != nil {
		out.Display = r.Hints
	}
	if list, ok := ext.Provider().Current(); ok {
		out.Hints = list.Raw
	}

	if insert >= 0 {
		if insert >= len(out.Display) {
			return nil, fmt.Errorf("--insert %d out of range, %d hints", insert, len(out.Display))
		}
		out.Inserted = out.Hints[insert]
		before := doc.Version()
		provider.InsertHint(out.Display[insert])
		if doc.Version() == before {
			return nil, fmt.Errorf("hint %q was not inserted", out.Inserted)
		}
		out.Text = doc.Text()
	}
	return out, nil
}
