// internal/cli/help.go
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/law-makers/shelf/internal/ui"
)

const helpWidth = 80

// renderHelp writes the help page for cmd. The short form, shown after a
// usage error, leaves out the description, examples and global flags.
func renderHelp(w io.Writer, cmd *cobra.Command, full bool) {
	if full {
		fmt.Fprintf(w, "\n%s\n", ui.Bold(ui.Accent(strings.ToUpper(cmd.Name()))))
		if cmd.Short != "" {
			fmt.Fprintln(w, cmd.Short)
		}
		if cmd.Long != "" && cmd.Long != cmd.Short {
			fmt.Fprintf(w, "\n%s\n", text.WrapSoft(cmd.Long, helpWidth))
		}
	}

	section(w, "Usage")
	for _, line := range usageLines(cmd) {
		fmt.Fprintf(w, "  %s\n", ui.Accent(line))
	}

	if full && cmd.HasExample() {
		section(w, "Examples")
		for _, line := range exampleLines(cmd.Example) {
			fmt.Fprintln(w, line)
		}
	}

	if rows := commandRows(cmd); len(rows) > 0 {
		section(w, "Commands")
		helpTable(w, rows, ui.Accent)
	}
	if rows := flagRows(cmd.LocalFlags()); len(rows) > 0 {
		section(w, "Flags")
		helpTable(w, rows, ui.Success)
	}
	if full {
		if rows := flagRows(cmd.InheritedFlags()); len(rows) > 0 {
			section(w, "Global Flags")
			helpTable(w, rows, ui.Success)
		}
	}

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(w, "\n%s\n", ui.Dim(fmt.Sprintf("Use \"%s <command> --help\" for more information about a command.", cmd.CommandPath())))
	} else if !full {
		fmt.Fprintf(w, "\n%s\n", ui.Dim(fmt.Sprintf("Use \"%s --help\" for more information.", cmd.CommandPath())))
	}
	fmt.Fprintln(w)
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n", ui.Bold(title))
}

func usageLines(cmd *cobra.Command) []string {
	var lines []string
	if cmd.Runnable() {
		lines = append(lines, cmd.UseLine())
	}
	if cmd.HasAvailableSubCommands() {
		lines = append(lines, cmd.CommandPath()+" <command> [flags]")
	}
	return lines
}

// exampleLines formats an Example block: comments dimmed, commands prefixed
// with "$ ", and a blank line before a comment that follows a command
func exampleLines(example string) []string {
	var lines []string
	lastWasCommand := false
	for _, raw := range strings.Split(example, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if lastWasCommand {
				lines = append(lines, "")
			}
			lines = append(lines, "  "+ui.Dim(line))
			lastWasCommand = false
			continue
		}
		lines = append(lines, "  "+ui.Success("$ "+strings.TrimPrefix(line, "$ ")))
		lastWasCommand = true
	}
	return lines
}

func commandRows(cmd *cobra.Command) [][2]string {
	var rows [][2]string
	for _, c := range cmd.Commands() {
		if c.IsAvailableCommand() && c.Name() != "help" {
			rows = append(rows, [2]string{c.Name(), c.Short})
		}
	}
	return rows
}

// flagRows lists visible flags as "-n, --count int" and their usage
func flagRows(fs *pflag.FlagSet) [][2]string {
	var rows [][2]string
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		name := "    --" + f.Name
		if f.Shorthand != "" {
			name = "-" + f.Shorthand + ", --" + f.Name
		}
		varname, usage := pflag.UnquoteUsage(f)
		if varname != "" {
			name += " " + varname
		}
		if d := defaultNote(f); d != "" {
			usage += " " + d
		}
		rows = append(rows, [2]string{name, usage})
	})
	return rows
}

func defaultNote(f *pflag.Flag) string {
	switch f.DefValue {
	case "", "false", "0", "[]":
		return ""
	}
	if f.Value.Type() == "string" {
		return fmt.Sprintf("(default %q)", f.DefValue)
	}
	return fmt.Sprintf("(default %s)", f.DefValue)
}

// helpTable renders name/description rows without borders, wrapping long
// descriptions
func helpTable(w io.Writer, rows [][2]string, nameStyle func(string) string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	for _, r := range rows {
		t.AppendRow(table.Row{" " + nameStyle(r[0]), ui.Dim(r[1])})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: helpWidth - 20, WidthMaxEnforcer: text.WrapSoft},
	})
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateRows = false
	t.Render()
}
