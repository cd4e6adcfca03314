package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	jsoniter "github.com/json-iterator/go"
	"github.com/mattn/go-isatty"

	"github.com/fylein/fyle-sdk-go/fyle"
)

var json = jsoniter.Config{
	EscapeHTML:  true,
	SortMapKeys: true,
	UseNumber:   true,
}.Froze()

const (
	outputTable = "table"
	outputJSON  = "json"
)

// resolveOutput picks the output format. An empty mode means table on a
// terminal and json when stdout is piped.
func resolveOutput(mode string) (string, error) {
	switch strings.ToLower(mode) {
	case "":
		if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			return outputTable, nil
		}
		return outputJSON, nil
	case outputTable:
		return outputTable, nil
	case outputJSON:
		return outputJSON, nil
	default:
		return "", fmt.Errorf("invalid output format: %s (must be 'table' or 'json')", mode)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// projectColumns are shown first, in this order, when present
var projectColumns = []string{"id", "name", "code", "active"}

// writeProjects renders projects in the requested format
func writeProjects(w io.Writer, format string, projects []fyle.Project) error {
	if format == outputJSON {
		if projects == nil {
			projects = []fyle.Project{}
		}
		return writeJSON(w, projects)
	}

	if len(projects) == 0 {
		_, err := fmt.Fprintln(w, "No projects found.")
		return err
	}

	columns := tableColumns(projects)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(columns, "\t")))
	for _, p := range projects {
		cells := make([]string, len(columns))
		for i, col := range columns {
			if v, ok := p[col]; ok && v != nil {
				cells[i] = fmt.Sprint(v)
			}
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%d project(s)\n", len(projects))
	return err
}

// tableColumns returns the well-known columns present in any project,
// falling back to every key when none of them is.
func tableColumns(projects []fyle.Project) []string {
	present := map[string]bool{}
	for _, p := range projects {
		for k := range p {
			present[k] = true
		}
	}

	var columns []string
	for _, col := range projectColumns {
		if present[col] {
			columns = append(columns, col)
		}
	}
	if len(columns) > 0 {
		return columns
	}

	for k := range present {
		columns = append(columns, k)
	}
	sort.Strings(columns)
	return columns
}

// writeRefs renders upsert results in the requested format
func writeRefs(w io.Writer, format string, refs []fyle.ProjectRef) error {
	if format == outputJSON {
		if refs == nil {
			refs = []fyle.ProjectRef{}
		}
		return writeJSON(w, refs)
	}

	for _, ref := range refs {
		if _, err := fmt.Fprintf(w, "• %s\n", ref.ID()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\n%d project(s) created or updated\n", len(refs))
	return err
}
