package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"propmarket/internal/analysis"
	"propmarket/internal/report"
	"propmarket/internal/types"
)

// browseCmd lists every area and shows its detail on Enter.
var browseCmd = &cobra.Command{
	Use:   "browse [auto|real|synthetic|sample]",
	Short: "Browse per-area statistics interactively",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	mode := ""
	if len(args) > 0 {
		mode = args[0]
	}
	table, _, _, err := loadTable(mode)
	if err != nil {
		return err
	}
	summaries, err := analysis.AreaSummaries(table)
	if err != nil {
		return err
	}
	names := loadGazetteer()
	lines := make([]string, len(summaries))
	for i, s := range summaries {
		summaries[i].City = nameOr(names, s.Area, s.City)
		lines[i] = listLine(summaries[i])
	}

	out := cmd.OutOrStdout()
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		for _, l := range lines {
			fmt.Fprintln(out, l)
		}
		return nil
	}
	interactiveSelect(os.Stdin, out, lines, func(i int) {
		io.WriteString(out, areaDetail(table, summaries[i]))
	})
	return nil
}

func listLine(s analysis.AreaSummary) string {
	return fmt.Sprintf("%-28s %6d sales  mean %s", report.AreaName(s.Area, s.City), s.Count, report.Currency(s.Mean))
}

// areaDetail renders one area's statistics and its breakdown.
func areaDetail(table *types.PropertyTable, s analysis.AreaSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n", report.AreaName(s.Area, s.City), strings.Repeat("-", 40))
	fmt.Fprintf(&b, "%-20s %d\n", "Sales:", s.Count)
	fmt.Fprintf(&b, "%-20s %s\n", "Mean price:", report.Currency(s.Mean))
	fmt.Fprintf(&b, "%-20s %s\n", "Std dev:", report.Currency(s.StdDev))
	fmt.Fprintf(&b, "%-20s %s\n", "Min price:", report.Currency(s.Min))
	fmt.Fprintf(&b, "%-20s %s\n", "Max price:", report.Currency(s.Max))

	area := analysis.FilterAreas(table, []string{s.Area})
	for _, c := range []analysis.Comparison{analysis.CompareNewBuild(area), analysis.CompareTenure(area)} {
		for _, g := range []analysis.GroupMean{c.Left, c.Right} {
			v := "n/a"
			if g.OK {
				v = fmt.Sprintf("%s (%d)", report.Currency(g.Mean), g.Count)
			}
			fmt.Fprintf(&b, "%-20s %s\n", strings.ToUpper(g.Label[:1])+g.Label[1:]+":", v)
		}
	}
	return b.String()
}

type key int

const (
	keyNone key = iota
	keyUp
	keyDown
	keyEnter
	keyQuit
)

// readKey decodes one keypress from a raw-mode terminal. Both ANSI arrow
// sequences and the Windows console 0/224 prefix are understood.
func readKey(r *bufio.Reader) (key, error) {
	b1, err := r.ReadByte()
	if err != nil {
		return keyNone, err
	}
	if b1 == 0 || b1 == 224 {
		b2, err := r.ReadByte()
		if err != nil {
			return keyNone, err
		}
		switch b2 {
		case 72:
			return keyUp, nil
		case 80:
			return keyDown, nil
		case 13:
			return keyEnter, nil
		}
		return keyNone, nil
	}

	switch b1 {
	case 27:
		// Bare ESC quits; otherwise expect a CSI sequence.
		if r.Buffered() == 0 {
			return keyQuit, nil
		}
		if b2, _ := r.ReadByte(); b2 != '[' || r.Buffered() == 0 {
			return keyNone, nil
		}
		b3, _ := r.ReadByte()
		switch b3 {
		case 'A':
			return keyUp, nil
		case 'B':
			return keyDown, nil
		}
	case 'k':
		return keyUp, nil
	case 'j':
		return keyDown, nil
	case '\r', '\n':
		return keyEnter, nil
	case 3, 'q': // Ctrl-C
		return keyQuit, nil
	}
	return keyNone, nil
}

// cursor tracks the selected line of an n-line list.
type cursor struct {
	selected, n int
}

// move applies k and reports whether the selection changed.
func (c *cursor) move(k key) bool {
	switch {
	case k == keyUp && c.selected > 0:
		c.selected--
		return true
	case k == keyDown && c.selected < c.n-1:
		c.selected++
		return true
	}
	return false
}

// interactiveSelect lets the user move through lines with the arrow keys
// and press Enter to call open for the selected line.
func interactiveSelect(in *os.File, out io.Writer, lines []string, open func(i int)) {
	if len(lines) == 0 {
		return
	}
	enableVT()

	fd := int(in.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintln(out, "(interactive selection not supported on this terminal)")
		return
	}
	defer func() { term.Restore(fd, oldState) }()

	reader := bufio.NewReader(in)
	cur := cursor{n: len(lines)}

	// Raw mode does not translate \n, so lines end in \r\n.
	redraw := func() {
		io.WriteString(out, "\033[H\033[2J")
		for i, l := range lines {
			prefix := "  "
			if i == cur.selected {
				prefix = "> "
			}
			io.WriteString(out, prefix+l+"\r\n")
		}
		io.WriteString(out, "(↑/↓ to navigate, Enter for details, Esc to quit)\r\n")
	}
	redraw()

	for {
		k, err := readKey(reader)
		if err != nil {
			return
		}
		switch k {
		case keyQuit:
			io.WriteString(out, "\r\n")
			return
		case keyEnter:
			term.Restore(fd, oldState)
			fmt.Fprintln(out)
			open(cur.selected)

			fmt.Fprint(out, "\n(press Enter to return)")
			_, _ = bufio.NewReader(in).ReadBytes('\n')

			oldState, err = term.MakeRaw(fd)
			if err != nil {
				return
			}
			reader = bufio.NewReader(in)
			redraw()
		default:
			if cur.move(k) {
				redraw()
			}
		}
	}
}
