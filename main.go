package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"znkr.io/fdiff/config"
	"znkr.io/fdiff/diff"
	"znkr.io/fdiff/report"
	"znkr.io/fdiff/textdiff"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type compareFlags struct {
	context    int
	sideBySide bool
	stats      bool
	html       bool
	out        string
	width      int
	color      string
	lang       string
	configPath string
}

func newRootCmd() *cobra.Command {
	var flags compareFlags

	cmd := &cobra.Command{
		Use:          "fdiff <fileA> <fileB>",
		Short:        "Compare two text files line by line",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, &flags, args[0], args[1])
		},
	}

	cmd.Flags().IntVarP(&flags.context, "context", "c", 3, "lines of context around changes")
	cmd.Flags().BoolVarP(&flags.sideBySide, "side-by-side", "s", false, "side-by-side comparison")
	cmd.Flags().BoolVar(&flags.stats, "stats", false, "show statistics only")
	cmd.Flags().BoolVar(&flags.html, "html", false, "write an HTML diff report")
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "output path for the HTML report")
	cmd.Flags().IntVar(&flags.width, "width", 40, "side-by-side column width")
	cmd.Flags().StringVar(&flags.color, "color", "auto", "colorize unified output: auto, always, or never")
	cmd.Flags().StringVar(&flags.lang, "lang", "", "force a syntax-highlighting lexer in the HTML report")
	cmd.Flags().StringVar(&flags.configPath, "config", "", "config file (default <UserConfigDir>/fdiff/config.toml)")

	cmd.AddCommand(newServeCmd())
	return cmd
}

func runCompare(cmd *cobra.Command, flags *compareFlags, apath, bpath string) error {
	cfg, err := loadConfig(flags.configPath)
	if err != nil {
		return err
	}

	context := cfg.Compare.Context
	if cmd.Flags().Changed("context") {
		context = flags.context
	}
	width := cfg.Output.Width
	if cmd.Flags().Changed("width") {
		width = flags.width
	}
	color := cfg.Output.Color
	if cmd.Flags().Changed("color") {
		color = flags.color
	}
	switch color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid --color value: %q", color)
	}

	a, err := loadLines(apath)
	if err != nil {
		return err
	}
	b, err := loadLines(bpath)
	if err != nil {
		return err
	}

	// An optimal alignment of unrelated inputs can cost up to len(a)*len(b)
	// steps, so overly large comparisons are rejected before they start.
	if ceil := cfg.Compare.MaxCells; ceil > 0 && int64(len(a))*int64(len(b)) > ceil {
		return fmt.Errorf("comparison too large: %d × %d lines exceeds the ceiling of %d cells", len(a), len(b), ceil)
	}

	s := diff.Align(a, b)

	switch {
	case flags.stats:
		st := s.Stats()
		fmt.Printf("A: %s (%d lines)\n", apath, len(a))
		fmt.Printf("B: %s (%d lines)\n", bpath, len(b))
		fmt.Printf("+%d added, -%d removed | %.1f%% similar\n", st.Added, st.Deleted, 100*st.Similarity())
	case flags.html:
		out := flags.out
		if out == "" {
			out = fmt.Sprintf("diff_%s_vs_%s.html", stem(apath), stem(bpath))
		}
		opts := []report.Option{
			report.Context(context),
			report.Names(filepath.Base(apath), filepath.Base(bpath)),
		}
		if flags.lang != "" {
			opts = append(opts, report.Lang(flags.lang))
		}
		page, err := report.Render(a, b, s, opts...)
		if err != nil {
			return fmt.Errorf("rendering report: %v", err)
		}
		page, err = report.Minify(page)
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, page, 0644); err != nil {
			return fmt.Errorf("writing report: %v", err)
		}
		log.Printf("HTML report written to %s", out)
	case flags.sideBySide:
		text, err := textdiff.SideBySide(a, b, s, textdiff.Width(width))
		if err != nil {
			return err
		}
		fmt.Print(text)
	default:
		text, err := textdiff.Unified(a, b, s, context)
		if err != nil {
			return err
		}
		fmt.Print(colorize(text, color))
	}
	return nil
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Default(), nil
		}
		path = p
	}
	return config.Load(path)
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
