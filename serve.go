package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"znkr.io/fdiff/diff"
	"znkr.io/fdiff/report"
	"znkr.io/fdiff/server"
)

func newServeCmd() *cobra.Command {
	var (
		addr         string
		contextLines int
		lang         string
		configPath   string
	)

	cmd := &cobra.Command{
		Use:   "serve <fileA> <fileB>",
		Short: "Serve a live HTML report that rebuilds when either file changes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Serve.Addr
			}
			if !cmd.Flags().Changed("context") {
				contextLines = cfg.Compare.Context
			}
			return runServe(addr, contextLines, lang, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:8080", "address to serve on")
	cmd.Flags().IntVarP(&contextLines, "context", "c", 3, "lines of context around changes")
	cmd.Flags().StringVar(&lang, "lang", "", "force a syntax-highlighting lexer")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default <UserConfigDir>/fdiff/config.toml)")

	return cmd
}

func runServe(addr string, contextLines int, lang, apath, bpath string) error {
	apath, err := filepath.Abs(apath)
	if err != nil {
		return fmt.Errorf("resolving path: %v", err)
	}
	bpath, err = filepath.Abs(bpath)
	if err != nil {
		return fmt.Errorf("resolving path: %v", err)
	}

	render := func() ([]byte, error) {
		a, err := loadLines(apath)
		if err != nil {
			return nil, err
		}
		b, err := loadLines(bpath)
		if err != nil {
			return nil, err
		}
		opts := []report.Option{
			report.Context(contextLines),
			report.Names(filepath.Base(apath), filepath.Base(bpath)),
		}
		if lang != "" {
			opts = append(opts, report.Lang(lang))
		}
		return report.Render(a, b, diff.Align(a, b), opts...)
	}

	page, err := render()
	if err != nil {
		return fmt.Errorf("rendering report: %v", err)
	}

	srv, err := server.Run(addr, page)
	if err != nil {
		return err
	}
	defer srv.Shutdown(context.Background())
	log.Printf("Now serving at http://%s, press Ctrl-C to shut down", addr)

	// Editors commonly replace files by rename, which would invalidate a
	// watch on the file itself. Watching the parent directories instead is
	// robust against that.
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %v", err)
	}
	defer watcher.Close()
	dirs := []string{filepath.Dir(apath)}
	if d := filepath.Dir(bpath); d != dirs[0] {
		dirs = append(dirs, d)
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("starting watch: %v", err)
		}
	}
	slices.Sort(dirs)
	log.Printf("Watching: %v", dirs)

	// Setup signals to react to Ctrl-C.
	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt)

	for {
		select {
		case event := <-watcher.Events:
			// Absolutely no need to react to chmod.
			if event.Has(fsnotify.Chmod) {
				continue
			}
			if name := filepath.Clean(event.Name); name != apath && name != bpath {
				continue
			}

			start := time.Now()
			page, err := render()
			if err != nil {
				log.Printf("failed to update report: %v", err)
				continue
			}
			srv.ReplacePage(page)
			log.Printf("Report rebuilt (%v)", time.Since(start))
		case err := <-watcher.Errors:
			return fmt.Errorf("watching: %v", err)
		case err := <-srv.Error():
			return fmt.Errorf("serving: %v", err)
		case <-sigint:
			fmt.Print("\r") // remove Ctrl-C output characters
			log.Printf("Received Ctrl-C, shutting down")
			return nil
		}
	}
}
