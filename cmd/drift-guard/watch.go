package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matthewcove-stack/drift-guard-mcp/internal/drift"
	"github.com/matthewcove-stack/drift-guard-mcp/internal/logging"
)

// watchDebounce coalesces filesystem event bursts (editor saves, git
// operations) into a single re-check.
const watchDebounce = 500 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch the working tree and re-run drift checks on change",
	Long: `Continuously watch the repository and re-run the drift check whenever
files change.

Each trigger is an independent, stateless check of the current working
tree: nothing carries over between runs. Events are debounced so an
editor save burst produces one check, and events arriving while a check
is in flight coalesce into one follow-up check.

Press Ctrl-C to stop.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	root, err := resolveRoot(args)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(root); err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	// docs/ holds the process documents the rules care about; watch it
	// when it exists so doc edits trigger re-checks too.
	docsDir := filepath.Join(root, "docs")
	if info, err := os.Stat(docsDir); err == nil && info.IsDir() {
		if err := watcher.Add(docsDir); err != nil {
			return fmt.Errorf("watch %s: %w", docsDir, err)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logging.NewForRepo(root)
	defer log.Close()

	checker := newChecker(cfg)

	fmt.Printf("Watching %s for changes (Ctrl-C to stop)\n\n", root)
	runWatchCheck(ctx, checker, root, log)

	debounce := time.NewTimer(watchDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nStopped.")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ignoreWatchPath(root, event.Name) {
				continue
			}
			debounce.Reset(watchDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch: %v", err)
		case <-debounce.C:
			runWatchCheck(ctx, checker, root, log)
		}
	}
}

// ignoreWatchPath filters events from paths the check itself touches, so a
// check run never triggers the next one.
func ignoreWatchPath(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return strings.HasPrefix(rel, ".driftguard") || strings.HasPrefix(rel, ".git")
}

func runWatchCheck(ctx context.Context, checker *drift.Checker, root string, log *logging.Logger) {
	report, err := checker.Check(ctx, root)
	if err != nil {
		color.New(color.FgRed).Printf("[%s] check error: %v\n", time.Now().Format("15:04:05"), err)
		log.Printf("watch: check error: %v", err)
		return
	}

	stamp := time.Now().Format("15:04:05")
	if report.OK {
		color.New(color.FgGreen).Printf("[%s] ✓ no drift (%d changed files)\n", stamp, len(report.ChangedFiles))
	} else {
		color.New(color.FgRed).Printf("[%s] ✗ drift: ", stamp)
		rules := make([]string, 0, len(report.Failures))
		for _, f := range report.Failures {
			rules = append(rules, f.Rule)
		}
		fmt.Println(strings.Join(rules, ", "))
	}
	log.Printf("watch: drift_check ok=%t changed=%d failures=%d",
		report.OK, len(report.ChangedFiles), len(report.Failures))
}
