package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/EvaisaDev/UnityNetcodeWeaver/internal/core/domain"
	"github.com/EvaisaDev/UnityNetcodeWeaver/internal/core/services"
	"github.com/EvaisaDev/UnityNetcodeWeaver/pkg/ui"
)

var (
	watchInitial    bool
	watchReferences []string
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]...",
	Short: "Patch assemblies whenever they are rebuilt",
	Long: `Watch one or more build output directories and patch assemblies as
soon as the compiler writes them.

Events are debounced (watch_debounce_ms) so a build that writes the
assembly and its symbols in several steps is patched once. Files written
by the patcher itself are not patched again.

Examples:
  netcode-patcher watch bin/Debug/netstandard2.1
  netcode-patcher watch . --initial`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchInitial, "initial", false, "Patch existing assemblies before watching")
	watchCmd.Flags().StringArrayVarP(&watchReferences, "ref", "r", nil, "Reference assembly path (repeatable)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"."}
	}

	if err := requireWeaver(); err != nil {
		return err
	}

	ctx, stop := getContext()
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range args {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	fmt.Println(ui.FormatRocket("Watching for rebuilt assemblies..."))
	for _, dir := range args {
		fmt.Println(ui.FormatMuted("Watching: " + dir))
	}
	fmt.Println(ui.FormatMuted("Press Ctrl+C to stop"))
	fmt.Println()

	refs := mergeReferences(watchReferences, appConfig.References)
	aw := &assemblyWatcher{
		extensions: appConfig.Extensions(),
		debounce:   time.Duration(appConfig.WatchDebounceMS) * time.Millisecond,
		guard:      services.NewChangeGuard(),
		patch: func(path string) {
			report := patchService.Patch(ctx, path, "", refs)
			fmt.Println(formatOutcome(report))
		},
		onError: func(err error) {
			appLogger.Error("Watcher error", "error", err)
		},
	}

	existing, err := discoverAssemblies(args, appConfig.AssemblyPatterns)
	if err != nil && watchInitial {
		return err
	}
	for _, path := range existing {
		if watchInitial {
			aw.patchOne(path)
		} else {
			aw.guard.Remember(path)
		}
	}

	aw.run(ctx, watcher.Events, watcher.Errors)

	fmt.Println()
	fmt.Println(ui.FormatMuted("Watch stopped"))
	return nil
}

// assemblyWatcher turns debounced file events into sequential patch runs
type assemblyWatcher struct {
	extensions []string
	debounce   time.Duration
	guard      *services.ChangeGuard
	patch      func(path string)
	onError    func(err error)
}

// patchOne patches path and stamps the result so the weaver's own writes
// are not mistaken for a rebuild
func (w *assemblyWatcher) patchOne(path string) {
	w.patch(path)
	w.guard.Remember(path)
}

// run consumes events until ctx is done or a channel closes.
// Removing or renaming an assembly only drops it from the pending set:
// the weaver renames the source to its backup on every run, and that
// event must not clear the stamp taken after the patch.
func (w *assemblyWatcher) run(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) {
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()
	pending := make(map[string]bool)

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}

			path, ok := watchedAssembly(event.Name, w.extensions)
			if !ok {
				continue
			}

			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				delete(pending, path)
				continue
			}

			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) {
				pending[path] = true
				timer.Reset(w.debounce)
			}

		case <-timer.C:
			paths := make([]string, 0, len(pending))
			for path := range pending {
				paths = append(paths, path)
			}
			sort.Strings(paths)
			clear(pending)

			for _, path := range paths {
				if _, err := os.Stat(path); err != nil {
					continue
				}
				if !w.guard.Changed(path) {
					continue
				}
				w.patchOne(path)
			}

		case err, ok := <-errs:
			if !ok {
				return
			}
			if w.onError != nil {
				w.onError(err)
			}

		case <-ctx.Done():
			return
		}
	}
}

// watchedAssembly filters watcher events down to patchable assemblies
// and returns the cleaned path used as the pending and guard key.
func watchedAssembly(path string, extensions []string) (string, bool) {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || strings.HasPrefix(base, "~") {
		return "", false
	}

	loc, err := domain.NewAssemblyLocation(path)
	if err != nil || loc.IsBackup() {
		return "", false
	}

	for _, ext := range extensions {
		if strings.EqualFold(loc.Ext(), ext) {
			return loc.Path(), true
		}
	}
	return "", false
}
