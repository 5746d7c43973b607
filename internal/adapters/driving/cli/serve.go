package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/flowatlas-labs/flowatlas-cli/internal/adapters/driven/index/memory"
	"github.com/flowatlas-labs/flowatlas-cli/internal/adapters/driven/ingest/xml"
	"github.com/flowatlas-labs/flowatlas-cli/internal/adapters/driving/httpapi"
	"github.com/flowatlas-labs/flowatlas-cli/internal/logger"
)

var (
	serveListen string
	serveWatch  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	Long: `Serves the query engine and catalog over HTTP.

With --watch, the dataset file is monitored and the index is rebuilt
atomically whenever the file changes. In-flight queries keep using the
snapshot they started with.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "listen address (overrides config)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "reload the index when the dataset changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := ensureIndex(cmd); err != nil {
		return err
	}

	addr := serveListen
	if addr == "" {
		addr = cfg.Listen
	}

	ctx := cmd.Context()
	if serveWatch {
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		if err := watchDataset(watchCtx, cfg.Dataset); err != nil {
			return err
		}
	}

	server := httpapi.NewServer(queryService, catalogService, httpapi.Options{
		RateLimit: cfg.RateLimit,
		RateBurst: cfg.RateBurst,
	})
	return server.ListenAndServe(ctx, addr)
}

// watchDataset rebuilds the index whenever the dataset file changes.
// Editors often replace files via rename, so the watch is on the parent
// directory and events are filtered by path.
func watchDataset(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close() //nolint:errcheck
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	target := filepath.Clean(path)
	go func() {
		defer watcher.Close() //nolint:errcheck

		// Debounce: editors fire several events per save.
		var pending *time.Timer
		reload := make(chan struct{}, 1)

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if pending != nil {
					pending.Stop()
				}
				pending = time.AfterFunc(250*time.Millisecond, func() {
					select {
					case reload <- struct{}{}:
					default:
					}
				})
			case <-reload:
				reloadDataset(ctx, target)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watch error: %v", err)
			}
		}
	}()

	logger.Info("watching %s for changes", path)
	return nil
}

// reloadDataset loads and indexes the dataset, swapping it in only if
// the whole pipeline succeeds. A broken file leaves the old snapshot
// serving.
func reloadDataset(ctx context.Context, path string) {
	loader := xml.NewLoader()
	dataset, err := loader.Load(ctx, path)
	if err != nil {
		logger.Error("reload failed, keeping previous index: %v", err)
		return
	}

	snap, err := memory.Build(dataset, cfg.Aliases)
	if err != nil {
		logger.Error("reload failed, keeping previous index: %v", err)
		return
	}

	holder.Swap(snap)
	logger.Info("index reloaded: %d flows", len(snap.Flows()))
}
