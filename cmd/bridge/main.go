package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mosaicdesk/bridge/internal/config"
	"github.com/mosaicdesk/bridge/internal/invoker"
	"github.com/mosaicdesk/bridge/internal/logging"
	"github.com/mosaicdesk/bridge/internal/manifest"
	"github.com/mosaicdesk/bridge/internal/providers"
	"github.com/mosaicdesk/bridge/internal/providers/canvas"
	"github.com/mosaicdesk/bridge/internal/script"
	"github.com/mosaicdesk/bridge/internal/types"
)

// bridge runs automation scripts or invocation manifests against the
// capability registry. Exit code is non-zero when any outcome failed.
func main() {
	configPath := flag.String("config", "", "Path to TOML config file")
	scriptsRoot := flag.String("scripts", "", "Directory of automation scripts to run")
	pattern := flag.String("pattern", "**/*.js", "Script glob pattern under -scripts")
	manifestPath := flag.String("manifest", "", "Invocation manifest to run")
	flag.Parse()

	if *scriptsRoot == "" && *manifestPath == "" {
		fmt.Fprintln(os.Stderr, "usage: bridge -scripts <dir> [-pattern <glob>] | -manifest <file>")
		os.Exit(2)
	}

	cfg := loadConfig(*configPath)

	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		OutputPaths: []string{"stdout"},
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	host := canvas.NewMemoryHost()
	host.Open()

	registry, err := providers.BuildRegistry(cfg, host)
	if err != nil {
		log.Fatalf("Failed to build registry: %v", err)
	}
	inv := invoker.New(registry, invoker.WithLogger(logger.Named("invoker")))

	ctx := context.Background()
	ok := true

	if *scriptsRoot != "" {
		ok = runScripts(ctx, cfg, inv, logger, *scriptsRoot, *pattern) && ok
	}
	if *manifestPath != "" {
		ok = runManifest(ctx, inv, *manifestPath) && ok
	}

	if !ok {
		os.Exit(1)
	}
}

func runScripts(ctx context.Context, cfg *config.Config, inv *invoker.Invoker, logger *logging.Logger, root, pattern string) bool {
	files, err := script.Discover(root, pattern)
	if err != nil {
		log.Printf("Script discovery failed: %v", err)
		return false
	}
	if len(files) == 0 {
		log.Printf("No scripts matched %s under %s", pattern, root)
		return false
	}

	runner := script.NewRunner(script.Config{
		Timeout:       time.Duration(cfg.Script.TimeoutSeconds) * time.Second,
		EnableConsole: true,
	}, inv.Invoke, logger.Named("script"))

	summary, err := runner.RunFiles(ctx, files)
	if err != nil {
		log.Printf("Script run failed: %v", err)
		return false
	}

	fmt.Printf("scripts: %d run, %d failed\n", len(summary.Results), summary.Failed)
	return summary.Ok()
}

func runManifest(ctx context.Context, inv *invoker.Invoker, path string) bool {
	m, err := manifest.Load(path)
	if err != nil {
		log.Printf("Manifest load failed: %v", err)
		return false
	}

	summary := m.Run(ctx, inv.Invoke, &types.Context{Origin: "cli"})

	out, err := summary.JSON()
	if err == nil {
		fmt.Println(out)
	}

	return summary.Ok()
}

func loadConfig(path string) *config.Config {
	if path == "" {
		return config.LoadOrDefault()
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}
