package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/adrg/xdg"
	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"codeberg.org/martonv/autopage/pkg/autopage"
	"codeberg.org/martonv/autopage/pkg/genstore/sqlite"
	"codeberg.org/martonv/autopage/pkg/hyprland"
	"codeberg.org/martonv/autopage/pkg/iconpacks"
	"codeberg.org/martonv/autopage/pkg/pagehost/fsdir"
	"codeberg.org/martonv/autopage/pkg/pagejson"
	"codeberg.org/martonv/autopage/pkg/recipes"
)

// Config comes from AUTOPAGE_* environment variables. Empty paths resolve
// to xdg defaults at startup.
type Config struct {
	RecipeDir    string   `envconfig:"RECIPE_DIR"`
	PagesDir     string   `envconfig:"PAGES_DIR"`
	IconPackDir  string   `envconfig:"ICON_PACK_DIR"`
	DBPath       string   `envconfig:"DB_PATH"`
	PackPriority []string `envconfig:"PACK_PRIORITY"`
	GridRows     int      `envconfig:"GRID_ROWS" default:"4"`
	GridCols     int      `envconfig:"GRID_COLS" default:"5"`
}

func main() {
	err := run()
	if err != nil {
		log.Fatalf("error: %+v", err)
	}
}

func run() error {
	recipeDir := flag.String("recipes", "", "recipe directory (overrides AUTOPAGE_RECIPE_DIR)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logger, err := newLogger(*debug)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	ctx := context.Background()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg Config
	if err := envconfig.Process("autopage", &cfg); err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if *recipeDir != "" {
		cfg.RecipeDir = *recipeDir
	}
	fillConfigDefaults(&cfg)

	if err := os.MkdirAll(cfg.RecipeDir, 0755); err != nil {
		return fmt.Errorf("create recipe dir: %w", err)
	}

	store := recipes.NewStore()
	if err := loadRecipes(store, cfg.RecipeDir, logger); err != nil {
		return err
	}

	catalog, installed, err := iconpacks.Scan(cfg.IconPackDir)
	if err != nil {
		return fmt.Errorf("scan icon packs: %w", err)
	}
	logger.Infow("icon catalog loaded", "packs", len(installed), "icons", len(catalog))
	resolver := autopage.NewResolver(catalog, append(cfg.PackPriority, installed...))

	client, err := hyprland.Connect()
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer client.Close()

	hyprctl, err := hyprland.NewHyprctl()
	if err != nil {
		return fmt.Errorf("connect hyprctl: %w", err)
	}

	host, err := fsdir.NewHost(cfg.PagesDir)
	if err != nil {
		return fmt.Errorf("open page host: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	record, err := sqlite.NewStore(cfg.DBPath, logger)
	if err != nil {
		return fmt.Errorf("open generated-page store: %w", err)
	}
	defer record.Close()

	engine := autopage.NewEngine(
		hyprland.NewWatcher(client, hyprctl),
		store,
		resolver,
		autopage.NewCompiler(cfg.GridRows, cfg.GridCols),
		pagejson.NewRenderer(logger),
		host,
		record,
		logger,
	)

	logger.Info("started autopage")

	errChan := make(chan error, 3)
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		err := engine.Run(ctx)
		if err != nil {
			errChan <- fmt.Errorf("engine: %w", err)
		}
	}()

	go func() {
		defer wg.Done()
		reloadLoop(ctx, store, cfg.RecipeDir, logger)
	}()

	go func() {
		defer wg.Done()
		err := systemdNotifyLoop(ctx)
		if err != nil {
			errChan <- fmt.Errorf("systemd notify: %w", err)
		}
	}()

	err = <-errChan
	switch {
	case errors.Is(err, context.Canceled):
		logger.Info("shutting down")
		wg.Wait()
		return nil
	case err != nil:
		return err
	}

	return nil
}

func loadRecipes(store *recipes.Store, dir string, logger *zap.SugaredLogger) error {
	loaded, err := recipes.LoadDir(dir, logger)
	if err != nil {
		return fmt.Errorf("load recipes: %w", err)
	}

	store.Replace(loaded)
	logger.Infow("recipes loaded", "dir", dir, "count", len(loaded))
	return nil
}

// reloadLoop re-reads the recipe directory on SIGHUP. The store swaps in a
// whole new snapshot, so a pass already in flight keeps its old view.
func reloadLoop(ctx context.Context, store *recipes.Store, dir string, logger *zap.SugaredLogger) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			if err := loadRecipes(store, dir, logger); err != nil {
				logger.Errorw("reload recipes", "error", err)
			}
		}
	}
}

func systemdNotifyLoop(ctx context.Context) error {
	// tell systemd that we're ready
	supported, err := daemon.SdNotify(false, daemon.SdNotifyReady)
	if err != nil {
		return fmt.Errorf("notify systemd: %w", err)
	}
	if !supported {
		return nil
	}

	_, _ = daemon.SdNotify(false, "STATUS=Watching for foreground windows")

	// notify watchdog
	t, err := daemon.SdWatchdogEnabled(false)
	if err != nil {
		return fmt.Errorf("check watchdog: %w", err)
	}
	// if watchdog is not enabled, we don't need to notify it
	if t == 0 {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-time.After(t / 2):
			_, err := daemon.SdNotify(false, daemon.SdNotifyWatchdog)
			if err != nil {
				return fmt.Errorf("notify watchdog: %w", err)
			}
		}
	}
}

func fillConfigDefaults(cfg *Config) {
	if cfg.RecipeDir == "" {
		cfg.RecipeDir = filepath.Join(xdg.ConfigHome, "autopage", "recipes")
	}
	if cfg.PagesDir == "" {
		cfg.PagesDir = filepath.Join(xdg.DataHome, "StreamController", "pages")
	}
	if cfg.IconPackDir == "" {
		cfg.IconPackDir = filepath.Join(xdg.DataHome, "StreamController", "icons")
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(xdg.DataHome, "autopage", "generated.db")
	}
}

func newLogger(debug bool) (*zap.SugaredLogger, error) {
	loggerConfig := zap.NewDevelopmentConfig()

	loggerConfig.OutputPaths = []string{"stdout"}
	loggerConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if !debug {
		loggerConfig.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	logger, err := loggerConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return logger.Sugar(), nil
}
