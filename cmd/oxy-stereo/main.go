package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/Carmen-Shannon/oxy-stereo/engine"
	"github.com/Carmen-Shannon/oxy-stereo/engine/config"
	"github.com/Carmen-Shannon/oxy-stereo/engine/device"
	"github.com/Carmen-Shannon/oxy-stereo/engine/scene"
	"github.com/Carmen-Shannon/oxy-stereo/engine/session"
	"github.com/Carmen-Shannon/oxy-stereo/engine/window"
)

func init() {
	// GLFW and the OpenGL context must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	var configPath = flag.String("config", "", "Path to a YAML config file")
	var stereoProvider = flag.String("stereo", "", "Stereo provider: none or simulated (overrides config)")
	var updatesPath = flag.String("updates", "", "YAML update document to watch (overrides config)")
	var profile = flag.Bool("profile", false, "Log frame rate and memory statistics")
	var help = flag.Bool("help", false, "Show help message")
	flag.Parse()

	if *help {
		fmt.Println("oxy-stereo: mono/stereo scene renderer")
		fmt.Println("Keys: V enters stereo, Esc leaves stereo or quits")
		flag.PrintDefaults()
		return
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("Error loading config: %v", err)
		}
	}
	if *stereoProvider != "" {
		cfg.Stereo.Provider = *stereoProvider
	}
	if *updatesPath != "" {
		cfg.Updates.File = *updatesPath
	}
	cfg.Profiling = cfg.Profiling || *profile
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	options := []engine.EngineBuilderOption{
		engine.WithProfiling(cfg.Profiling),
		engine.WithWindowOptions(
			window.WithTitle(cfg.Window.Title),
			window.WithWidth(cfg.Window.Width),
			window.WithHeight(cfg.Window.Height),
			window.WithVSync(*cfg.Window.VSync),
		),
		engine.WithDefaultSurfaceSize(cfg.Window.Width, cfg.Window.Height),
		engine.WithSessionOptions(cfg.SessionOptions()...),
		engine.WithStereoProvider(cfg.StereoProvider),
	}

	var watcher *config.UpdateWatcher
	if cfg.Updates.File != "" {
		var err error
		watcher, err = config.NewUpdateWatcher(cfg.Updates.File, scene.DefaultRegistry())
		if err != nil {
			log.Fatalf("Error watching %s: %v", cfg.Updates.File, err)
		}
		defer watcher.Close()
		go logWatcherErrors(watcher)
		options = append(options, engine.WithUpdates(watcher.Updates))
	}

	eng, err := engine.NewEngine(options...)
	if err != nil {
		if errors.Is(err, device.ErrNoContext) {
			log.Printf("Unable to initialize OpenGL. Your system or graphics driver may not support OpenGL 4.1: %v", err)
		} else {
			log.Printf("Failed to start: %v", err)
		}
		os.Exit(1)
	}

	if cfg.Updates.File != "" {
		applyInitialUpdate(eng.Session(), cfg.Updates.File)
	}

	log.Println("Starting render loop...")
	eng.Run()
}

// applyInitialUpdate applies the update document as it exists at startup, if any.
func applyInitialUpdate(s session.Session, path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	u, err := config.LoadUpdate(path, scene.DefaultRegistry())
	if err != nil {
		log.Printf("Ignoring initial update: %v", err)
		return
	}
	if err := s.Apply(u); err != nil {
		log.Printf("Initial update failed: %v", err)
	}
}

func logWatcherErrors(w *config.UpdateWatcher) {
	for err := range w.Errors {
		log.Printf("Update feed: %v", err)
	}
}
