package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"os/signal"

	"github.com/tuxx/ringlock/internal"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
	"golang.org/x/sys/unix"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("c", "", "Path to configuration file")
	flag.StringVar(configPath, "config", "", "Path to configuration file")

	initConfig := flag.Bool("init-config", false, "Write a default config file and exit")

	color := flag.String("color", "", "Background color as rrggbb")
	imagePath := flag.String("image", "", "Background image (PNG, JPEG, BMP or WebP)")
	tile := flag.Bool("tile", false, "Tile the background image")
	showClock := flag.Bool("clock", true, "Show the clock inside the indicator")
	fontPath := flag.String("font", "", "TTF font for the indicator text")

	control := flag.Bool("control", false, "Read state commands from stdin")

	// Add debug mode flag
	debugMode := flag.Bool("log", false, "Enable debug logging")

	flag.Parse()

	// Initialize the logger
	if *debugMode {
		internal.InitLogger(internal.LevelDebug, true)
		internal.Debug("Debug logging enabled")
	} else {
		internal.InitLogger(internal.LevelError, false)
	}

	if *initConfig {
		path, err := internal.GenerateDefaultConfigFile()
		if err != nil {
			internal.Fatal("Failed to write default config: %v", err)
		}
		fmt.Println(path)
		return
	}

	config := internal.DefaultConfig()

	// Try to find and load config file
	if *configPath == "" {
		*configPath = internal.FindConfigFile()
		if *configPath != "" {
			internal.Info("Using default config file: %s", *configPath)
		}
	}
	if *configPath != "" {
		if err := internal.LoadConfig(*configPath, &config); err != nil {
			internal.Error("loading config: %v", err)
			// Continue with default config
			config = internal.DefaultConfig()
		}
	}

	// Explicit flags win over the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "color":
			config.Color = *color
		case "image":
			config.ImagePath = *imagePath
		case "tile":
			config.Tile = *tile
		case "clock":
			config.ShowClock = *showClock
		case "font":
			config.FontPath = *fontPath
		}
	})

	var background image.Image
	if config.ImagePath != "" {
		img, err := loadImage(config.ImagePath)
		if err != nil {
			internal.Error("Failed to load background image: %v", err)
		} else {
			background = img
		}
	}

	displayServer := DetectDisplayServer()
	internal.Info("Detected display server: %s", displayServer)
	if displayServer != "x11" {
		internal.Fatal("No X11 display available (display server: %s)", displayServer)
	}

	fonts, err := internal.NewFontSet(config.FontPath)
	if err != nil {
		internal.Fatal("Failed to load fonts: %v", err)
	}
	defer fonts.Close()

	host, err := internal.NewX11Host(config)
	if err != nil {
		internal.Fatal("Failed to initialize X11: %v", err)
	}
	defer host.Close()

	screen := internal.NewScreen(config, background, fonts, host.Geometry, host, host.Resolution())
	controller := internal.NewController(screen)
	ticker := internal.NewRedrawTicker()

	var sources internal.EventSources

	if *control {
		commands := make(chan internal.Command)
		go func() {
			if err := internal.ReadCommands(os.Stdin, commands); err != nil {
				internal.Error("%v", err)
			}
			internal.Info("Control input closed")
		}()
		sources.Commands = commands
	}

	if config.RedrawOnResume {
		watcher, err := internal.NewResumeWatcher()
		if err != nil {
			internal.Warn("Resume repaint disabled: %v", err)
		} else {
			defer watcher.Close()
			sources.Resumed = watcher.C()
		}
	}

	signals := make(chan os.Signal, 4)
	signal.Notify(signals, unix.SIGUSR1, unix.SIGHUP, unix.SIGINT, unix.SIGTERM)
	defer signal.Stop(signals)
	sources.Signals = signals

	host.Run(screen, controller, ticker, sources)
}

// loadImage decodes any registered image format from path
func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	internal.Debug("Loaded %s background %dx%d", format, img.Bounds().Dx(), img.Bounds().Dy())
	return img, nil
}

// DetectDisplayServer detects whether X11 or Wayland is being used
func DetectDisplayServer() string {
	// XWayland also sets DISPLAY, which is all the indicator needs
	if os.Getenv("DISPLAY") != "" {
		return "x11"
	}

	if os.Getenv("WAYLAND_DISPLAY") != "" {
		return "wayland"
	}

	if os.Getenv("XDG_SESSION_TYPE") != "" {
		return os.Getenv("XDG_SESSION_TYPE")
	}

	return "none"
}
