package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chrissnell/moonorbit/pkg/config"
)

func main() {
	var (
		yamlFile   = flag.String("yaml", "", "Path to YAML configuration file (required)")
		sqliteFile = flag.String("sqlite", "", "Path to SQLite database file (required)")
		reverse    = flag.Bool("reverse", false, "Export the SQLite database to YAML instead")
		force      = flag.Bool("force", false, "Overwrite an existing target file")
		dryRun     = flag.Bool("dry-run", false, "Show what would be done without executing")
	)
	flag.Parse()

	if *yamlFile == "" || *sqliteFile == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -yaml <config.yaml> -sqlite <config.db> [-reverse]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	source, target := *yamlFile, *sqliteFile
	if *reverse {
		source, target = *sqliteFile, *yamlFile
	}

	if _, err := os.Stat(source); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error: source file does not exist: %s\n", source)
		os.Exit(1)
	}
	if _, err := os.Stat(target); err == nil && !*force {
		fmt.Fprintf(os.Stderr, "Error: target file already exists: %s\n", target)
		fmt.Fprintf(os.Stderr, "Use -force to overwrite or choose a different filename\n")
		os.Exit(1)
	}

	fmt.Printf("Converting configuration...\n")
	fmt.Printf("  Source: %s\n", source)
	fmt.Printf("  Target: %s\n", target)

	configData, err := load(source, *reverse)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if *dryRun {
		fmt.Println("DRY RUN - No changes will be made")
		printConfigSummary(configData)
		return
	}

	if *force {
		if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error removing existing target: %v\n", err)
			os.Exit(1)
		}
	}

	if err := save(target, configData, *reverse); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing configuration: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Conversion completed successfully!\n")
	if !*reverse {
		fmt.Printf("You can now use the SQLite backend with: -config-backend sqlite -config %s\n", target)
	}
}

func load(path string, fromSQLite bool) (*config.ConfigData, error) {
	if !fromSQLite {
		return config.NewYAMLProvider(path).LoadConfig()
	}
	p, err := config.NewSQLiteProvider(path)
	if err != nil {
		return nil, err
	}
	defer p.Close()
	return p.LoadConfig()
}

func save(path string, cfg *config.ConfigData, toYAML bool) error {
	if toYAML {
		return config.WriteYAML(path, cfg)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// Opening the provider applies the schema migrations
	p, err := config.NewSQLiteProvider(path)
	if err != nil {
		return fmt.Errorf("failed to create SQLite provider: %w", err)
	}
	defer p.Close()

	fmt.Printf("  Inserting %d controllers...\n", len(cfg.Controllers))
	return p.SaveConfig(cfg)
}

func printConfigSummary(cfg *config.ConfigData) {
	o := cfg.Orbit
	fmt.Println("\nConfiguration Summary:")
	fmt.Printf("Orbit: earth radius %g, moon radius %g, year %g days, month %g days\n",
		o.EarthOrbitRadius, o.MoonOrbitRadius, o.EarthYearDays, o.MoonSynodicDays)
	fmt.Printf("Render: convention %s, style %s\n", cfg.Render.Convention, cfg.Render.Style)
	fmt.Printf("Animation: speed %s, frame interval %s, session ttl %s, max sessions %d\n",
		cfg.Animation.DefaultSpeed, cfg.Animation.FrameInterval, cfg.Animation.SessionTTL, cfg.Animation.MaxSessions)

	fmt.Printf("\nControllers (%d):\n", len(cfg.Controllers))
	for _, controller := range cfg.Controllers {
		if rc := controller.RESTServer; rc != nil {
			fmt.Printf("  - %s on %s:%d\n", controller.Type, rc.ListenAddr, rc.Port)
			continue
		}
		fmt.Printf("  - %s\n", controller.Type)
	}
}
