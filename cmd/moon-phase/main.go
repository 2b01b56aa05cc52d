package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/chrissnell/moonorbit/internal/controllers/restserver"
	"github.com/chrissnell/moonorbit/internal/engine"
	"github.com/chrissnell/moonorbit/pkg/config"
)

func main() {
	day := flag.Float64("day", 0, "Simulated day since the start of the year (wraps at the year length)")
	cfgFile := flag.String("config", "", "Optional YAML configuration for orbit constants and render settings")
	convention := flag.String("convention", "", "Phase angle convention: 'new' (0° = New Moon) or 'full' (0° = Full Moon)")
	style := flag.String("style", "", "Silhouette style: 'path' or 'mask'")
	month := flag.Bool("month", false, "Print one line per day for a full synodic month starting at -day")
	asJSON := flag.Bool("json", false, "Print the frame as JSON")
	flag.Parse()

	cfg := config.Default()
	if *cfgFile != "" {
		var err error
		if cfg, err = config.NewYAMLProvider(*cfgFile).LoadConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if *convention != "" {
		cfg.Render.Convention = *convention
	}
	if *style != "" {
		cfg.Render.Style = *style
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if math.IsNaN(*day) || math.IsInf(*day, 0) {
		fmt.Fprintln(os.Stderr, "Error: -day must be a finite number")
		os.Exit(1)
	}

	e := engine.New(cfg.Orbit,
		engine.WithConvention(cfg.Convention()),
		engine.WithStyle(cfg.Style()),
		engine.WithDisk(cfg.Render.Disk),
	)

	if *month {
		printMonth(e, *day)
		return
	}

	f := e.Frame(*day)
	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(restserver.NewFrameResponse(f)); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding frame: %v\n", err)
			os.Exit(1)
		}
		return
	}
	printFrame(os.Stdout, f)
}

func printFrame(w io.Writer, f engine.Frame) {
	fmt.Fprintf(w, "Moon Phase for day %.2f (day %d)\n", f.Day, f.DayNumber)
	fmt.Fprintf(w, "  Phase Name:   %s\n", f.Phase.Name)
	fmt.Fprintf(w, "  Phase Angle:  %.1f° (%s convention)\n", f.PhaseAngle, f.Convention)
	fmt.Fprintf(w, "  Illumination: %.1f%%\n", f.Illumination*100)
	if f.Phase.Waxing {
		fmt.Fprintf(w, "  Direction:    Waxing\n")
	} else {
		fmt.Fprintf(w, "  Direction:    Waning\n")
	}
	fmt.Fprintf(w, "  Earth:        (%.2f, %.2f)\n", f.Earth.X, f.Earth.Y)
	fmt.Fprintf(w, "  Moon:         (%.2f, %.2f)\n", f.MoonAbsolute.X, f.MoonAbsolute.Y)
	fmt.Fprintf(w, "  About:        %s\n", f.Phase.Description)

	switch g := f.Silhouette; {
	case g.Path != nil:
		fmt.Fprintf(w, "  SVG Path:     %s\n", g.Path.D)
	case g.Mask != nil:
		fmt.Fprintf(w, "  Mask:         scale %.3f, ellipse %s, rotation %.1f°\n",
			g.Mask.Scale, g.Mask.EllipseColor, g.Mask.Rotation)
	}

	fmt.Fprintf(w, "\n%s\n  %s\n", f.Tip.Title, f.Tip.Content)
}

func printMonth(e *engine.Engine, start float64) {
	days := int(math.Ceil(e.Constants().MoonSynodicDays))
	for i := 0; i <= days; i++ {
		f := e.Frame(start + float64(i))
		fmt.Printf("day %6.2f  %6.1f°  %5.1f%%  %s\n", f.Day, f.PhaseAngle, f.Illumination*100, f.Phase.Name)
	}
}
