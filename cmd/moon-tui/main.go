package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/chrissnell/moonorbit/internal/animation"
	"github.com/chrissnell/moonorbit/internal/engine"
	"github.com/chrissnell/moonorbit/internal/log"
	"github.com/chrissnell/moonorbit/pkg/config"
	"github.com/gdamore/tcell/v2"
)

func main() {
	cfgFile := flag.String("config", "", "Optional YAML configuration for orbit constants and playback")
	speed := flag.String("speed", "", "Initial speed: slow, medium, fast or days per tick")
	play := flag.Bool("play", true, "Start playing immediately")
	logFile := flag.String("log", "", "Write logs to this file (the terminal is busy drawing)")
	flag.Parse()

	if *logFile != "" {
		if err := log.InitWithFile(true, log.DefaultFileConfig(*logFile)); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
			os.Exit(1)
		}
		defer log.Sync()
	} else {
		log.InitNop()
	}

	cfg := config.Default()
	if *cfgFile != "" {
		var err error
		if cfg, err = config.NewYAMLProvider(*cfgFile).LoadConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if *speed != "" {
		cfg.Animation.DefaultSpeed = *speed
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, *play); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.ConfigData, play bool) error {
	driver, err := animation.NewDriver(cfg.Orbit, cfg.Speed())
	if err != nil {
		return err
	}
	if play {
		driver.Play()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	v := &view{
		screen: screen,
		engine: engine.New(cfg.Orbit, engine.WithConvention(cfg.Convention())),
		driver: driver,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scheduler := animation.NewTickerScheduler(cfg.Animation.FrameInterval)
	animation.Attach(scheduler, driver)
	go scheduler.Run(ctx)

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	render := time.NewTicker(16 * time.Millisecond) // ~60 FPS
	defer render.Stop()

	log.Infof("moon-tui started at speed %.2f", driver.State().Speed)
	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if v.handleKey(ev) {
					log.Info("moon-tui exiting")
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-render.C:
			v.draw()
		}
	}
}
