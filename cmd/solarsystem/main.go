package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"solar-system/internal/animation"
	"solar-system/internal/assets"
	"solar-system/internal/bodies"
	"solar-system/internal/commands"
	"solar-system/internal/config"
	"solar-system/internal/controls"
	"solar-system/internal/debug"
	"solar-system/internal/env"
	"solar-system/internal/graphics"
	"solar-system/internal/kinematics"
	"solar-system/internal/label"
	"solar-system/internal/logger"
	"solar-system/internal/metrics"
	"solar-system/internal/scene"
	"solar-system/internal/viewport"
)

func main() {
	reg := commands.NewRegistry("run")

	runFlags := flag.NewFlagSet("run", flag.ExitOnError)
	configPath := runFlags.String("config", config.DefaultPath, "path to the JSON prefs file")
	envPath := runFlags.String("env", ".env", "dotenv file applied before SOLAR_* overrides")
	reg.Register("run", "open the viewer (default)", runFlags, func() error {
		return run(*configPath, *envPath)
	})

	bodiesFlags := flag.NewFlagSet("bodies", flag.ExitOnError)
	bodiesFile := bodiesFlags.String("file", "config/bodies.yaml", "YAML overrides for the body table")
	reg.Register("bodies", "print the body table", bodiesFlags, func() error {
		return printBodies(os.Stdout, *bodiesFile)
	})

	initFlags := flag.NewFlagSet("init-config", flag.ExitOnError)
	initPath := initFlags.String("config", config.DefaultPath, "where to write the prefs file")
	reg.Register("init-config", "write default prefs", initFlags, func() error {
		if err := config.Save(*initPath, config.Default()); err != nil {
			return err
		}
		fmt.Println("wrote", *initPath)
		return nil
	})

	if err := reg.Execute(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "solarsystem:", err)
		fmt.Fprintln(os.Stderr, "commands:")
		reg.Usage(os.Stderr)
		os.Exit(1)
	}
}

func printBodies(out io.Writer, path string) error {
	reg, err := bodies.LoadYAML(path)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tRADIUS\tDISTANCE\tSPEED\tTEXTURE")
	for _, d := range reg.Bodies() {
		fmt.Fprintf(tw, "%s\t%s\t%g\t%g\t%g\t%s\n", d.Name, d.Kind, d.Radius, d.OrbitDistance, d.AngularSpeed, d.Texture)
	}
	r := reg.Ring()
	fmt.Fprintf(tw, "%s ring\tring\t%g-%g\t\t\t%s\n", r.Parent, r.Inner, r.Outer, r.Texture)
	return tw.Flush()
}

func run(configPath, envPath string) error {
	if _, err := env.Load(envPath); err != nil {
		return fmt.Errorf("env: %w", err)
	}
	prefs, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := logger.New(prefs.LogFile)
	log.Infof("starting with %+v", prefs)

	reg, err := bodies.LoadYAML(prefs.BodiesFile)
	if err != nil {
		return err
	}
	labels, err := label.NewGenerator(prefs.LabelFont)
	if err != nil {
		log.Warnf("%v; falling back to built-in font", err)
		if labels, err = label.NewGenerator(""); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	collector := metrics.NewCollector()
	if prefs.MetricsAddr != "" {
		go func() {
			if err := collector.Serve(ctx, prefs.MetricsAddr); err != nil {
				log.Errorf("metrics: %v", err)
			}
		}()
		log.Infof("metrics on %s/metrics", prefs.MetricsAddr)
	}

	supersample := 1
	if prefs.MSAA {
		supersample = 2
	}
	if err := graphics.Open(graphics.WindowOptions{
		Title:      "Solar System",
		Width:      prefs.WindowWidth,
		Height:     prefs.WindowHeight,
		Fullscreen: prefs.Fullscreen,
		TargetFPS:  prefs.TargetFPS,
	}); err != nil {
		log.Errorf("%v", err)
		return err
	}
	defer graphics.CloseWindow()
	log.Infof("%s", graphics.Describe())

	loader := assets.NewLoader(log, prefs.TexturesDir, prefs.MaxTextureEdge)
	loader.SetObserver(collector.RecordTexture)
	defer loader.Close()

	sys := kinematics.NewSystem(reg)
	scn := scene.Build(sys, reg, loader, labels, scene.Options{
		ShowOrbits: prefs.ShowOrbits,
		ShowLabels: prefs.ShowLabels,
		Lighting:   prefs.Lighting,
		StarSeed:   prefs.StarSeed,
	}, log)
	defer scn.Unload()

	w, h := graphics.ScreenSize()
	target, err := graphics.NewTarget(w, h, supersample)
	if err != nil {
		log.Errorf("%v", err)
		return err
	}
	defer target.Unload()

	cam := viewport.NewCamera(75, 0.1, 2000, w, h)
	vp := viewport.New(cam, target, w, h)
	collector.SetViewport(vp.Size())

	dbg := debug.New()
	dbg.ShowFPS = prefs.ShowFPS
	dbg.ShowMemAlloc = prefs.ShowMemAlloc
	dbg.ShowTime = prefs.ShowFPS

	host := &graphics.Host{
		Scene:    scn,
		Loader:   loader,
		Orbit:    controls.NewOrbit([3]float32{0, 15, 50}, [3]float32{}),
		Camera:   cam,
		Target:   target,
		Debug:    dbg,
		OnResize: collector.SetViewport,
	}

	loop := animation.New(sys, vp, host, log)
	loop.TimeScale = prefs.TimeScale
	loop.Observe = collector.RecordFrame
	start := time.Now()
	err = loop.Run(ctx)
	log.Infof("stopped after %s, %d frames", time.Since(start).Round(time.Second), loop.Frames())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
