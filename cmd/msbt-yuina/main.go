// Command msbt-yuina is a desktop image viewer built around smooth
// zooming, mouse gesture navigation and svg rendering.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sqweek/dialog"

	"github.com/firemio/MSBT-yuina/internal/config"
	"github.com/firemio/MSBT-yuina/internal/logging"
	"github.com/firemio/MSBT-yuina/internal/service"
	"github.com/firemio/MSBT-yuina/internal/ui"
	"github.com/firemio/MSBT-yuina/internal/viewer"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [image file]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := config.Default()
	var cfgWarnings []string
	cfgPath, cfgErr := config.DefaultPath()
	if cfgErr == nil {
		cfg, cfgWarnings, cfgErr = config.Load(cfgPath)
	}

	logPath, logPathErr := logging.DefaultPath()
	log, closeLog, logErr := logging.Setup(logPath, cfg.EnableDebugLog)
	defer closeLog()
	defer logging.CapturePanic(log)

	if logPathErr != nil {
		log.Warnf("resolving log path: %v", logPathErr)
	} else if logErr != nil {
		log.Warnf("log file unavailable: %v", logErr)
	}
	if cfgErr != nil {
		log.Warnf("config: %v", cfgErr)
	}
	for _, w := range cfgWarnings {
		log.Warn(w)
	}

	session := viewer.NewSession(cfg, log, service.NewImageService(), service.NewScanner(), ui.UploadTexture)
	defer session.Close()

	if path := flag.Arg(0); path != "" {
		if err := session.Open(path); err != nil {
			log.Errorf("opening %s: %v", path, err)
			dialog.Message("Could not open %s: %v", path, err).Title("Error").Error()
		}
	}

	game, err := ui.NewGame(session, log)
	if err != nil {
		log.Fatalf("initializing ui: %v", err)
	}

	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowSizeLimits(200, 200, -1, -1)
	ebiten.SetWindowTitle(viewer.AppName)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowIcon(ui.AppIcons())

	log.Infof("%s starting", viewer.AppName)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("run: %v", err)
	}
}
