package main

import (
	"embed"
	"log/slog"
	"os"

	"github.com/wailsapp/wails/v3/pkg/application"
	"github.com/wailsapp/wails/v3/pkg/events"

	"github.com/jarvis-agent/desktop/config"
	"github.com/jarvis-agent/desktop/hotkey"
	"github.com/jarvis-agent/desktop/internal/app"
	"github.com/jarvis-agent/desktop/internal/types"
	"github.com/jarvis-agent/desktop/shell"
)

//go:embed all:frontend/dist
var assets embed.FS

//go:embed icons/tray.png
var trayIcon []byte

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	logger := newLogger()
	slog.SetDefault(logger)
	slog.Info("starting app", "version", version, "commit", commit, "date", date)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		cfg = config.Default()
	}

	// Plugins with their default configuration.
	var wailsApp *application.App
	shortcuts := hotkey.NewService(nil)
	shellService := shell.NewService(func(url string) error {
		return wailsApp.Browser.OpenURL(url)
	})
	if err := shellService.SetScope(cfg.Shell); err != nil {
		slog.Error("apply shell scope", "error", err)
	}

	appService := app.New(version, cfg, shortcuts, shellService)

	wailsApp = application.New(application.Options{
		Name:        "Jarvis Agent",
		Description: "Jarvis Agent Desktop",
		Logger:      logger,
		Services: []application.Service{
			application.NewService(shortcuts),
			application.NewService(shellService),
			application.NewService(appService),
		},
		Assets: application.AssetOptions{
			Handler: application.BundledAssetFileServer(assets),
		},
		Mac: application.MacOptions{
			ApplicationShouldTerminateAfterLastWindowClosed: !cfg.CloseToTray,
		},
		Windows: application.WindowsOptions{
			DisableQuitOnLastWindowClosed: cfg.CloseToTray,
		},
		Linux: application.LinuxOptions{
			DisableQuitOnLastWindowClosed: cfg.CloseToTray,
			ProgramName:                   "jarvis",
		},
		SingleInstance: &application.SingleInstanceOptions{
			UniqueID: "agent.jarvis.desktop",
			OnSecondInstanceLaunch: func(data application.SecondInstanceData) {
				slog.Info("second instance launched", "args", data.Args)
				appService.ShowWindow()
			},
		},
	})

	shortcuts.SetEmitter(func(name string, data any) {
		wailsApp.Event.Emit(name, data)
	})
	appService.Init(wailsApp)

	for _, wc := range cfg.Windows {
		window := newWindow(wailsApp, wc)
		if wc.Name == config.MainWindow {
			watchMainWindow(window, appService, cfg.CloseToTray)
		}
	}

	var systemTray *application.SystemTray
	if cfg.Tray.Enabled {
		systemTray = setupTray(wailsApp, cfg, appService)
	}

	// Runs once the runtime has created its windows and started the plugins.
	wailsApp.Event.OnApplicationEvent(events.Common.ApplicationStarted, func(*application.ApplicationEvent) {
		if err := appService.Setup(app.NewWailsHost(wailsApp, systemTray)); err != nil {
			slog.Error("setup", "error", err)
			os.Exit(1)
		}
		appService.WatchConfig()
	})

	if err := wailsApp.Run(); err != nil {
		slog.Error("run app", "error", err)
		os.Exit(1)
	}
}

func newWindow(wailsApp *application.App, wc types.WindowConfig) *application.WebviewWindow {
	return wailsApp.Window.NewWithOptions(application.WebviewWindowOptions{
		Name:            wc.Name,
		Title:           wc.Title,
		URL:             wc.URL,
		Width:           wc.Width,
		Height:          wc.Height,
		MinWidth:        wc.MinWidth,
		MinHeight:       wc.MinHeight,
		Hidden:          wc.Hidden,
		Frameless:       wc.Frameless,
		DevToolsEnabled: devMode,
	})
}

// watchMainWindow persists geometry and, with close-to-tray, hides the window
// instead of letting the close quit the app.
func watchMainWindow(window *application.WebviewWindow, appService *app.Service, closeToTray bool) {
	window.RegisterHook(events.Common.WindowDidMove, func(*application.WindowEvent) {
		appService.SaveWindowState()
	})
	window.RegisterHook(events.Common.WindowDidResize, func(*application.WindowEvent) {
		appService.SaveWindowState()
	})

	if !closeToTray {
		return
	}
	window.RegisterHook(events.Common.WindowClosing, func(e *application.WindowEvent) {
		appService.SaveWindowState()
		e.Cancel()
		window.Hide()
	})
}

func setupTray(wailsApp *application.App, cfg *config.Config, appService *app.Service) *application.SystemTray {
	systemTray := wailsApp.SystemTray.New()
	systemTray.SetIcon(trayIcon)
	if cfg.Tray.Tooltip != "" {
		systemTray.SetTooltip(cfg.Tray.Tooltip)
	}
	if cfg.Tray.Label != "" {
		systemTray.SetLabel(cfg.Tray.Label)
	}

	labels := app.LabelsFor(cfg.Locale)
	trayMenu := wailsApp.NewMenu()
	trayMenu.Add(labels.Show).OnClick(func(*application.Context) {
		appService.ShowWindow()
	})
	trayMenu.Add(labels.Hide).OnClick(func(*application.Context) {
		appService.HideWindow()
	})
	trayMenu.AddSeparator()
	trayMenu.Add(labels.Quit).
		SetAccelerator("CmdOrCtrl+Q").
		OnClick(func(*application.Context) {
			wailsApp.Quit()
		})

	systemTray.SetMenu(trayMenu)
	return systemTray
}
