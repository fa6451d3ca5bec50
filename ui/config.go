package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/widget"

	"github.com/dliang/linefollow/routes"
)

// Config is what the bench needs before it builds the engine
type Config struct {
	Route        string
	PauseOnPress bool
	Verbose      bool
}

type ConfigWindow struct {
	app      fyne.App
	OnSubmit func()
}

func NewConfigWindow(app fyne.App) *ConfigWindow {
	return &ConfigWindow{
		app: app,
	}
}

func (cw *ConfigWindow) loadConfigFromPreferences(cfg *Config) {
	prefs := cw.app.Preferences()
	if cfg.Route == "" {
		cfg.Route = prefs.StringWithFallback("route", "")
	}
	cfg.PauseOnPress = prefs.BoolWithFallback("pauseOnPress", cfg.PauseOnPress)
	cfg.Verbose = prefs.BoolWithFallback("verbose", cfg.Verbose)
}

func (cw *ConfigWindow) saveConfigToPreferences(cfg *Config) {
	prefs := cw.app.Preferences()
	prefs.SetString("route", cfg.Route)
	prefs.SetBool("pauseOnPress", cfg.PauseOnPress)
	prefs.SetBool("verbose", cfg.Verbose)
}

func (cw *ConfigWindow) Show(cfg *Config) {
	window := cw.app.NewWindow("Line Follower - Configuration")
	window.Resize(fyne.NewSize(360, 200))
	window.SetCloseIntercept(func() {
		// Treat window close as cancel
		window.Close()
		cw.app.Quit()
	})
	window.Show()

	cw.loadConfigFromPreferences(cfg)

	names := routes.Names()
	if _, err := routes.Lookup(cfg.Route); err != nil {
		cfg.Route = names[0]
	}

	routeEntry := widget.NewSelect(names, nil)
	routeEntry.Bind(binding.BindString(&cfg.Route))

	pauseCheck := widget.NewCheckWithData("Pause on press", binding.BindBool(&cfg.PauseOnPress))
	verboseCheck := widget.NewCheckWithData("Trace drive changes", binding.BindBool(&cfg.Verbose))

	submitButton := widget.NewButton("Start", func() {
		cw.saveConfigToPreferences(cfg)
		cw.OnSubmit()
		window.Close()
	})

	form := container.NewVBox(
		widget.NewCard("Configuration", "", container.NewVBox(
			container.NewGridWithColumns(2,
				widget.NewLabel("Route:"),
				routeEntry,
			),
			pauseCheck,
			verboseCheck,
		)),
		container.NewHBox(
			widget.NewButton("Cancel", func() {
				window.Close()
				cw.app.Quit()
			}),
			submitButton,
		),
	)

	window.SetContent(form)
}
