// Package settings loads the shared helper configuration. The settings
// file is written by the separate settings UI and re-read by the helper
// whenever its modification time advances.
package settings

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// File names inside the config directory.
const (
	SettingsFile = "arc_tooltip_settings.json"
	VerdictsFile = "arc_tooltip_verdicts.json"
	configDir    = "ARC_Companion"
)

// Hotkey identifies a bindable input: a device ("keyboard" or "mouse")
// and a key or button name.
type Hotkey struct {
	Device string `mapstructure:"device" json:"device"`
	Key    string `mapstructure:"key" json:"key"`
}

// Snapshot is one consistent view of the configuration. Values are
// clamped to safe ranges on load.
type Snapshot struct {
	AlwaysOn    bool   `mapstructure:"always_on"`
	Hotkey      Hotkey `mapstructure:"hotkey"`
	CycleHotkey Hotkey `mapstructure:"cycle_hotkey"`

	FontSize        int     `mapstructure:"tooltip_font_size"`
	ShowRRCrafting  bool    `mapstructure:"show_rr_and_crafting"`
	Alpha           float64 `mapstructure:"tooltip_alpha"`
	PanelColor      string  `mapstructure:"tooltip_panel_color"`
	TextPrimary     string  `mapstructure:"tooltip_text_primary_color"`
	TextSecondary   string  `mapstructure:"tooltip_text_secondary_color"`
	KeepColor       string  `mapstructure:"tooltip_keep_color"`
	RecycleColor    string  `mapstructure:"tooltip_recycle_color"`
	SellColor       string  `mapstructure:"tooltip_sell_color"`
}

// Default returns the built-in configuration.
func Default() Snapshot {
	return Snapshot{
		AlwaysOn:       false,
		Hotkey:         Hotkey{Device: "keyboard", Key: "^"},
		CycleHotkey:    Hotkey{Device: "keyboard", Key: "space"},
		FontSize:       14,
		ShowRRCrafting: true,
		Alpha:          0.94,
		PanelColor:     "#3737370f",
		TextPrimary:    "#141414ff",
		TextSecondary:  "#505050ff",
		KeepColor:      "#ff2828ff",
		RecycleColor:   "#28ffffff",
		SellColor:      "#28ff28ff",
	}
}

// Dir returns the per-user configuration directory, creating it when
// missing.
func Dir() (string, error) {
	var base string
	if runtime.GOOS == "windows" {
		base = os.Getenv("APPDATA")
	}
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}

	dir := filepath.Join(base, configDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// Load reads the settings file, merging it over the defaults. A
// missing or unreadable file yields the defaults without error; the
// file being optional is normal on first run.
func Load(path string) Snapshot {
	def := Default()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	v.SetDefault("always_on", def.AlwaysOn)
	v.SetDefault("hotkey.device", def.Hotkey.Device)
	v.SetDefault("hotkey.key", def.Hotkey.Key)
	v.SetDefault("cycle_hotkey.device", def.CycleHotkey.Device)
	v.SetDefault("cycle_hotkey.key", def.CycleHotkey.Key)
	v.SetDefault("tooltip_font_size", def.FontSize)
	v.SetDefault("show_rr_and_crafting", def.ShowRRCrafting)
	v.SetDefault("tooltip_alpha", def.Alpha)
	v.SetDefault("tooltip_panel_color", def.PanelColor)
	v.SetDefault("tooltip_text_primary_color", def.TextPrimary)
	v.SetDefault("tooltip_text_secondary_color", def.TextSecondary)
	v.SetDefault("tooltip_keep_color", def.KeepColor)
	v.SetDefault("tooltip_recycle_color", def.RecycleColor)
	v.SetDefault("tooltip_sell_color", def.SellColor)

	if err := v.ReadInConfig(); err != nil {
		return def
	}

	var s Snapshot
	if err := v.Unmarshal(&s); err != nil {
		return def
	}
	s.clamp(def)
	return s
}

// clamp pulls out-of-range values back to sane ones.
func (s *Snapshot) clamp(def Snapshot) {
	if s.FontSize < 10 {
		s.FontSize = 10
	}
	if s.FontSize > 32 {
		s.FontSize = 32
	}
	if s.Alpha < 0.1 || s.Alpha > 1.0 {
		s.Alpha = def.Alpha
	}
	if s.Hotkey.Device == "" {
		s.Hotkey = def.Hotkey
	}
	if s.CycleHotkey.Device == "" {
		s.CycleHotkey = def.CycleHotkey
	}

	fixColor := func(v *string, fallback string) {
		if *v == "" {
			*v = fallback
		}
	}
	fixColor(&s.PanelColor, def.PanelColor)
	fixColor(&s.TextPrimary, def.TextPrimary)
	fixColor(&s.TextSecondary, def.TextSecondary)
	fixColor(&s.KeepColor, def.KeepColor)
	fixColor(&s.RecycleColor, def.RecycleColor)
	fixColor(&s.SellColor, def.SellColor)
}
