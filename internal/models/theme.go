package models

type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
	ThemeAuto  ThemeMode = "auto"
)

// Scheme is a resolved light or dark appearance.
type Scheme string

const (
	SchemeLight Scheme = "light"
	SchemeDark  Scheme = "dark"
)

type Palette struct {
	Primary       string `json:"primary"`
	Background    string `json:"background"`
	Card          string `json:"card"`
	Text          string `json:"text"`
	TextSecondary string `json:"text_secondary"`
	Border        string `json:"border"`
	Notification  string `json:"notification"`
	Error         string `json:"error"`
	Success       string `json:"success"`
}

var (
	LightPalette = Palette{
		Primary:       "#2563eb",
		Background:    "#ffffff",
		Card:          "#f8f9fa",
		Text:          "#1f2937",
		TextSecondary: "#6b7280",
		Border:        "#e5e7eb",
		Notification:  "#ef4444",
		Error:         "#dc2626",
		Success:       "#10b981",
	}
	DarkPalette = Palette{
		Primary:       "#3b82f6",
		Background:    "#111827",
		Card:          "#1f2937",
		Text:          "#f9fafb",
		TextSecondary: "#9ca3af",
		Border:        "#374151",
		Notification:  "#f87171",
		Error:         "#ef4444",
		Success:       "#34d399",
	}
)

type ThemeState struct {
	Mode      ThemeMode `json:"mode"`
	Effective Scheme    `json:"effective"`
	Palette   Palette   `json:"palette"`
}

type SetThemeRequest struct {
	Mode ThemeMode `json:"mode" validate:"required,oneof=light dark auto"`
}
