package ui

import "charm.land/lipgloss/v2"

type Theme struct {
	Highlight    lipgloss.Style
	Status       lipgloss.Style
	Accent       lipgloss.Style
	Muted        lipgloss.Style
	Fail         lipgloss.Style
	Overlay      lipgloss.Style
	OverlayTitle lipgloss.Style
}

func DefaultTheme() Theme {
	return ThemeForVariant("modern_arcade")
}

func ThemeForVariant(variant string) Theme {
	switch variant {
	case "cozy_clean":
		return cozyCleanTheme()
	case "retro_terminal":
		return retroTerminalTheme()
	default:
		return modernArcadeTheme()
	}
}

// Markup adapts the theme's highlight style to the paginator.
func (t Theme) Markup() HighlightMarkup {
	return HighlightMarkup{style: t.Highlight}
}

type HighlightMarkup struct {
	style lipgloss.Style
}

func (m HighlightMarkup) Highlight(s string) string { return m.style.Render(s) }

func modernArcadeTheme() Theme {
	amber := lipgloss.Color("#FFC857")
	ink := lipgloss.Color("#0E1420")
	slate := lipgloss.Color("#1B2740")
	powder := lipgloss.Color("#EAF2FF")
	blue := lipgloss.Color("#5EEBFF")
	brick := lipgloss.Color("#FF6F91")

	return Theme{
		Highlight: lipgloss.NewStyle().
			Background(amber).
			Foreground(ink),
		Status: lipgloss.NewStyle().
			Background(slate).
			Foreground(powder),
		Accent: lipgloss.NewStyle().
			Foreground(blue).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CAAC6")),
		Fail: lipgloss.NewStyle().
			Foreground(brick).
			Bold(true),
		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(blue).
			Padding(1, 2),
		OverlayTitle: lipgloss.NewStyle().
			Foreground(blue).
			Bold(true),
	}
}

func cozyCleanTheme() Theme {
	honey := lipgloss.Color("#F2B872")
	rose := lipgloss.Color("#D17A86")
	night := lipgloss.Color("#1E2430")
	slate := lipgloss.Color("#30394A")
	paper := lipgloss.Color("#F4F6FA")
	sky := lipgloss.Color("#86B6F6")

	return Theme{
		Highlight:    lipgloss.NewStyle().Background(honey).Foreground(night),
		Status:       lipgloss.NewStyle().Background(slate).Foreground(paper),
		Accent:       lipgloss.NewStyle().Foreground(sky).Bold(true),
		Muted:        lipgloss.NewStyle().Foreground(lipgloss.Color("#A3ACC2")),
		Fail:         lipgloss.NewStyle().Foreground(rose).Bold(true),
		Overlay:      lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(honey).Padding(1, 2),
		OverlayTitle: lipgloss.NewStyle().Foreground(honey).Bold(true),
	}
}

func retroTerminalTheme() Theme {
	lime := lipgloss.Color("#9CF5A2")
	amber := lipgloss.Color("#E5D47A")
	red := lipgloss.Color("#FF6B6B")
	forest := lipgloss.Color("#12301A")
	glow := lipgloss.Color("#C5F7C4")

	return Theme{
		Highlight:    lipgloss.NewStyle().Reverse(true),
		Status:       lipgloss.NewStyle().Background(forest).Foreground(glow),
		Accent:       lipgloss.NewStyle().Foreground(lime).Bold(true),
		Muted:        lipgloss.NewStyle().Foreground(lipgloss.Color("#73A17A")),
		Fail:         lipgloss.NewStyle().Foreground(red).Bold(true),
		Overlay:      lipgloss.NewStyle().BorderStyle(lipgloss.DoubleBorder()).BorderForeground(amber).Padding(1, 2),
		OverlayTitle: lipgloss.NewStyle().Foreground(amber).Bold(true),
	}
}
