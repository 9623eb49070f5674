package sections

// TextStyle describes the optional typography overrides of a text field.
type TextStyle struct {
	FontColor  string          `json:"fontColor,omitempty"`
	FontSize   string          `json:"fontSize,omitempty"`
	FontStyle  string          `json:"fontStyle,omitempty"`
	FontWeight string          `json:"fontWeight,omitempty"`
	FontFamily string          `json:"fontFamily,omitempty"`
	TextAlign  string          `json:"textAlign,omitempty"`
	Shadow     *TextShadow     `json:"shadow,omitempty"`
	Outline    *TextOutline    `json:"outline,omitempty"`
	Background *TextBackground `json:"background,omitempty"`
	Margin     *Spacing        `json:"margin,omitempty"`
}

type TextShadow struct {
	OffsetX int    `json:"offsetX"`
	OffsetY int    `json:"offsetY"`
	Blur    int    `json:"blur"`
	Color   string `json:"color,omitempty"`
}

type TextOutline struct {
	Width int    `json:"width"`
	Color string `json:"color,omitempty"`
}

type TextBackground struct {
	Color   string  `json:"color,omitempty"`
	Opacity float64 `json:"opacity"`
	Blur    int     `json:"blur"`
}

// DefaultTextStyle returns the style applied when a field carries no overrides.
func DefaultTextStyle() TextStyle {
	return TextStyle{
		FontColor:  "inherit",
		FontSize:   "1rem",
		FontStyle:  "normal",
		FontWeight: "400",
		FontFamily: "inherit",
		TextAlign:  "left",
		Shadow:     &TextShadow{Color: "transparent"},
		Outline:    &TextOutline{Color: "transparent"},
		Background: &TextBackground{Color: "transparent"},
		Margin:     &Spacing{},
	}
}

// ResolveTextStyle merges partial over DefaultTextStyle field by field.
// Nested objects are merged rather than replaced. Zero values in partial
// keep the default.
func ResolveTextStyle(partial *TextStyle) TextStyle {
	out := DefaultTextStyle()
	if partial == nil {
		return out
	}
	out.FontColor = pick(partial.FontColor, out.FontColor)
	out.FontSize = pick(partial.FontSize, out.FontSize)
	out.FontStyle = pick(partial.FontStyle, out.FontStyle)
	out.FontWeight = pick(partial.FontWeight, out.FontWeight)
	out.FontFamily = pick(partial.FontFamily, out.FontFamily)
	out.TextAlign = pick(partial.TextAlign, out.TextAlign)

	if s := partial.Shadow; s != nil {
		out.Shadow = &TextShadow{
			OffsetX: pickInt(s.OffsetX, out.Shadow.OffsetX),
			OffsetY: pickInt(s.OffsetY, out.Shadow.OffsetY),
			Blur:    pickInt(s.Blur, out.Shadow.Blur),
			Color:   pick(s.Color, out.Shadow.Color),
		}
	}
	if o := partial.Outline; o != nil {
		out.Outline = &TextOutline{
			Width: pickInt(o.Width, out.Outline.Width),
			Color: pick(o.Color, out.Outline.Color),
		}
	}
	if b := partial.Background; b != nil {
		opacity := out.Background.Opacity
		if b.Opacity != 0 {
			opacity = b.Opacity
		}
		out.Background = &TextBackground{
			Color:   pick(b.Color, out.Background.Color),
			Opacity: opacity,
			Blur:    pickInt(b.Blur, out.Background.Blur),
		}
	}
	if m := partial.Margin; m != nil {
		margin := *m
		out.Margin = &margin
	}
	return out
}

func pick(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func pickInt(value, fallback int) int {
	if value != 0 {
		return value
	}
	return fallback
}
