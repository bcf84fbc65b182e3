package runner

import (
	"math"
	"strconv"
	"strings"
)

// Tools is the loosely typed tool map of an edit request, as decoded from
// JSON. Missing or unusable values fall back to the editor's defaults.
type Tools map[string]any

// Args returns the editor flags for t, reading from input and writing to
// output. Scalars are always passed; crop and resize only when set;
// heal, brush and clone once per non-empty entry.
func Args(input, output string, t Tools) []string {
	args := []string{"--input", input, "--output", output}

	if crop := t.str("crop", ""); crop != "" {
		args = append(args, "--crop", crop)
	}
	if resize := t.str("resize", ""); resize != "" {
		args = append(args, "--resize", resize)
	}

	args = append(args,
		"--rotate", formatFloat(t.float("rotate", 0)),
		"--filter", t.str("filter", "none"),
		"--brightness", formatFloat(t.float("brightness", 1)),
		"--contrast", formatFloat(t.float("contrast", 1)),
		"--saturation", formatFloat(t.float("saturation", 1)),
		"--temperature", strconv.Itoa(t.int("temperature", 0)),
		"--blur", formatFloat(t.float("blur", 0)),
		"--sharpen", formatFloat(t.float("sharpen", 1)),
		"--bg-remove", strconv.Itoa(t.int("bgRemove", 0)),
		"--exposure", formatFloat(t.float("exposure", 0)),
		"--text", t.text("text"),
		"--text-pos", t.str("textPos", "40,40"),
		"--text-size", strconv.Itoa(t.int("textSize", 14)),
		"--text-color", t.str("textColor", "#ffffff"),
		"--sticker", t.text("sticker"),
		"--sticker-pos", t.str("stickerPos", "80,80"),
		"--sticker-size", strconv.Itoa(t.int("stickerSize", 14)),
		"--sticker-opacity", strconv.Itoa(t.int("stickerOpacity", 100)),
	)

	for _, flag := range []struct{ key, name string }{
		{"heal", "--heal"},
		{"brush", "--brush"},
		{"clone", "--clone"},
	} {
		for _, v := range t.list(flag.key) {
			args = append(args, flag.name, v)
		}
	}
	return args
}

// str returns the trimmed string at key, or def when it is missing, not a
// string or blank.
func (t Tools) str(key, def string) string {
	if s, ok := t[key].(string); ok {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return def
}

// text returns the string at key untrimmed.
func (t Tools) text(key string) string {
	s, _ := t[key].(string)
	return s
}

func (t Tools) float(key string, def float64) float64 {
	switch v := t[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return def
}

func (t Tools) int(key string, def int) int {
	f := t.float(key, float64(def))
	if math.IsNaN(f) || math.Abs(f) > math.MaxInt32 {
		return def
	}
	return int(f)
}

// list returns the trimmed, non-empty strings of the array at key.
func (t Tools) list(key string) []string {
	var out []string
	switch v := t[key].(type) {
	case []string:
		for _, s := range v {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		}
	}
	return out
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
