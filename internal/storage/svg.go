package storage

import (
	"fmt"
	"strings"
)

// FrequencySVG draws one or more frequency series (values in [0,1]) over the
// same step axis. Each series gets the stroke colour at the same index.
func FrequencySVG(series [][]float64, colors []string, width, height int) string {
	maxLen := 0
	for _, s := range series {
		if len(s) > maxLen {
			maxLen = len(s)
		}
	}
	if maxLen < 2 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#444466" stroke-dasharray="4 4"/>
`, width, height, width, height, float64(height)/2, width, float64(height)/2))

	for i, s := range series {
		if len(s) < 2 {
			continue
		}
		color := "#00ff88"
		if i < len(colors) {
			color = colors[i]
		}

		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color))
		for j, v := range s {
			x := float64(j) / float64(maxLen-1) * float64(width)
			y := float64(height) - clamp01(v)*float64(height)
			if j == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
