package graph

// Visual attributes are fixed per mode and level so the frontend can render
// any graph without per-request styling data. The center paper is always red,
// level 2 is always gray; level-1 colors separate the relation types.

const (
	colorCenter       = "#e74c3c"
	colorLevelTwo     = "#95a5a6"
	edgeColorLevelTwo = "#bdc3c7"
)

func nodeSize(level int) int {
	switch level {
	case 0:
		return 20
	case 1:
		return 15
	default:
		return 10
	}
}

func labelLimit(level int) int {
	switch level {
	case 0:
		return 50
	case 1:
		return 40
	default:
		return 30
	}
}

// truncateLabel shortens a title to the level-dependent label length,
// appending an ellipsis when anything was cut.
func truncateLabel(title string, level int) string {
	return shortTitle(title, labelLimit(level))
}

func shortTitle(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}

func nodeColor(mode Mode, level int, variant string) string {
	switch level {
	case 0:
		return colorCenter
	case 2:
		return colorLevelTwo
	}
	switch mode {
	case ModeAuthor:
		return "#3498db"
	case ModeCiting:
		if variant == variantIncoming {
			return "#2ecc71"
		}
		return "#9b59b6"
	case ModeKeyKnowledge:
		return "#f39c12"
	case ModeSimilar:
		return "#1abc9c"
	}
	return colorLevelTwo
}

func edgeColor(mode Mode, level int, variant string) string {
	if level >= 2 {
		return edgeColorLevelTwo
	}
	switch mode {
	case ModeAuthor:
		return "#f39c12"
	case ModeCiting:
		if variant == variantIncoming {
			return "#27ae60"
		}
		return "#8e44ad"
	case ModeKeyKnowledge:
		return "#e67e22"
	case ModeSimilar:
		return "#16a085"
	}
	return edgeColorLevelTwo
}
