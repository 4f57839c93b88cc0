package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// ruleWidth is the display width of the text edition.
const ruleWidth = 60

func rule(ch string) string {
	return strings.Repeat(ch, ruleWidth)
}

// center pads s so that it sits in the middle of the rule.
func center(s string) string {
	w := runewidth.StringWidth(s)
	if w >= ruleWidth {
		return s
	}
	return strings.Repeat(" ", (ruleWidth-w)/2) + s
}

// wrap breaks text into lines no wider than ruleWidth display cells. The first
// line starts with label; continuation lines are indented to line up with it.
func wrap(label, text string) string {
	indent := strings.Repeat(" ", runewidth.StringWidth(label))
	words := strings.Fields(text)
	if len(words) == 0 {
		return strings.TrimRight(label, " ")
	}

	var sb strings.Builder
	line := label
	lineWidth := runewidth.StringWidth(label)
	fresh := true

	for _, word := range words {
		ww := runewidth.StringWidth(word)
		if !fresh && lineWidth+1+ww > ruleWidth {
			sb.WriteString(line)
			sb.WriteString("\n")
			line, lineWidth, fresh = indent, len(indent), true
		}
		if !fresh {
			line += " "
			lineWidth++
		}
		line += word
		lineWidth += ww
		fresh = false
	}
	sb.WriteString(line)
	return sb.String()
}

func renderText(v view) string {
	var sb strings.Builder

	sb.WriteString(rule("=") + "\n")
	sb.WriteString(center(strings.ToUpper(v.Title)) + "\n")
	sb.WriteString(rule("=") + "\n\n")
	sb.WriteString(wrap("", v.Headline) + "\n\n")
	sb.WriteString("Hi " + NamePlaceholder + ",\n\n")
	fmt.Fprintf(&sb, "Date: %s\n", v.Date)
	fmt.Fprintf(&sb, "Total Items: %d\n", v.Total)
	fmt.Fprintf(&sb, "Research Papers: %d\n", len(v.Papers))
	fmt.Fprintf(&sb, "AI Updates: %d\n", len(v.News))
	for _, note := range v.Notes {
		fmt.Fprintf(&sb, "Note: %s\n", note)
	}
	sb.WriteString("\n" + rule("=") + "\n")

	if len(v.Papers) > 0 {
		fmt.Fprintf(&sb, "\n📚 LATEST RESEARCH PAPERS (%d)\n", len(v.Papers))
		sb.WriteString(strings.Repeat("-", 40) + "\n\n")
		for i, p := range v.Papers {
			sb.WriteString(wrap(fmt.Sprintf("%d. ", i+1), p.Title) + "\n")
			sb.WriteString("   Date: " + p.Date + "\n")
			sb.WriteString(wrap("   Summary: ", p.Summary) + "\n")
			if p.Findings != "" {
				sb.WriteString(wrap("   Key Findings: ", p.Findings) + "\n")
			}
			sb.WriteString("   Link: " + p.Source + "\n\n")
		}
	}

	if len(v.News) > 0 {
		fmt.Fprintf(&sb, "\n🚀 AI TOOLS & UPDATES (%d)\n", len(v.News))
		sb.WriteString(strings.Repeat("-", 40) + "\n\n")
		for i, n := range v.News {
			sb.WriteString(wrap(fmt.Sprintf("%d. ", i+1), n.Title) + "\n")
			sb.WriteString("   Category: " + n.Category + "\n")
			sb.WriteString("   Date: " + n.Date + "\n")
			sb.WriteString(wrap("   Summary: ", n.Summary) + "\n")
			sb.WriteString("   Link: " + n.Source + "\n\n")
		}
	}

	sb.WriteString("\n" + rule("=") + "\n")
	sb.WriteString("AI Agents Newsletter\n")
	sb.WriteString("Generated on " + v.Date + "\n")
	sb.WriteString("Stay updated with the latest in AI and agent technologies!\n")
	sb.WriteString(rule("=") + "\n")
	return sb.String()
}
