package telegram

import (
	"fmt"
	"sort"
	"strings"

	"tutor-bot/api/internal/constants"
	"tutor-bot/api/internal/tutor"
)

const maxMessageLen = 3900

const helpText = `Hi! Ask me a math or physics question in plain text.

Examples:
• Solve 2x + 3 = 11
• What is the area of a circle with radius 3 cm?
• What is the speed of light?

Commands: /help, /engine, /constants, /health`

func truncate(text string) string {
	if len(text) <= maxMessageLen {
		return text
	}
	cut := maxMessageLen
	// не режем UTF-8 посередине руны
	for cut > 0 && !isRuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "…"
}

func isRuneStart(b byte) bool { return b&0xC0 != 0x80 }

func agentIcon(a tutor.Agent) string {
	switch a {
	case tutor.AgentMath:
		return "📐"
	case tutor.AgentPhysics:
		return "⚛️"
	default:
		return "💬"
	}
}

func formatResult(res tutor.QueryResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s · %s\n\n", agentIcon(res.Agent), res.Agent, res.Type())
	b.WriteString(strings.TrimSpace(res.Response()))

	if pa, ok := res.Answer.(tutor.PhysicsAnswer); ok && len(pa.Constants) > 0 {
		b.WriteString("\n\nConstants used:\n")
		b.WriteString(formatConstantList(pa.Constants))
	}
	return b.String()
}

func formatConstantList(m map[string]constants.Entry) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		e := m[k]
		fmt.Fprintf(&b, "• %s = %s %s\n", k, e.Value, e.Unit)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatConstantTable(t *constants.Table) string {
	return "Known constants:\n" + formatConstantList(t.All())
}
