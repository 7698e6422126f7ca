// Package summary renders ledgers into Discord embeds. Rendering is pure:
// the same ledger and clock always produce the same embed.
package summary

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/susu3304/stockbot/internal/stock"
)

// GlobalTitle prefixes the global summary embed; the publisher relies on it
// to rediscover the pinned global message.
const GlobalTitle = "📊 Resumen General de Stock"

const separator = "────────────────────────"

const globalColor = 0x00d0fe

// RenderCategory builds the per-category summary: one labeled group per
// resource listing its locations and counts in insertion order. The filter
// narrows what is shown; pass a zero Filter for the full ledger.
func RenderCategory(c stock.Category, ledger *stock.Ledger, f stock.Filter, now time.Time) *discordgo.MessageEmbed {
	var b strings.Builder
	entries := ledger.Entries(f)
	if len(entries) == 0 {
		b.WriteString("No hay stock registrado.")
	} else {
		last := ""
		for _, e := range entries {
			if e.Resource != last {
				fmt.Fprintf(&b, "\n%s\n**%s**\n", separator, e.Resource)
				last = e.Resource
			}
			fmt.Fprintf(&b, "• %s: **%d**\n", e.Location, e.Count)
		}
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s Resumen de Stock: %s", c.Icon(), c.DisplayName()),
		Color:       c.Color(),
		Description: strings.TrimSpace(b.String()),
		Footer:      footer(now),
	}
}

// RenderGlobal builds the global summary: one section per category in the
// fixed order, each listing every (resource, location, count) flattened.
// Query filters deliberately do not apply here; they only narrow
// per-category summaries.
func RenderGlobal(ledgers map[stock.Category]*stock.Ledger, now time.Time) *discordgo.MessageEmbed {
	var b strings.Builder
	for _, c := range stock.Categories() {
		fmt.Fprintf(&b, "\n%s **%s**\n", c.Icon(), c.DisplayName())
		entries := ledgers[c].Entries(stock.Filter{})
		if len(entries) == 0 {
			b.WriteString("No hay stock.\n")
		} else {
			for _, e := range entries {
				fmt.Fprintf(&b, "• %s - %s: **%d**\n", e.Resource, e.Location, e.Count)
			}
		}
		fmt.Fprintf(&b, "\n%s\n", separator)
	}

	return &discordgo.MessageEmbed{
		Title:       GlobalTitle,
		Color:       globalColor,
		Description: strings.TrimSpace(b.String()),
		Footer:      footer(now),
	}
}

// RenderError builds a red error embed, used for unrecognized query targets.
func RenderError(msg string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Error",
		Description: msg,
		Color:       0xff0000,
	}
}

func footer(now time.Time) *discordgo.MessageEmbedFooter {
	return &discordgo.MessageEmbedFooter{
		Text: "Última actualización: " + now.Format("02/01/2006 15:04:05"),
	}
}
