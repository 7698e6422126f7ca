// Package publisher keeps one pinned summary message per channel in sync
// with the current ledgers. The bound message is never remembered across
// publishes: it is rediscovered on every publish by scanning recent channel
// history for the category marker, and recreated if the scan finds nothing.
package publisher

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/susu3304/stockbot/internal/metrics"
	"github.com/susu3304/stockbot/internal/stock"
	"github.com/susu3304/stockbot/internal/store"
	"github.com/susu3304/stockbot/internal/summary"
)

// historyScanLimit bounds the window searched for an existing summary
// message. A summary pushed out of the window is treated as lost and a new
// one is created.
const historyScanLimit = 50

// Gateway is the slice of the Discord session the publisher needs.
// Satisfied by *discordgo.Session.
type Gateway interface {
	ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessagePin(channelID, messageID string, options ...discordgo.RequestOption) error
}

// Channels maps summaries to their destination channels.
type Channels struct {
	ByCategory map[stock.Category]string
	Global     string
}

type Publisher struct {
	gw        Gateway
	store     *store.Store
	channels  Channels
	botUserID string
	now       func() time.Time
}

func New(gw Gateway, st *store.Store, channels Channels, botUserID string) *Publisher {
	return &Publisher{
		gw:        gw,
		store:     st,
		channels:  channels,
		botUserID: botUserID,
		now:       time.Now,
	}
}

// RegisterCustomID is the stable identifier of the "register movement"
// button for a category. It doubles as the marker that identifies the
// category's summary message in channel history.
func RegisterCustomID(c stock.Category) string {
	return "registrar_" + string(c)
}

// RegisterButtonRow builds the action row holding the register button shown
// under a category summary.
func RegisterButtonRow(c stock.Category) discordgo.MessageComponent {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Registrar Movimiento",
				Style:    discordgo.PrimaryButton,
				CustomID: RegisterCustomID(c),
				Emoji:    discordgo.ComponentEmoji{Name: c.Icon()},
			},
		},
	}
}

// PublishCategory loads the category ledger, renders it and pushes it to the
// category channel, editing the existing summary message in place when one
// is found.
func (p *Publisher) PublishCategory(c stock.Category) error {
	channelID := p.channels.ByCategory[c]
	if channelID == "" {
		return fmt.Errorf("no channel configured for category %s", c)
	}

	ledger, err := p.store.Load(c)
	if err != nil {
		return err
	}
	embed := summary.RenderCategory(c, ledger, stock.Filter{}, p.now())
	row := RegisterButtonRow(c)

	bound, err := p.findByMarker(channelID, func(m *discordgo.Message) bool {
		return messageHasButton(m, RegisterCustomID(c))
	})
	if err != nil {
		metrics.PublishErrors.Inc()
		return err
	}

	if bound != nil {
		_, err = p.gw.ChannelMessageEditComplex(&discordgo.MessageEdit{
			Channel:    channelID,
			ID:         bound.ID,
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: []discordgo.MessageComponent{row},
		})
		if err != nil {
			metrics.PublishErrors.Inc()
			return fmt.Errorf("edit %s summary: %w", c, err)
		}
		metrics.SummariesPublished.WithLabelValues(string(c)).Inc()
		return nil
	}

	msg, err := p.gw.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{row},
	})
	if err != nil {
		metrics.PublishErrors.Inc()
		return fmt.Errorf("send %s summary: %w", c, err)
	}
	p.pin(channelID, msg.ID)
	metrics.SummariesPublished.WithLabelValues(string(c)).Inc()
	return nil
}

// PublishGlobal renders all three ledgers into the global summary and pushes
// it to the global channel.
func (p *Publisher) PublishGlobal() error {
	channelID := p.channels.Global
	if channelID == "" {
		return fmt.Errorf("no channel configured for the global summary")
	}

	ledgers, err := p.store.LoadAll()
	if err != nil {
		return err
	}
	embed := summary.RenderGlobal(ledgers, p.now())

	bound, err := p.findByMarker(channelID, messageHasGlobalTitle)
	if err != nil {
		metrics.PublishErrors.Inc()
		return err
	}

	if bound != nil {
		_, err = p.gw.ChannelMessageEditComplex(&discordgo.MessageEdit{
			Channel: channelID,
			ID:      bound.ID,
			Embeds:  []*discordgo.MessageEmbed{embed},
		})
		if err != nil {
			metrics.PublishErrors.Inc()
			return fmt.Errorf("edit global summary: %w", err)
		}
		metrics.SummariesPublished.WithLabelValues("general").Inc()
		return nil
	}

	msg, err := p.gw.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
	})
	if err != nil {
		metrics.PublishErrors.Inc()
		return fmt.Errorf("send global summary: %w", err)
	}
	p.pin(channelID, msg.ID)
	metrics.SummariesPublished.WithLabelValues("general").Inc()
	return nil
}

// PublishAll refreshes every category summary and the global one, logging
// failures instead of aborting so one broken channel does not block the
// rest.
func (p *Publisher) PublishAll() {
	for _, c := range stock.Categories() {
		if err := p.PublishCategory(c); err != nil {
			log.Printf("Failed to publish %s summary: %v", c, err)
		}
	}
	if err := p.PublishGlobal(); err != nil {
		log.Printf("Failed to publish global summary: %v", err)
	}
}

// findByMarker scans recent channel history for the newest bot-authored
// message matching the marker. Returning (nil, nil) means no binding exists
// and the caller should create one.
func (p *Publisher) findByMarker(channelID string, marker func(*discordgo.Message) bool) (*discordgo.Message, error) {
	msgs, err := p.gw.ChannelMessages(channelID, historyScanLimit, "", "", "")
	if err != nil {
		return nil, fmt.Errorf("fetch history of channel %s: %w", channelID, err)
	}
	for _, m := range msgs {
		if m.Author == nil || m.Author.ID != p.botUserID {
			continue
		}
		if marker(m) {
			return m, nil
		}
	}
	return nil, nil
}

// pin is best-effort: an unpinnable summary is still a published summary.
func (p *Publisher) pin(channelID, messageID string) {
	if err := p.gw.ChannelMessagePin(channelID, messageID); err != nil {
		log.Printf("Failed to pin summary message %s in channel %s: %v", messageID, channelID, err)
	}
}

func messageHasButton(m *discordgo.Message, customID string) bool {
	for _, comp := range m.Components {
		row, ok := comp.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, inner := range row.Components {
			if btn, ok := inner.(*discordgo.Button); ok && btn.CustomID == customID {
				return true
			}
		}
	}
	return false
}

func messageHasGlobalTitle(m *discordgo.Message) bool {
	return len(m.Embeds) > 0 && m.Embeds[0] != nil &&
		strings.HasPrefix(m.Embeds[0].Title, summary.GlobalTitle)
}
