package publisher

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/susu3304/stockbot/internal/stock"
	"github.com/susu3304/stockbot/internal/store"
)

const testBotID = "bot-user"

// fakeGateway keeps an in-memory channel history and records every call, so
// tests can assert the find-or-create behavior without a Discord session.
type fakeGateway struct {
	messages   map[string][]*discordgo.Message
	nextID     int
	sends      int
	edits      []string
	pins       []string
	pinErr     error
	historyErr error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{messages: make(map[string][]*discordgo.Message)}
}

func (g *fakeGateway) ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error) {
	if g.historyErr != nil {
		return nil, g.historyErr
	}
	return g.messages[channelID], nil
}

func (g *fakeGateway) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	g.sends++
	g.nextID++
	msg := &discordgo.Message{
		ID:         fmt.Sprintf("msg-%d", g.nextID),
		ChannelID:  channelID,
		Author:     &discordgo.User{ID: testBotID},
		Embeds:     data.Embeds,
		Components: asAPIComponents(data.Components),
	}
	g.messages[channelID] = append([]*discordgo.Message{msg}, g.messages[channelID]...)
	return msg, nil
}

func (g *fakeGateway) ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	g.edits = append(g.edits, m.ID)
	for _, msg := range g.messages[m.Channel] {
		if msg.ID == m.ID {
			msg.Embeds = m.Embeds
			if m.Components != nil {
				msg.Components = asAPIComponents(m.Components)
			}
			return msg, nil
		}
	}
	return nil, errors.New("unknown message")
}

func (g *fakeGateway) ChannelMessagePin(channelID, messageID string, options ...discordgo.RequestOption) error {
	if g.pinErr != nil {
		return g.pinErr
	}
	g.pins = append(g.pins, messageID)
	return nil
}

// asAPIComponents mirrors what discordgo's JSON unmarshalling produces:
// pointer components, not the value forms used when sending.
func asAPIComponents(in []discordgo.MessageComponent) []discordgo.MessageComponent {
	var out []discordgo.MessageComponent
	for _, comp := range in {
		row, ok := comp.(discordgo.ActionsRow)
		if !ok {
			out = append(out, comp)
			continue
		}
		inner := make([]discordgo.MessageComponent, 0, len(row.Components))
		for _, c := range row.Components {
			if btn, ok := c.(discordgo.Button); ok {
				b := btn
				inner = append(inner, &b)
			} else {
				inner = append(inner, c)
			}
		}
		out = append(out, &discordgo.ActionsRow{Components: inner})
	}
	return out
}

func newTestPublisher(t *testing.T, gw *fakeGateway) (*Publisher, *store.Store) {
	t.Helper()
	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	channels := Channels{
		ByCategory: map[stock.Category]string{
			stock.Weapons: "chan-armas",
			stock.Drugs:   "chan-drogas",
			stock.Funds:   "chan-fondos",
		},
		Global: "chan-general",
	}
	return New(gw, st, channels, testBotID), st
}

func TestPublishCategoryCreatesAndPins(t *testing.T) {
	gw := newFakeGateway()
	pub, _ := newTestPublisher(t, gw)

	if err := pub.PublishCategory(stock.Weapons); err != nil {
		t.Fatalf("PublishCategory() error = %v", err)
	}
	if gw.sends != 1 {
		t.Errorf("sends = %d, want 1", gw.sends)
	}
	if len(gw.pins) != 1 {
		t.Errorf("pins = %v, want exactly one", gw.pins)
	}
	if len(gw.edits) != 0 {
		t.Errorf("edits = %v, want none on first publish", gw.edits)
	}
}

func TestPublishCategoryEditsExistingMessage(t *testing.T) {
	gw := newFakeGateway()
	pub, st := newTestPublisher(t, gw)

	if err := pub.PublishCategory(stock.Weapons); err != nil {
		t.Fatalf("first PublishCategory() error = %v", err)
	}
	bound := gw.messages["chan-armas"][0].ID

	ledger := stock.NewLedger()
	m, err := stock.NewMovement(stock.Weapons, "entrada", "AK47", "10", "Bodega", "")
	if err != nil {
		t.Fatal(err)
	}
	ledger.Apply(m)
	if err := st.Save(stock.Weapons, ledger); err != nil {
		t.Fatal(err)
	}

	if err := pub.PublishCategory(stock.Weapons); err != nil {
		t.Fatalf("second PublishCategory() error = %v", err)
	}
	if gw.sends != 1 {
		t.Errorf("sends = %d, want 1 (second publish must edit)", gw.sends)
	}
	if len(gw.edits) != 1 || gw.edits[0] != bound {
		t.Errorf("edits = %v, want [%s]", gw.edits, bound)
	}
	if !strings.Contains(gw.messages["chan-armas"][0].Embeds[0].Description, "AK47") {
		t.Error("edited summary does not reflect the new ledger")
	}
}

func TestPublishCategoryRecreatesLostBinding(t *testing.T) {
	gw := newFakeGateway()
	pub, _ := newTestPublisher(t, gw)

	if err := pub.PublishCategory(stock.Drugs); err != nil {
		t.Fatalf("PublishCategory() error = %v", err)
	}
	// Simulate the bound message being deleted
	gw.messages["chan-drogas"] = nil

	if err := pub.PublishCategory(stock.Drugs); err != nil {
		t.Fatalf("PublishCategory() after lost binding error = %v", err)
	}
	if gw.sends != 2 {
		t.Errorf("sends = %d, want 2 (lost binding must recreate)", gw.sends)
	}
}

func TestPublishCategoryIgnoresForeignMessages(t *testing.T) {
	gw := newFakeGateway()
	pub, _ := newTestPublisher(t, gw)

	// A message from someone else carrying a similar layout must not bind
	gw.messages["chan-armas"] = []*discordgo.Message{{
		ID:     "foreign",
		Author: &discordgo.User{ID: "someone-else"},
		Components: asAPIComponents([]discordgo.MessageComponent{
			RegisterButtonRow(stock.Weapons),
		}),
	}}

	if err := pub.PublishCategory(stock.Weapons); err != nil {
		t.Fatalf("PublishCategory() error = %v", err)
	}
	if gw.sends != 1 || len(gw.edits) != 0 {
		t.Errorf("sends = %d edits = %v, want a fresh message", gw.sends, gw.edits)
	}
}

func TestPublishCategoryPinFailureIsNonFatal(t *testing.T) {
	gw := newFakeGateway()
	gw.pinErr = errors.New("missing permission")
	pub, _ := newTestPublisher(t, gw)

	if err := pub.PublishCategory(stock.Funds); err != nil {
		t.Errorf("PublishCategory() error = %v, want nil despite pin failure", err)
	}
	if gw.sends != 1 {
		t.Errorf("sends = %d, want 1", gw.sends)
	}
}

func TestPublishCategoryHistoryError(t *testing.T) {
	gw := newFakeGateway()
	gw.historyErr = errors.New("rate limited")
	pub, _ := newTestPublisher(t, gw)

	if err := pub.PublishCategory(stock.Weapons); err == nil {
		t.Error("PublishCategory() = nil error, want history failure surfaced")
	}
	if gw.sends != 0 {
		t.Errorf("sends = %d, want 0 when the scan failed", gw.sends)
	}
}

func TestPublishGlobalCreatesThenEdits(t *testing.T) {
	gw := newFakeGateway()
	pub, _ := newTestPublisher(t, gw)

	if err := pub.PublishGlobal(); err != nil {
		t.Fatalf("first PublishGlobal() error = %v", err)
	}
	if err := pub.PublishGlobal(); err != nil {
		t.Fatalf("second PublishGlobal() error = %v", err)
	}
	if gw.sends != 1 {
		t.Errorf("sends = %d, want 1", gw.sends)
	}
	if len(gw.edits) != 1 {
		t.Errorf("edits = %v, want one", gw.edits)
	}
	if len(gw.pins) != 1 {
		t.Errorf("pins = %v, want one", gw.pins)
	}
}
