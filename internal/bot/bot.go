package bot

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/susu3304/stockbot/internal/publisher"
	"github.com/susu3304/stockbot/internal/stock"
	"github.com/susu3304/stockbot/internal/store"
)

type Bot struct {
	session  *discordgo.Session
	svc      *stock.Service
	store    *store.Store
	channels publisher.Channels

	// pub is created on the ready event, once the bot user ID is known.
	pub *publisher.Publisher
}

func New(token string, svc *stock.Service, st *store.Store, channels publisher.Channels) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	bot := &Bot{
		session:  session,
		svc:      svc,
		store:    st,
		channels: channels,
	}

	// Register event handlers
	session.AddHandler(bot.onReady)
	session.AddHandler(bot.onGuildCreate)
	session.AddHandler(bot.onInteractionCreate)

	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	return bot, nil
}

func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}
	log.Println("Discord bot is running")
	return nil
}

func (b *Bot) Stop() error {
	return b.session.Close()
}

func (b *Bot) onReady(s *discordgo.Session, event *discordgo.Ready) {
	log.Printf("%s is connected!", event.User.Username)

	b.pub = publisher.New(s, b.store, b.channels, event.User.ID)

	// Refresh summaries so every channel shows current state on startup
	b.pub.PublishAll()

	// Register commands for all guilds
	for _, guild := range event.Guilds {
		if err := b.registerGuildCommands(guild.ID); err != nil {
			log.Printf("Failed to register commands for guild %s: %v", guild.ID, err)
		}
	}
}

func (b *Bot) onGuildCreate(s *discordgo.Session, event *discordgo.GuildCreate) {
	log.Printf("Guild available/joined: %s (id=%s) — ensuring commands", event.Name, event.ID)
	if err := b.registerGuildCommands(event.ID); err != nil {
		log.Printf("Failed to register commands for guild %s: %v", event.ID, err)
	}
}

func (b *Bot) registerGuildCommands(guildID string) error {
	categoryChoices := []*discordgo.ApplicationCommandOptionChoice{
		{Name: "Armas", Value: string(stock.Weapons)},
		{Name: "Drogas", Value: string(stock.Drugs)},
		{Name: "Fondos", Value: string(stock.Funds)},
		{Name: "General", Value: "general"},
	}
	var locationChoices []*discordgo.ApplicationCommandOptionChoice
	for _, loc := range stock.Locations() {
		locationChoices = append(locationChoices, &discordgo.ApplicationCommandOptionChoice{
			Name:  loc,
			Value: loc,
		})
	}

	commands := []*discordgo.ApplicationCommand{
		{
			Name:         "resumen-stock",
			Description:  "Mostrar resumen de stock con filtros",
			DMPermission: boolPtr(false),
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "tipo",
					Description: "Tipo de stock",
					Required:    false,
					Choices:     categoryChoices,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "ubicacion",
					Description: "Filtrar por ubicación",
					Required:    false,
					Choices:     locationChoices,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "recurso",
					Description: "Filtrar por recurso (nombre exacto)",
					Required:    false,
				},
			},
		},
	}

	_, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, guildID, commands)
	if err != nil {
		return err
	}

	log.Printf("Registered application commands for guild %s", guildID)
	return nil
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.handleSummaryQuery(s, i)
	case discordgo.InteractionMessageComponent:
		b.handleRegisterButton(s, i)
	case discordgo.InteractionModalSubmit:
		b.handleMovementSubmit(s, i)
	}
}

func boolPtr(b bool) *bool {
	return &b
}
