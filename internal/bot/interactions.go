package bot

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/susu3304/stockbot/internal/stock"
	"github.com/susu3304/stockbot/internal/summary"
)

const modalCustomIDPrefix = "modal_registrar_"

func modalCustomID(c stock.Category) string {
	return modalCustomIDPrefix + string(c)
}

// handleRegisterButton answers a "Registrar Movimiento" button press with
// the movement form for the button's category.
func (b *Bot) handleRegisterButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID
	if !strings.HasPrefix(customID, "registrar_") {
		return
	}
	category, err := stock.ParseCategory(strings.TrimPrefix(customID, "registrar_"))
	if err != nil {
		log.Printf("Register button with unknown category: %s", customID)
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   modalCustomID(category),
			Title:      fmt.Sprintf("Registrar Movimiento (%s)", category.DisplayName()),
			Components: movementFormComponents(category),
		},
	})
	if err != nil {
		log.Printf("Failed to create movement modal: %v", err)
	}
}

func movementFormComponents(c stock.Category) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    "tipoMovimiento",
					Label:       "Tipo de Movimiento (Entrada/Salida)",
					Style:       discordgo.TextInputShort,
					Placeholder: "Ejemplo: Entrada o Salida",
					Required:    true,
				},
			},
		},
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    "recurso",
					Label:       "Recurso",
					Style:       discordgo.TextInputShort,
					Placeholder: "Ej: " + strings.Join(c.ResourceCatalog(), ", "),
					Required:    true,
				},
			},
		},
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    "cantidad",
					Label:       "Cantidad",
					Style:       discordgo.TextInputShort,
					Placeholder: "Número entero",
					Required:    true,
				},
			},
		},
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    "ubicacion",
					Label:       "Ubicación",
					Style:       discordgo.TextInputShort,
					Placeholder: "Ej: " + strings.Join(stock.Locations(), ", "),
					Required:    false,
				},
			},
		},
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    "detalle",
					Label:       "Detalle (opcional)",
					Style:       discordgo.TextInputParagraph,
					Placeholder: "Detalles adicionales",
					Required:    false,
				},
			},
		},
	}
}

// handleMovementSubmit validates the submitted movement form, applies and
// persists the movement, then republishes the affected summaries. All
// replies are ephemeral: only the summary messages are public.
func (b *Bot) handleMovementSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ModalSubmitData()
	if !strings.HasPrefix(data.CustomID, modalCustomIDPrefix) {
		return
	}
	category, err := stock.ParseCategory(strings.TrimPrefix(data.CustomID, modalCustomIDPrefix))
	if err != nil {
		log.Printf("Movement modal with unknown category: %s", data.CustomID)
		return
	}

	movement, err := stock.NewMovement(
		category,
		modalValue(data, "tipoMovimiento"),
		modalValue(data, "recurso"),
		modalValue(data, "cantidad"),
		modalValue(data, "ubicacion"),
		modalValue(data, "detalle"),
	)
	if err != nil {
		b.replyEphemeral(s, i, validationMessage(err))
		return
	}

	if _, err := b.svc.Register(movement); err != nil {
		log.Printf("Failed to register movement for %s: %v", category, err)
		b.replyEphemeral(s, i, "Ocurrió un error al registrar el movimiento.")
		return
	}

	// The movement is persisted; a failed republish must not undo that.
	if err := b.pub.PublishCategory(category); err != nil {
		log.Printf("Failed to republish %s summary: %v", category, err)
	}
	if err := b.pub.PublishGlobal(); err != nil {
		log.Printf("Failed to republish global summary: %v", err)
	}

	confirmation := fmt.Sprintf("%s Movimiento registrado: **%s** %d de **%s** en **%s**.",
		category.Icon(),
		strings.ToUpper(string(movement.Direction)),
		movement.Quantity,
		movement.Resource,
		movement.Location,
	)
	if movement.Note != "" {
		confirmation += " Detalle: " + movement.Note
	}
	b.replyEphemeral(s, i, confirmation)
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, stock.ErrInvalidDirection):
		return `Tipo de movimiento debe ser "Entrada" o "Salida".`
	case errors.Is(err, stock.ErrInvalidQuantity):
		return "Cantidad debe ser un número entero positivo."
	case errors.Is(err, stock.ErrEmptyResource):
		return "El recurso no puede estar vacío."
	}
	return "Datos del movimiento no válidos."
}

// handleSummaryQuery serves /resumen-stock. The reply is deferred because
// rendering needs ledger reads that may be slow for the interaction ack
// window.
func (b *Bot) handleSummaryQuery(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	if data.Name != "resumen-stock" {
		return
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		log.Printf("Failed to defer summary reply: %v", err)
		return
	}

	target := "general"
	var filter stock.Filter
	for _, opt := range data.Options {
		switch opt.Name {
		case "tipo":
			target = opt.StringValue()
		case "ubicacion":
			filter.Location = opt.StringValue()
		case "recurso":
			filter.Resource = opt.StringValue()
		}
	}

	embed, err := b.renderQuery(target, filter)
	if err != nil {
		log.Printf("Failed to render summary query: %v", err)
		content := "Ocurrió un error al generar el resumen."
		if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
			Content: &content,
		}); err != nil {
			log.Printf("Failed to edit summary reply: %v", err)
		}
		return
	}

	embeds := []*discordgo.MessageEmbed{embed}
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &embeds,
	}); err != nil {
		log.Printf("Failed to edit summary reply: %v", err)
	}
}

// renderQuery resolves the query target. Filters narrow category summaries
// only; the global summary ignores them.
func (b *Bot) renderQuery(target string, filter stock.Filter) (*discordgo.MessageEmbed, error) {
	if target == "general" {
		ledgers, err := b.store.LoadAll()
		if err != nil {
			return nil, err
		}
		return summary.RenderGlobal(ledgers, time.Now()), nil
	}

	category, err := stock.ParseCategory(target)
	if err != nil {
		return summary.RenderError("Tipo no válido"), nil
	}
	ledger, err := b.store.Load(category)
	if err != nil {
		return nil, err
	}
	return summary.RenderCategory(category, ledger, filter, time.Now()), nil
}

func (b *Bot) replyEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Failed to respond to interaction: %v", err)
	}
}

// modalValue extracts one text input value from a submitted modal.
func modalValue(data discordgo.ModalSubmitInteractionData, customID string) string {
	for _, component := range data.Components {
		actionRow, ok := component.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, c := range actionRow.Components {
			if input, ok := c.(*discordgo.TextInput); ok && input.CustomID == customID {
				return input.Value
			}
		}
	}
	return ""
}
