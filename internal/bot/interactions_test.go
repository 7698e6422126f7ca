package bot

import (
	"errors"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/susu3304/stockbot/internal/stock"
)

func TestModalValue(t *testing.T) {
	data := discordgo.ModalSubmitInteractionData{
		CustomID: modalCustomID(stock.Weapons),
		Components: []discordgo.MessageComponent{
			&discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					&discordgo.TextInput{CustomID: "tipoMovimiento", Value: "Entrada"},
				},
			},
			&discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					&discordgo.TextInput{CustomID: "recurso", Value: "AK47"},
				},
			},
			&discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					&discordgo.TextInput{CustomID: "cantidad", Value: "10"},
				},
			},
		},
	}

	tests := []struct {
		customID string
		want     string
	}{
		{customID: "tipoMovimiento", want: "Entrada"},
		{customID: "recurso", want: "AK47"},
		{customID: "cantidad", want: "10"},
		{customID: "ubicacion", want: ""},
	}
	for _, tt := range tests {
		if got := modalValue(data, tt.customID); got != tt.want {
			t.Errorf("modalValue(%q) = %q, want %q", tt.customID, got, tt.want)
		}
	}
}

func TestModalCustomIDRoundTrip(t *testing.T) {
	for _, c := range stock.Categories() {
		id := modalCustomID(c)
		if !strings.HasPrefix(id, modalCustomIDPrefix) {
			t.Errorf("modalCustomID(%s) = %q, missing prefix", c, id)
		}
		got, err := stock.ParseCategory(strings.TrimPrefix(id, modalCustomIDPrefix))
		if err != nil || got != c {
			t.Errorf("category from %q = %v, %v; want %s", id, got, err, c)
		}
	}
}

func TestValidationMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: stock.ErrInvalidDirection, want: `Tipo de movimiento debe ser "Entrada" o "Salida".`},
		{err: stock.ErrInvalidQuantity, want: "Cantidad debe ser un número entero positivo."},
		{err: stock.ErrEmptyResource, want: "El recurso no puede estar vacío."},
		{err: errors.New("otra cosa"), want: "Datos del movimiento no válidos."},
	}
	for _, tt := range tests {
		if got := validationMessage(tt.err); got != tt.want {
			t.Errorf("validationMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
