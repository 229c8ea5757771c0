package notify

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/shiftclock/internal/domain"
)

const (
	colorEntrada = 5763719
	colorPausa   = 16776960
	colorSalida  = 15548997
	colorVenta   = 6470386

	timeLogBot = "Control Horario"
	salesBot   = "Caja Registradora"

	timeLogAvatar = "https://cdn-icons-png.flaticon.com/512/3135/3135715.png"
	salesAvatar   = "https://cdn-icons-png.flaticon.com/512/1055/1055666.png"
)

// Payload is the body of a Discord webhook execute call.
type Payload struct {
	Username  string  `json:"username"`
	AvatarURL string  `json:"avatar_url,omitempty"`
	Embeds    []Embed `json:"embeds"`
}

type Embed struct {
	Title       string  `json:"title"`
	Color       int     `json:"color"`
	Description string  `json:"description,omitempty"`
	Fields      []Field `json:"fields"`
	Footer      Footer  `json:"footer"`
	Timestamp   string  `json:"timestamp"`
}

type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type Footer struct {
	Text string `json:"text"`
}

// Encode renders the payload as the JSON stored in the outbox.
func (p Payload) Encode() ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encoding webhook payload: %w", err)
	}
	return data, nil
}

// TimeLogEmbed announces a clock event. Hora and Fecha are rendered in loc;
// nil means UTC.
func TimeLogEmbed(l domain.TimeLog, loc *time.Location) Payload {
	if loc == nil {
		loc = time.UTC
	}
	at := l.Timestamp.In(loc)

	var title string
	color := colorEntrada
	switch l.Type {
	case domain.EventPausa:
		title = "⏸️ Pausa Registrada"
		color = colorPausa
	case domain.EventSalida:
		title = "⛔ Salida Registrada"
		color = colorSalida
	default:
		title = "✅ Entrada Registrada"
	}

	return Payload{
		Username:  timeLogBot,
		AvatarURL: timeLogAvatar,
		Embeds: []Embed{{
			Title: title,
			Color: color,
			Fields: []Field{
				{Name: "👤 Empleado", Value: l.Username, Inline: true},
				{Name: "🕒 Hora", Value: at.Format("15:04:05"), Inline: true},
				{Name: "📅 Fecha", Value: at.Format("02-01-2006"), Inline: true},
				{Name: "🏪 Local", Value: l.Locale.ShopName()},
			},
			Footer:    Footer{Text: "Sistema de Control de Horario"},
			Timestamp: l.Timestamp.UTC().Format(time.RFC3339),
		}},
	}
}

// SaleEmbed announces a checked-out cart.
func SaleEmbed(s domain.Sale) Payload {
	shop := s.Locale.ShopName()
	return Payload{
		Username:  salesBot,
		AvatarURL: salesAvatar,
		Embeds: []Embed{{
			Title:       "🧮 Venta Registrada",
			Color:       colorVenta,
			Description: fmt.Sprintf("Venta realizada en **%s**", shop),
			Fields: []Field{
				{Name: "👤 Usuario", Value: s.Username, Inline: true},
				{Name: "💰 Total", Value: "$" + domain.FormatPesos(s.Total), Inline: true},
				{Name: "🏪 Local", Value: shop, Inline: true},
				{Name: "🛒 Productos", Value: itemLines(s.Items)},
			},
			Footer:    Footer{Text: "Sistema de Ventas"},
			Timestamp: s.Timestamp.UTC().Format(time.RFC3339),
		}},
	}
}

func itemLines(items []domain.CartItem) string {
	if len(items) == 0 {
		return "Sin productos"
	}
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = fmt.Sprintf("%s %s (x%d)", it.Product.Icon, it.Product.Name, it.Quantity)
	}
	return strings.Join(lines, "\n")
}
