package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/shiftclock/internal/domain"
)

func FormatShifts(shifts []*domain.ShiftLog, loc *time.Location) string {
	headers := []string{"ID", "EMPLEADO", "LOCAL", "INICIO", "FIN", "PAUSA", "TRABAJADO"}
	rows := make([][]string, 0, len(shifts))
	var worked time.Duration
	for _, s := range shifts {
		worked += s.TotalWorkTime
		rows = append(rows, []string{
			TruncID(s.ID),
			s.Username,
			string(s.Locale),
			Timestamp(s.StartTime, loc),
			Timestamp(s.EndTime, loc),
			StyleYellow.Render(Clock(s.TotalPauseTime)),
			StyleGreen.Render(Clock(s.TotalWorkTime)),
		})
	}
	footer := Dim(fmt.Sprintf("%s, %s trabajadas", Count(len(shifts), "turno", "turnos"), Clock(worked)))
	return RenderBox("Turnos", RenderTable(headers, rows)+"\n"+footer)
}

func FormatTimeLogs(logs []*domain.TimeLog, loc *time.Location) string {
	headers := []string{"HORA", "EMPLEADO", "LOCAL", "EVENTO"}
	rows := make([][]string, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, []string{Timestamp(l.Timestamp, loc), l.Username, string(l.Locale), EventBadge(l.Type)})
	}
	return RenderBox("Registro", RenderTable(headers, rows))
}

func FormatProducts(locale domain.Locale, products []*domain.Product) string {
	headers := []string{"ID", "PRODUCTO", "CATEGORÍA", "PRECIO"}
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{Dim(p.ID), p.Icon + " " + p.Name, p.Category, Pesos(p.Price)})
	}
	return RenderBox(locale.ShopName(), RenderTable(headers, rows))
}

// FormatSale renders a receipt.
func FormatSale(s *domain.Sale, loc *time.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n%s\n\n", Bold(s.Username), s.Locale.ShopName(), Dim(Timestamp(s.Timestamp, loc)))
	headers := []string{"PRODUCTO", "CANT", "SUBTOTAL"}
	rows := make([][]string, 0, len(s.Items))
	for _, it := range s.Items {
		rows = append(rows, []string{
			it.Product.Icon + " " + it.Product.Name,
			fmt.Sprintf("x%d", it.Quantity),
			Pesos(it.Subtotal()),
		})
	}
	b.WriteString(RenderTable(headers, rows))
	fmt.Fprintf(&b, "\n%s %s", Dim("Total"), StylePink.Bold(true).Render(Pesos(s.Total)))
	return RenderBox("🧮 Venta", b.String())
}

func FormatSales(sales []*domain.Sale, loc *time.Location) string {
	headers := []string{"ID", "HORA", "USUARIO", "LOCAL", "ÍTEMS", "TOTAL"}
	rows := make([][]string, 0, len(sales))
	var total int64
	for _, s := range sales {
		total += s.Total
		units := 0
		for _, it := range s.Items {
			units += it.Quantity
		}
		rows = append(rows, []string{
			TruncID(s.ID), Timestamp(s.Timestamp, loc), s.Username, string(s.Locale),
			fmt.Sprintf("%d", units), Pesos(s.Total),
		})
	}
	footer := Dim(Count(len(sales), "venta", "ventas") + ", total " + Pesos(total))
	return RenderBox("Ventas", RenderTable(headers, rows)+"\n"+footer)
}

func FormatUsers(users []*domain.User) string {
	headers := []string{"ID", "USUARIO", "ROL", "LOCALES"}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		locales := make([]string, 0, len(u.AllowedLocales))
		for _, l := range u.AllowedLocales {
			locales = append(locales, string(l))
		}
		role := string(u.Role)
		if u.Role == domain.RoleAdmin {
			role = StylePink.Render(role)
		}
		rows = append(rows, []string{Dim(u.ID), u.Username, role, strings.Join(locales, ", ")})
	}
	return RenderBox("Usuarios", RenderTable(headers, rows))
}

func FormatNotifications(ns []*domain.Notification, loc *time.Location) string {
	headers := []string{"ID", "CREADA", "TIPO", "LOCAL", "ESTADO", "INTENTOS", "ERROR"}
	rows := make([][]string, 0, len(ns))
	for _, n := range ns {
		lastErr := n.LastError
		if len(lastErr) > 40 {
			lastErr = lastErr[:37] + "..."
		}
		rows = append(rows, []string{
			TruncID(n.ID), Timestamp(n.CreatedAt, loc), string(n.Kind), string(n.Locale),
			NotificationPill(n.Status), fmt.Sprintf("%d", n.Attempts), Dim(lastErr),
		})
	}
	return RenderBox("Notificaciones", RenderTable(headers, rows))
}
