package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/alexanderramin/shiftclock/internal/repository"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Turnos"

type shiftService struct {
	shifts   repository.ShiftRepo
	location *time.Location
	observer UseCaseObserver
}

// NewShiftService builds the shift history service. Exported timestamps are
// rendered in loc; nil means UTC.
func NewShiftService(shifts repository.ShiftRepo, loc *time.Location, observers ...UseCaseObserver) ShiftService {
	if loc == nil {
		loc = time.UTC
	}
	return &shiftService{shifts: shifts, location: loc, observer: useCaseObserverOrNoop(observers)}
}

func (s *shiftService) List(ctx context.Context, f domain.ShiftFilter) ([]*domain.ShiftLog, error) {
	return s.shifts.List(ctx, f)
}

func (s *shiftService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "delete-shift", startedAt, map[string]any{"shift_id": id}, nil, err)
	}()
	return s.shifts.Delete(ctx, id)
}

func (s *shiftService) ClearUser(ctx context.Context, userID string, locale domain.Locale) (n int64, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"user_id": userID, "locale": string(locale)}
	defer func() {
		fields["deleted"] = n
		observe(ctx, s.observer, "clear-user-history", startedAt, fields, nil, err)
	}()
	if _, err = domain.ParseLocale(string(locale)); err != nil {
		return 0, err
	}
	return s.shifts.DeleteByUser(ctx, userID, locale)
}

func (s *shiftService) ClearAll(ctx context.Context) (n int64, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		fields["deleted"] = n
		observe(ctx, s.observer, "clear-history", startedAt, fields, nil, err)
	}()
	return s.shifts.DeleteAll(ctx)
}

func (s *shiftService) Export(ctx context.Context, f domain.ShiftFilter, w io.Writer) (int, error) {
	shifts, err := s.shifts.List(ctx, f)
	if err != nil {
		return 0, err
	}

	book := excelize.NewFile()
	defer book.Close()
	if err := book.SetSheetName("Sheet1", exportSheet); err != nil {
		return 0, fmt.Errorf("naming sheet: %w", err)
	}

	headers := []string{"Empleado", "Local", "Inicio", "Fin", "Pausa", "Trabajado", "Horas"}
	if err := book.SetSheetRow(exportSheet, "A1", &headers); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	for i, sh := range shifts {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return 0, err
		}
		row := []any{
			sh.Username,
			sh.Locale.ShopName(),
			sh.StartTime.In(s.location).Format("02-01-2006 15:04:05"),
			sh.EndTime.In(s.location).Format("02-01-2006 15:04:05"),
			domain.FormatClock(sh.TotalPauseTime),
			domain.FormatClock(sh.TotalWorkTime),
			roundHours(sh.TotalWorkTime),
		}
		if err := book.SetSheetRow(exportSheet, cell, &row); err != nil {
			return 0, fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := book.SetColWidth(exportSheet, "A", "D", 20); err != nil {
		return 0, fmt.Errorf("sizing columns: %w", err)
	}
	if _, err := book.WriteTo(w); err != nil {
		return 0, fmt.Errorf("writing workbook: %w", err)
	}
	return len(shifts), nil
}

// roundHours converts a duration to hours with two decimals.
func roundHours(d time.Duration) float64 {
	return float64(d.Round(36*time.Second)) / float64(time.Hour)
}
