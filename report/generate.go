package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/atlatec/pozo-report-api/db"
)

// Daily builds the daily report for the given wells in order. A well with
// no data contributes no entry; a well whose query fails is logged and
// skipped so the rest of the batch still runs. Both outcomes are recorded
// in the returned statuses.
func Daily(ctx context.Context, repo Repository, wellIDs []int, date time.Time) ([]DailyEntry, []WellStatus) {
	entries := make([]DailyEntry, 0, len(wellIDs))
	statuses := make([]WellStatus, 0, len(wellIDs))

	for _, id := range wellIDs {
		buckets, err := repo.FetchDailyAverages(ctx, id, date)
		if err != nil {
			slog.Error("daily report well failed", "well_id", id, "date", date.Format("2006-01-02"), "error", err)
			statuses = append(statuses, WellStatus{IDPozo: id, Estado: StatusError, Error: err.Error()})
			continue
		}
		if len(buckets) == 0 {
			statuses = append(statuses, WellStatus{IDPozo: id, Estado: StatusNoData})
			continue
		}

		entries = append(entries, DailyEntry{
			NombrePozo: buckets[0].WellName,
			Reporte:    KindDaily,
			Registros:  dailyRecords(buckets),
		})
		statuses = append(statuses, WellStatus{IDPozo: id, Estado: StatusOK})
	}

	return entries, statuses
}

// Monthly builds the monthly report for the given wells in order, with the
// same skip semantics as Daily. month may be any instant inside the target
// month.
func Monthly(ctx context.Context, repo Repository, wellIDs []int, month time.Time) ([]MonthlyEntry, []WellStatus) {
	entries := make([]MonthlyEntry, 0, len(wellIDs))
	statuses := make([]WellStatus, 0, len(wellIDs))

	for _, id := range wellIDs {
		buckets, err := repo.FetchMonthlyAverages(ctx, id, month)
		if err != nil {
			slog.Error("monthly report well failed", "well_id", id, "month", month.Format("2006-01"), "error", err)
			statuses = append(statuses, WellStatus{IDPozo: id, Estado: StatusError, Error: err.Error()})
			continue
		}
		if len(buckets) == 0 {
			statuses = append(statuses, WellStatus{IDPozo: id, Estado: StatusNoData})
			continue
		}

		entries = append(entries, MonthlyEntry{
			NombrePozo: buckets[0].WellName,
			Reporte:    KindMonthly,
			Registros:  monthlyRecords(buckets, month),
		})
		statuses = append(statuses, WellStatus{IDPozo: id, Estado: StatusOK})
	}

	return entries, statuses
}

// dailyRecords joins the fetched buckets onto the full 0-23 hour skeleton
// so the report always carries 24 rows regardless of sample coverage.
func dailyRecords(buckets []db.HourAverages) []DailyRecord {
	var byHour [24]*db.HourAverages
	for i := range buckets {
		if h := buckets[i].Hour; h >= 0 && h < 24 {
			byHour[h] = &buckets[i]
		}
	}

	records := make([]DailyRecord, 0, 24)
	for h := 0; h < 24; h++ {
		rec := DailyRecord{
			Pozo:        noDataWellName,
			Hora:        h,
			HoraFormato: fmt.Sprintf("%02d:00", h),
		}
		if b := byHour[h]; b != nil {
			rec.Pozo = b.WellName
			rec.SensorFields = normalize(b.SensorReadings)
		}
		records = append(records, rec)
	}
	return records
}

// monthlyRecords joins the fetched buckets onto every calendar day of the
// month, formatting dates as DD/MM/YYYY with the Spanish weekday name.
func monthlyRecords(buckets []db.DayAverages, month time.Time) []MonthlyRecord {
	byDay := make(map[string]*db.DayAverages, len(buckets))
	for i := range buckets {
		byDay[buckets[i].Day.Format("2006-01-02")] = &buckets[i]
	}

	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)

	records := make([]MonthlyRecord, 0, 31)
	for d := first; d.Before(next); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		rec := MonthlyRecord{
			Pozo:         noDataWellName,
			Fecha:        key,
			FechaFormato: d.Format("02/01/2006"),
			DiaSemana:    spanishWeekdays[d.Weekday()],
		}
		if b := byDay[key]; b != nil {
			rec.Pozo = b.WellName
			rec.SensorFields = normalize(b.SensorReadings)
		}
		records = append(records, rec)
	}
	return records
}
