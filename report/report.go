// Package report turns raw per-bucket tag averages into the daily and
// monthly well reports served by the API.
package report

import (
	"context"
	"math"
	"time"

	"github.com/atlatec/pozo-report-api/db"
)

// Report kinds as rendered in the response.
const (
	KindDaily   = "Diario"
	KindMonthly = "Mensual"
)

// noDataWellName is the placeholder rendered on skeleton buckets without
// samples, matching the legacy report output.
const noDataWellName = "Sin Datos"

// Per-well outcome codes for the diagnostic mode.
const (
	StatusOK     = "ok"
	StatusNoData = "sin_datos"
	StatusError  = "error"
)

// Repository fetches raw bucket averages for one well. *db.Store implements
// it; the orchestrator stays storage-agnostic.
type Repository interface {
	FetchDailyAverages(ctx context.Context, wellID int, date time.Time) ([]db.HourAverages, error)
	FetchMonthlyAverages(ctx context.Context, wellID int, month time.Time) ([]db.DayAverages, error)
}

// SensorFields is the normalized sensor value set shared by daily and
// monthly records: nulls rendered as 0, rounded to one decimal.
type SensorFields struct {
	PresionTP       float64 `json:"Presion_TP"`
	PresionTR       float64 `json:"Presion_TR"`
	LDD             float64 `json:"LDD"`
	TemperaturaPozo float64 `json:"Temperatura_Pozo"`
	PresionSuccion  float64 `json:"Presion_Succion"`
	PresionDescarga float64 `json:"Presion_Descarga"`
	Velocidad       float64 `json:"Velocidad"`
	TempDescarga    float64 `json:"Temp_Descarga"`
	TempSuccion     float64 `json:"Temp_Succion"`
	Qiny            float64 `json:"Qiny"`
}

// DailyRecord is one hour bucket of a daily report.
type DailyRecord struct {
	Pozo        string `json:"Pozo"`
	Hora        int    `json:"Hora"`
	HoraFormato string `json:"Hora_Formato"`
	SensorFields
}

// MonthlyRecord is one day bucket of a monthly report.
type MonthlyRecord struct {
	Pozo         string `json:"Pozo"`
	Fecha        string `json:"Fecha"`
	FechaFormato string `json:"Fecha_Formato"`
	DiaSemana    string `json:"Dia_Semana"`
	SensorFields
}

// DailyEntry is the daily report of one well.
type DailyEntry struct {
	NombrePozo string        `json:"nombrePozo"`
	Reporte    string        `json:"reporte"`
	Registros  []DailyRecord `json:"registros"`
}

// MonthlyEntry is the monthly report of one well.
type MonthlyEntry struct {
	NombrePozo string          `json:"nombrePozo"`
	Reporte    string          `json:"reporte"`
	Registros  []MonthlyRecord `json:"registros"`
}

// WellStatus reports the per-well outcome of a report run. The default
// response omits wells without data and wells whose query failed alike;
// the diagnostic mode surfaces the distinction through these.
type WellStatus struct {
	IDPozo int    `json:"IdPozo"`
	Estado string `json:"Estado"`
	Error  string `json:"Error,omitempty"`
}

var spanishWeekdays = [7]string{
	"Domingo",
	"Lunes",
	"Martes",
	"Miércoles",
	"Jueves",
	"Viernes",
	"Sábado",
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func normalize(r db.SensorReadings) SensorFields {
	return SensorFields{
		PresionTP:       round1(r.PresionTP.ValueOrZero()),
		PresionTR:       round1(r.PresionTR.ValueOrZero()),
		LDD:             round1(r.LDD.ValueOrZero()),
		TemperaturaPozo: round1(r.TemperaturaPozo.ValueOrZero()),
		PresionSuccion:  round1(r.PresionSuccion.ValueOrZero()),
		PresionDescarga: round1(r.PresionDescarga.ValueOrZero()),
		Velocidad:       round1(r.Velocidad.ValueOrZero()),
		TempDescarga:    round1(r.TempDescarga.ValueOrZero()),
		TempSuccion:     round1(r.TempSuccion.ValueOrZero()),
		Qiny:            round1(r.Qiny.ValueOrZero()),
	}
}
