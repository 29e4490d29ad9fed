package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/atlatec/pozo-report-api/db"
	"github.com/atlatec/pozo-report-api/report"
)

// requireConnection resolves the mandatory Conexion parameter. An absent or
// unlisted name answers 400 with the full allow-list.
func (s *Server) requireConnection(c *gin.Context) (*db.Store, bool) {
	store, ok := s.registry.Resolve(c.Query("Conexion"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":                  "Conexión no válida",
			"conexiones_disponibles": s.registry.Available(),
		})
		return nil, false
	}
	return store, true
}

// optionalConnection resolves Conexion when present and otherwise falls back
// to the default store, for the legacy single-source endpoints.
func (s *Server) optionalConnection(c *gin.Context) (*db.Store, bool) {
	name := c.Query("Conexion")
	if name == "" {
		return s.registry.Default(), true
	}
	return s.requireConnection(c)
}

// parseWellIDs reads the requested well IDs from Pozos[] (or Pozos).
func parseWellIDs(c *gin.Context) ([]int, bool) {
	raw := c.QueryArray("Pozos[]")
	if len(raw) == 0 {
		raw = c.QueryArray("Pozos")
	}

	ids := make([]int, 0, len(raw))
	for _, v := range raw {
		id, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Pozos debe contener identificadores enteros"})
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

func wantsDetail(c *gin.Context) bool {
	detail, _ := strconv.ParseBool(c.Query("Detalle"))
	return detail
}

func serverError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"data":    []any{},
		"error":   err.Error(),
	})
}

// handleListConnections returns the public connection allow-list.
// GET /api/conexiones
func (s *Server) handleListConnections(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"conexiones_disponibles": s.registry.Available()})
}

// handleProbeConnection pings the selected data source.
// GET /api/conexiones/probar?Conexion=<name>
func (s *Server) handleProbeConnection(c *gin.Context) {
	store, ok := s.requireConnection(c)
	if !ok {
		return
	}

	if err := store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"conexion": store.Name(),
			"estado":   "error",
			"error":    err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"conexion": store.Name(), "estado": "ok"})
}

// handleWellsWithHistory lists the wells that have historical records.
// GET /api/pozos?Conexion=<name>
func (s *Server) handleWellsWithHistory(c *gin.Context) {
	store, ok := s.requireConnection(c)
	if !ok {
		return
	}

	wells, err := store.ListWellsWithHistory(c.Request.Context())
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, wells)
}

// handleAllWells lists every well, optionally dropping placeholder rows.
// GET /api/pozos/todos[?Conexion=<name>][&Depurar=true]
func (s *Server) handleAllWells(c *gin.Context) {
	store, ok := s.optionalConnection(c)
	if !ok {
		return
	}

	filtered, _ := strconv.ParseBool(c.Query("Depurar"))
	wells, err := store.ListAllWells(c.Request.Context(), filtered)
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, wells)
}

// handleDailyReport builds the per-hour report for the requested wells.
// GET /api/pozos/reporte?Conexion=<name>&Pozos[]=<id>&Fecha=YYYY-MM-DD
func (s *Server) handleDailyReport(c *gin.Context) {
	store, ok := s.requireConnection(c)
	if !ok {
		return
	}
	wellIDs, ok := parseWellIDs(c)
	if !ok {
		return
	}

	fecha := c.Query("Fecha")
	if len(wellIDs) == 0 || fecha == "" {
		// Legacy no-op success: missing inputs are not an error.
		c.JSON(http.StatusOK, []report.DailyEntry{})
		return
	}

	date, err := time.Parse("2006-01-02", fecha)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fecha no válida, se espera YYYY-MM-DD"})
		return
	}

	entries, statuses := report.Daily(c.Request.Context(), store, wellIDs, date)
	if wantsDetail(c) {
		c.JSON(http.StatusOK, gin.H{"data": entries, "pozos": statuses})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// handleMonthlyReport builds the per-day report for the requested wells.
// GET /api/pozos/reporte/mensual?Conexion=<name>&Pozos[]=<id>&Fecha=YYYY-MM
func (s *Server) handleMonthlyReport(c *gin.Context) {
	store, ok := s.requireConnection(c)
	if !ok {
		return
	}
	wellIDs, ok := parseWellIDs(c)
	if !ok {
		return
	}

	fecha := c.Query("Fecha")
	if len(wellIDs) == 0 || fecha == "" {
		c.JSON(http.StatusOK, []report.MonthlyEntry{})
		return
	}

	month, err := time.Parse("2006-01", fecha)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fecha no válida, se espera YYYY-MM"})
		return
	}

	entries, statuses := report.Monthly(c.Request.Context(), store, wellIDs, month)
	if wantsDetail(c) {
		c.JSON(http.StatusOK, gin.H{"data": entries, "pozos": statuses})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// handleWellTags lists the tag assignments of one well.
// GET /api/pozos/tags?idPozo=<id>[&Conexion=<name>]
func (s *Server) handleWellTags(c *gin.Context) {
	store, ok := s.optionalConnection(c)
	if !ok {
		return
	}

	wellID, err := strconv.Atoi(c.Query("idPozo"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "idPozo es requerido"})
		return
	}

	tags, err := store.ListWellTags(c.Request.Context(), wellID)
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}
