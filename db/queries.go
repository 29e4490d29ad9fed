package db

import (
	"fmt"
	"strings"
)

// SQL for the per-site SQL Server stores. Sensor tag names are bound as
// parameters (@p3 onwards) so per-site tag naming stays out of the query
// text; well IDs and date bounds are always parameterized. Each store's DSN
// already selects its database, so tables are named unqualified.

// queryDailyAverages returns per-hour averages of the ten mapped sensor tags
// for one well over [@p2, @p2 + 1 day). Only hours with at least one sample
// come back; the report layer fills the 0-23 skeleton.
// Parameters: @p1 = well ID, @p2 = date, @p3..@p12 = tag names.
const queryDailyAverages = `
SELECT IP.NombrePozo AS Pozo,
       DATEPART(HOUR, VH.Fecha) AS Hora,
       AVG(CASE WHEN PT.Nombre = @p3 THEN VH.Valor END) AS PresionTP,
       AVG(CASE WHEN PT.Nombre = @p4 THEN VH.Valor END) AS PresionTR,
       AVG(CASE WHEN PT.Nombre = @p5 THEN VH.Valor END) AS LDD,
       AVG(CASE WHEN PT.Nombre = @p6 THEN VH.Valor END) AS TempPozo,
       AVG(CASE WHEN PT.Nombre = @p7 THEN VH.Valor END) AS PresionSuccion,
       AVG(CASE WHEN PT.Nombre = @p8 THEN VH.Valor END) AS PresionDescarga,
       AVG(CASE WHEN PT.Nombre = @p9 THEN VH.Valor END) AS Velocidad,
       AVG(CASE WHEN PT.Nombre = @p10 THEN VH.Valor END) AS TempDescarga,
       AVG(CASE WHEN PT.Nombre = @p11 THEN VH.Valor END) AS TempSuccion,
       AVG(CASE WHEN PT.Nombre = @p12 THEN VH.Valor END) AS Qiny
FROM [t_Historicos.ValoresTags] VH
INNER JOIN [t_Instalacion.Pozos] IP ON IP.IdPozo = VH.IdPozo
INNER JOIN [t_Proceso.Tags] PT ON PT.IdTag = VH.IdTag
WHERE VH.IdPozo = @p1
  AND VH.Fecha >= @p2
  AND VH.Fecha < DATEADD(DAY, 1, @p2)
GROUP BY DATEPART(HOUR, VH.Fecha), IP.NombrePozo
ORDER BY Hora`

// queryMonthlyAverages returns per-day averages of the same tag family for
// one well over [@p2, @p3). Month bounds are computed host-side.
// Parameters: @p1 = well ID, @p2 = first day, @p3 = first day of next month,
// @p4..@p13 = tag names.
const queryMonthlyAverages = `
SELECT IP.NombrePozo AS Pozo,
       CONVERT(DATE, VH.Fecha) AS Fecha,
       AVG(CASE WHEN PT.Nombre = @p4 THEN VH.Valor END) AS PresionTP,
       AVG(CASE WHEN PT.Nombre = @p5 THEN VH.Valor END) AS PresionTR,
       AVG(CASE WHEN PT.Nombre = @p6 THEN VH.Valor END) AS LDD,
       AVG(CASE WHEN PT.Nombre = @p7 THEN VH.Valor END) AS TempPozo,
       AVG(CASE WHEN PT.Nombre = @p8 THEN VH.Valor END) AS PresionSuccion,
       AVG(CASE WHEN PT.Nombre = @p9 THEN VH.Valor END) AS PresionDescarga,
       AVG(CASE WHEN PT.Nombre = @p10 THEN VH.Valor END) AS Velocidad,
       AVG(CASE WHEN PT.Nombre = @p11 THEN VH.Valor END) AS TempDescarga,
       AVG(CASE WHEN PT.Nombre = @p12 THEN VH.Valor END) AS TempSuccion,
       AVG(CASE WHEN PT.Nombre = @p13 THEN VH.Valor END) AS Qiny
FROM [t_Historicos.ValoresTags] VH
INNER JOIN [t_Instalacion.Pozos] IP ON IP.IdPozo = VH.IdPozo
INNER JOIN [t_Proceso.Tags] PT ON PT.IdTag = VH.IdTag
WHERE VH.IdPozo = @p1
  AND VH.Fecha >= @p2
  AND VH.Fecha < @p3
GROUP BY CONVERT(DATE, VH.Fecha), IP.NombrePozo
ORDER BY Fecha`

// queryWellIDsWithHistory returns the distinct well IDs present in the
// historical values table.
const queryWellIDsWithHistory = `
SELECT IdPozo
FROM [t_Historicos.ValoresTags]
GROUP BY IdPozo
ORDER BY IdPozo`

// queryAllWells is the unfiltered well scan used by the legacy
// single-source listing.
const queryAllWells = `
SELECT IdPozo, NombrePozo
FROM [t_Instalacion.Pozos]
ORDER BY NombrePozo DESC`

// queryWellTags returns the tag assignments for one well.
// Parameter: @p1 = well ID.
const queryWellTags = `
SELECT TagId, TagName
FROM TagsPozos
WHERE IdPozo = @p1
ORDER BY TagId`

// buildWellsByIDQuery produces the id/name lookup for a non-empty ID set.
// The IDs come from queryWellIDsWithHistory, never from request input, but
// they are bound as parameters all the same.
func buildWellsByIDQuery(n int) string {
	placeholders := make([]string, n)
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("@p%d", i+1)
	}
	return fmt.Sprintf(`
SELECT IdPozo, NombrePozo
FROM [t_Instalacion.Pozos]
WHERE IdPozo IN (%s)
ORDER BY NombrePozo`, strings.Join(placeholders, ", "))
}
