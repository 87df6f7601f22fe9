package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cargo-analytics/internal/application/analytics"
	"github.com/jhoicas/cargo-analytics/internal/application/dto"
	"github.com/jhoicas/cargo-analytics/internal/domain"
)

// StatisticsHandler expone el panel de estadísticas y sus exportaciones.
type StatisticsHandler struct {
	uc *analytics.StatisticsUseCase
}

// NewStatisticsHandler construye el handler.
func NewStatisticsHandler(uc *analytics.StatisticsUseCase) *StatisticsHandler {
	return &StatisticsHandler{uc: uc}
}

// Get godoc
// @Summary      Estadísticas de pedidos del período
// @Description  KPIs con comparación contra el período anterior, serie diaria (máx. 14 días),
//               distribuciones de estado/pago/tipo, tops de productos, categorías y clientes, y alertas.
// @Tags         statistics
// @Security     Bearer
// @Produce      json
// @Param        time_range  query  string  false  "today | 7days | 30days | custom (default 30days)"
// @Param        from        query  string  false  "Inicio custom (YYYY-MM-DD)"
// @Param        to          query  string  false  "Fin custom inclusive (YYYY-MM-DD)"
// @Param        order_type  query  string  false  "all | retail | wholesale"
// @Param        category    query  string  false  "all | id de categoría"
// @Success      200  {object}  dto.StatisticsDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/statistics [get]
func (h *StatisticsHandler) Get(c *fiber.Ctx) error {
	var req dto.StatisticsRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidQuery(c)
	}
	out, err := h.uc.GetStatistics(c.UserContext(), req)
	if err != nil {
		return statisticsError(c, err)
	}
	return c.JSON(out)
}

// Compute godoc
// @Summary      Calcular estadísticas sobre registros enviados
// @Description  Ejecuta el mismo motor sobre pedidos/productos/clientes/categorías del cuerpo, sin leer la DB.
// @Tags         statistics
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ComputeRequest  true  "registros + filtros"
// @Success      200   {object}  dto.StatisticsDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/statistics/compute [post]
func (h *StatisticsHandler) Compute(c *fiber.Ctx) error {
	var in dto.ComputeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ComputeFromRecords(in)
	if err != nil {
		return statisticsError(c, err)
	}
	return c.JSON(out)
}

// ExportCSV godoc
// @Summary      Exportar pedidos del período a CSV
// @Tags         statistics
// @Security     Bearer
// @Produce      text/csv
// @Param        time_range  query  string  false  "today | 7days | 30days | custom"
// @Param        from        query  string  false  "YYYY-MM-DD"
// @Param        to          query  string  false  "YYYY-MM-DD"
// @Param        order_type  query  string  false  "all | retail | wholesale"
// @Param        category    query  string  false  "all | id"
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/statistics/export.csv [get]
func (h *StatisticsHandler) ExportCSV(c *fiber.Ctx) error {
	var req dto.StatisticsRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidQuery(c)
	}
	file, err := h.uc.ExportCSV(c.UserContext(), req)
	if err != nil {
		return statisticsError(c, err)
	}
	return sendFile(c, file)
}

// ExportPDF godoc
// @Summary      Reporte PDF del período
// @Tags         statistics
// @Security     Bearer
// @Produce      application/pdf
// @Param        time_range  query  string  false  "today | 7days | 30days | custom"
// @Param        from        query  string  false  "YYYY-MM-DD"
// @Param        to          query  string  false  "YYYY-MM-DD"
// @Param        order_type  query  string  false  "all | retail | wholesale"
// @Param        category    query  string  false  "all | id"
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/statistics/report.pdf [get]
func (h *StatisticsHandler) ExportPDF(c *fiber.Ctx) error {
	var req dto.StatisticsRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidQuery(c)
	}
	file, err := h.uc.ExportPDF(c.UserContext(), req)
	if err != nil {
		return statisticsError(c, err)
	}
	return sendFile(c, file)
}

func invalidQuery(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos",
	})
}

func statisticsError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code: "INTERNAL", Message: "no se pudieron calcular las estadísticas",
	})
}

func sendFile(c *fiber.Ctx, file *dto.ExportFile) error {
	c.Attachment(file.Name)
	c.Set(fiber.HeaderContentType, file.ContentType)
	return c.Send(file.Content)
}
