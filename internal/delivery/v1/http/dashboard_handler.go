package http

import (
	"net/http"

	"github.com/DRSN-tech/hardware-catalog/internal/usecase"
	"github.com/DRSN-tech/hardware-catalog/pkg/logger"
)

type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUC
	logger           logger.Logger
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUC, logger logger.Logger) *DashboardHandler {
	return &DashboardHandler{dashboardUsecase: dashboardUsecase, logger: logger}
}

// getDashboard
//
//	@Summary		Данные админ-панели
//	@Description	Категории с количеством продуктов, все продукты и сводная статистика
//	@Tags			dashboard
//	@Produce		json
//	@Success		200	{object}	DashboardResponse
//	@Failure		503	{object}	ErrorResponse	"Хранилище недоступно"
//	@Router			/dashboard [get]
func (d *DashboardHandler) getDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := d.dashboardUsecase.Load(r.Context())
	if err != nil {
		writeLoggedError(w, r, d.logger, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toDashboardResponse(dashboard))
}
