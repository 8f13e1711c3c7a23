package http

import (
	"fmt"
	"net/http"

	"github.com/classtrack/center-backend-go/internal/domain/finance"
	"github.com/classtrack/center-backend-go/internal/handler/http/response"
)

type FinanceHandler interface {
	GetSummary(w http.ResponseWriter, r *http.Request)
	ExportSummary(w http.ResponseWriter, r *http.Request)
}

type financeHandlerImpl struct {
	financeService finance.FinanceService
}

func NewFinanceHandler(financeService finance.FinanceService) FinanceHandler {
	return &financeHandlerImpl{financeService: financeService}
}

func (h *financeHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	month, year, ok := parsePeriod(r)
	if !ok {
		response.BadRequest(w, "month and year query parameters are required", nil)
		return
	}

	result, err := h.financeService.GetMonthlySummary(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *financeHandlerImpl) ExportSummary(w http.ResponseWriter, r *http.Request) {
	fromMonth := queryInt(r, "from_month")
	fromYear := queryInt(r, "from_year")
	toMonth := queryInt(r, "to_month")
	toYear := queryInt(r, "to_year")
	if fromMonth == nil || fromYear == nil || toMonth == nil || toYear == nil {
		response.BadRequest(w, "from_month, from_year, to_month and to_year query parameters are required", nil)
		return
	}

	data, err := h.financeService.ExportMonthlySummary(r.Context(), *fromMonth, *fromYear, *toMonth, *toYear)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("finance-summary-%02d%d-%02d%d.xlsx", *fromMonth, *fromYear, *toMonth, *toYear)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
