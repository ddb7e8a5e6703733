package http

import (
	"net/http"

	"github.com/workhive-app/workhive-backend-go/internal/domain/report"
	"github.com/workhive-app/workhive-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	Management(w http.ResponseWriter, r *http.Request)
	MySchedule(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// Management implements ReportHandler.
func (h *reportHandlerImpl) Management(w http.ResponseWriter, r *http.Request) {
	filter := parseShiftFilter(r)

	result, err := h.reportService.ManagementReport(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MySchedule implements ReportHandler.
func (h *reportHandlerImpl) MySchedule(w http.ResponseWriter, r *http.Request) {
	filter := parseShiftFilter(r)

	result, err := h.reportService.WorkerSchedule(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
