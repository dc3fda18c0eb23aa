package http

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"
)

// GET /reports/attendance.xlsx?from=YYYY-MM-DD&to=YYYY-MM-DD
// Выгружает журнал посещений за период в Excel.
func (h *Handler) attendanceReport(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	from := now.AddDate(0, -1, 0)
	to := now

	if v := r.URL.Query().Get("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeFail(w, http.StatusBadRequest, "invalid from date")
			return
		}
		from = t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeFail(w, http.StatusBadRequest, "invalid to date")
			return
		}
		to = t
	}

	rows, err := h.visits.ListRange(r.Context(), from, to)
	if err != nil {
		h.log.Error("attendance report query failed", "err", err)
		writeFail(w, http.StatusInternalServerError, "internal error")
		return
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"member_id",
		"full_name",
		"status",
		"date",
		"total_attendance",
		"days_left",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		writeFail(w, http.StatusInternalServerError, "failed to build report")
		return
	}

	rowN := 2
	for _, it := range rows {
		daysLeft := ""
		if it.DaysLeft != nil {
			daysLeft = fmt.Sprintf("%d", *it.DaysLeft)
		}
		excelRow := []interface{}{
			it.MemberID,
			it.FullName,
			it.Status,
			it.Date.Format("2006-01-02"),
			it.TotalVisit,
			daysLeft,
		}
		cell, err := excelize.CoordinatesToCellName(1, rowN)
		if err != nil {
			writeFail(w, http.StatusInternalServerError, "failed to build report")
			return
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			writeFail(w, http.StatusInternalServerError, "failed to build report")
			return
		}
		rowN++
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		writeFail(w, http.StatusInternalServerError, "failed to write report")
		return
	}

	name := fmt.Sprintf("attendance_%s_%s.xlsx", from.Format("2006-01-02"), to.Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, name))
	_, _ = w.Write(buf.Bytes())
}
