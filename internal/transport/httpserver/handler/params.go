package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	ledgerdomain "mess-manager-go/internal/domain/ledger"
)

func parseDateRequired(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	return time.Parse("2006-01-02", value)
}

// parsePeriod reads month and year query params; both empty means the
// current month.
func parsePeriod(r *http.Request) (ledgerdomain.Period, error) {
	monthValue := strings.TrimSpace(r.URL.Query().Get("month"))
	yearValue := strings.TrimSpace(r.URL.Query().Get("year"))

	if monthValue == "" && yearValue == "" {
		return ledgerdomain.PeriodOf(time.Now()), nil
	}

	month, err := strconv.Atoi(monthValue)
	if err != nil {
		return ledgerdomain.Period{}, fmt.Errorf("invalid month")
	}
	year, err := strconv.Atoi(yearValue)
	if err != nil {
		return ledgerdomain.Period{}, fmt.Errorf("invalid year")
	}

	period := ledgerdomain.Period{Month: month, Year: year}
	if !period.Valid() {
		return ledgerdomain.Period{}, fmt.Errorf("invalid period")
	}
	return period, nil
}

func parseIntParam(value string, fallback int) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0, fmt.Errorf("invalid int")
	}
	return parsed, nil
}

func parseBoolParam(value string) bool {
	value = strings.TrimSpace(value)
	return value == "1" || strings.EqualFold(value, "true")
}
