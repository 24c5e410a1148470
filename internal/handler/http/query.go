package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/timecard-backend-go/internal/pkg/validator"
)

// monthQuery reads ?year=&month= (month 1-12). A missing value falls back to
// the current month; a malformed one is a validation error.
func monthQuery(r *http.Request, now time.Time) (year int, month int, err error) {
	year, month = now.Year(), int(now.Month())
	var errs validator.ValidationErrors

	if v := r.URL.Query().Get("year"); v != "" {
		if year, err = strconv.Atoi(v); err != nil {
			errs = append(errs, validator.ValidationError{Field: "year", Message: "year must be a number"})
		}
	}
	if v := r.URL.Query().Get("month"); v != "" {
		if month, err = strconv.Atoi(v); err != nil {
			errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be a number"})
		}
	}

	if len(errs) > 0 {
		return 0, 0, errs
	}
	return year, month, nil
}
