package registry

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tartampluch/go-scoutalert/internal/config"
)

// ErrInvalidRecord is matched (errors.Is) by every validation failure.
var ErrInvalidRecord = errors.New(config.ErrInvalidRecord)

// ValidationError describes one rejected field of a record.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// ValidationErrors is returned by Validate and NewRecord.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	messages := make([]string, 0, len(v))
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf(config.ValMsgFormat, len(v), strings.Join(messages, "; "))
}

func (v ValidationErrors) Unwrap() error {
	return ErrInvalidRecord
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(validateCalendar, BirthdayRecord{})
	return v
}

// validateCalendar checks the day/month pair as a whole. Both zero means
// "date unknown" and is accepted.
func validateCalendar(sl validator.StructLevel) {
	r := sl.Current().Interface().(BirthdayRecord)
	if r.Day == 0 && r.Month == 0 {
		return
	}
	if r.Day == 0 || r.Month == 0 {
		sl.ReportError(r.Day, config.ValFieldDay, "Day", config.ValTagPartialDate, "")
		return
	}
	// Out-of-range values are already reported by the field tags.
	last := MaxDay(r.Month)
	if last == 0 || r.Day < 1 || r.Day > daysInMonth[1] {
		return
	}
	if r.Day > last {
		sl.ReportError(r.Day, config.ValFieldDay, "Day", config.ValTagCalendarDay, strconv.Itoa(r.Month))
	}
}

// Validate checks the structural contract of a record: a valid day/month
// pair (or no date at all) and a plausible year.
func Validate(r BirthdayRecord) error {
	if err := validate.Struct(r); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return translateValidationErrors(fieldErrs)
		}
		return err
	}
	return nil
}

// NewRecord builds a record from manual input. Names and unit are trimmed;
// unlike Validate, a birth date is required.
func NewRecord(givenName, surname, unit string, day, month, year int) (BirthdayRecord, error) {
	r := BirthdayRecord{
		GivenName: strings.TrimSpace(givenName),
		Surname:   strings.TrimSpace(surname),
		Unit:      strings.TrimSpace(unit),
		Day:       day,
		Month:     month,
		Year:      year,
	}
	if day == 0 && month == 0 {
		return BirthdayRecord{}, ValidationErrors{{Field: config.ValFieldDay, Message: config.ValMsgDateRequired}}
	}
	if err := Validate(r); err != nil {
		return BirthdayRecord{}, err
	}
	return r, nil
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	out := make(ValidationErrors, 0, len(errs))
	for _, err := range errs {
		message := err.Error()

		switch {
		case err.Tag() == config.ValTagCalendarDay:
			message = fmt.Sprintf(config.ValMsgCalendarDay, fmt.Sprint(err.Value()), err.Param())
		case err.Tag() == config.ValTagPartialDate:
			message = config.ValMsgPartialDate
		case err.Field() == config.ValFieldDay:
			message = config.ValMsgDayRange
		case err.Field() == config.ValFieldMonth:
			message = config.ValMsgMonthRange
		case err.Field() == config.ValFieldYear:
			message = config.ValMsgYearRange
		}

		out = append(out, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}
	return out
}
