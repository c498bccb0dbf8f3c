package handlers

import (
	"regexp"
	"strconv"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	cardNumberRe = regexp.MustCompile(`^\d{13,19}$`)
	expMonthRe   = regexp.MustCompile(`^(0[1-9]|1[0-2])$`)
	expYearRe    = regexp.MustCompile(`^\d{4}$`)
	cvvRe        = regexp.MustCompile(`^\d{3,4}$`)
)

// RegisterValidators installs the card-format rules used by the payment
// request binding tags. Must run once before the router serves traffic.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterValidation("cardnumber", func(fl validator.FieldLevel) bool {
		return cardNumberRe.MatchString(fl.Field().String())
	})
	v.RegisterValidation("expmonth", func(fl validator.FieldLevel) bool {
		return expMonthRe.MatchString(fl.Field().String())
	})
	v.RegisterValidation("expyear", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if !expYearRe.MatchString(s) {
			return false
		}
		year, _ := strconv.Atoi(s)
		return year >= time.Now().Year()
	})
	v.RegisterValidation("cvv", func(fl validator.FieldLevel) bool {
		return cvvRe.MatchString(fl.Field().String())
	})
}
