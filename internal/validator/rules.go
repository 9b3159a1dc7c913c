package validator

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
	"performer-directory-backend/internal/locations"
	"performer-directory-backend/internal/models"
)

var (
	usPhonePattern = regexp.MustCompile(`^(\+?1[\s.-]?)?\(?[2-9]\d{2}\)?[\s.-]?\d{3}[\s.-]?\d{4}$`)
	usZipPattern   = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

func registerCustomRules(v *validator.Validate, dir *locations.Directory) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("failed to register validation tag %q: %v", tag, err))
		}
	}

	mustRegister("us-state", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return value == "" || dir.ValidState(value)
	})
	mustRegister("us-phone", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return value == "" || usPhonePattern.MatchString(value)
	})
	mustRegister("us-zip", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return value == "" || usZipPattern.MatchString(value)
	})
	mustRegister("relay-email", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return value == "" || emailPattern.MatchString(value)
	})
	mustRegister("travel-radius", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return value == "" || models.TravelRadius(value).Valid()
	})
	mustRegister("category", func(fl validator.FieldLevel) bool {
		return models.Category(fl.Field().String()).Valid()
	})
	mustRegister("event-type", func(fl validator.FieldLevel) bool {
		return models.EventType(fl.Field().String()).Valid()
	})
	mustRegister("payment-status", func(fl validator.FieldLevel) bool {
		return models.PaymentStatus(fl.Field().String()).Valid()
	})
}
