// Package identity guards viewing and changing bookings behind a complete
// child identity.
package identity

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Child is the identity a caller must supply. The date of birth is free
// text; only its presence is checked.
type Child struct {
	FirstName   string `json:"first_name" validate:"required,notblank"`
	LastName    string `json:"last_name" validate:"required,notblank"`
	DateOfBirth string `json:"date_of_birth" validate:"required,notblank"`
}

type Result struct {
	OK      bool     `json:"ok"`
	Missing []string `json:"missing"`
}

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic("identity: register notblank: " + err.Error())
	}
	return v
}

// Check reports which identity fields are missing, in the order first_name,
// last_name, date_of_birth. Whitespace-only values count as missing.
func Check(firstName, lastName, dateOfBirth string) Result {
	return CheckChild(Child{FirstName: firstName, LastName: lastName, DateOfBirth: dateOfBirth})
}

func CheckChild(c Child) Result {
	missing := make([]string, 0, 3)

	var errs validator.ValidationErrors
	if err := validate.Struct(c); errors.As(err, &errs) {
		for _, fe := range errs {
			missing = append(missing, fe.Field())
		}
	}

	return Result{OK: len(missing) == 0, Missing: missing}
}
