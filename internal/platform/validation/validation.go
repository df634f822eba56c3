// Package validation owns the process-wide validator/v10 instance and maps its
// errors into field failures
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"unicode"

	perr "recordkeeper/internal/platform/errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// FieldLevel aliases validator.FieldLevel
type FieldLevel = validator.FieldLevel

// Svc holds a singleton validator and translator
type Svc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	once sync.Once
	svc  *Svc
)

// Init initializes the singleton validator with english translations and json tag names
func Init() *Svc {
	once.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())

		// prefer json tag names in messages
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})

		_ = en_translations.RegisterDefaultTranslations(v, trans)

		registerShort(v, trans, "min", "{0} must be at least {1}")
		registerShort(v, trans, "max", "{0} must be at most {1}")
		registerShort(v, trans, "gte", "{0} must be at least {1}")

		_ = v.RegisterValidation("notblank", notBlank)
		registerShort(v, trans, "notblank", "{0} must not be blank")

		svc = &Svc{Validator: v, Translator: trans}
	})
	return svc
}

// Get returns the validator singleton, initializing on first use
func Get() *Svc { return Init() }

// Struct runs tag rules over v and returns every failure in declaration order
// A non-struct value is a programming error and is reported as internal
func Struct(v any) ([]perr.FieldFailure, error) {
	err := Get().Validator.Struct(v)
	if err == nil {
		return nil, nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		return nil, perr.Wrap(inv, perr.ErrorCodeInternal, "validator misuse")
	}
	return Failures(err), nil
}

// Failures translates validator errors into field failures
// Foreign errors become a single failure without a field
func Failures(err error) []perr.FieldFailure {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]perr.FieldFailure, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, perr.FieldFailure{Field: fe.Field(), Message: fe.Translate(Get().Translator)})
		}
		return out
	}
	return []perr.FieldFailure{{Message: err.Error()}}
}

func notBlank(fl FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) }) >= 0
}

// registerShort installs a one-line translation for tag
func registerShort(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(ut ut.Translator) error {
			return ut.Add(tag, text, true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}
