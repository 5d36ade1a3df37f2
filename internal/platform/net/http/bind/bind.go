// Package bind provides strict JSON bind and validation helpers for handlers
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"sync"

	perr "notifygate/internal/platform/errors"
	"notifygate/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// FieldLevel aliases validator.FieldLevel
type FieldLevel = validator.FieldLevel

// FieldError aliases validator.FieldError
type FieldError = validator.FieldError

// Restricted textual formats accepted at the boundary. Anything that fails
// these never reaches the engine
var (
	hhmmRx     = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	eventKeyRx = regexp.MustCompile(`^[A-Za-z0-9_.]+$`)
	isoUTCRx   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?Z$`)
)

// HHMMValid reports whether s is a wall-clock time in strict HH:MM form
func HHMMValid(s string) bool { return hhmmRx.MatchString(s) }

// EventKeyValid reports whether s is a well-formed event type key
func EventKeyValid(s string) bool { return eventKeyRx.MatchString(s) }

// ISOUTCValid reports whether s is an ISO-8601 UTC timestamp with an uppercase Z
func ISOUTCValid(s string) bool { return isoUTCRx.MatchString(s) }

// ValidatorSvc holds a singleton validator and translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *ValidatorSvc
)

// Init initializes the singleton validator with english translations and json tag names
func Init() *ValidatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())

		// prefer json tag names in messages and field paths
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

		registerHHMM(v, trans)
		registerEventKey(v, trans)
		registerISOUTC(v, trans)

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

// Get returns the validator singleton, initializing on first use
func Get() *ValidatorSvc {
	if vSvc == nil {
		return Init()
	}
	return vSvc
}

// JSONOptions controls parsing behavior
type JSONOptions struct {
	MaxBytes        int64 // default 100KiB
	DisallowUnknown bool  // default true
}

func defaultJSONOptions() JSONOptions {
	return JSONOptions{
		MaxBytes:        100 << 10,
		DisallowUnknown: true,
	}
}

// ParseJSON decodes JSON into T, validates it, and maps failures to project
// errors. An empty body decodes as the zero value so that required-field
// violations are reported with their field, not as a JSON syntax error
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var zero T
	o := defaultJSONOptions()
	if len(opts) > 0 {
		o = opts[0]
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.Get().Error().Err(err).Msg("failed to close request body")
		}
	}()

	var reader io.Reader = r.Body
	if o.MaxBytes > 0 {
		reader = io.LimitReader(r.Body, o.MaxBytes)
	}

	dec := json.NewDecoder(reader)
	if o.DisallowUnknown {
		dec.DisallowUnknownFields()
	}

	var dst T
	if err := dec.Decode(&dst); err != nil {
		if errors.Is(err, io.EOF) {
			// empty body, fall through with the zero value
			dst = zero
		} else {
			return zero, decodeError(err)
		}
	} else if dec.More() {
		return zero, perr.Validation(perr.CodeInvalidJSON, "", "Invalid JSON body")
	}

	if err := Get().Validator.Struct(dst); err != nil {
		var inv *validator.InvalidValidationError
		if errors.As(err, &inv) {
			logger.Get().Error().Err(inv).Msg("validator internal error")
			return zero, perr.Internalf("validation failed")
		}
		return zero, firstViolation(err)
	}

	return dst, nil
}

// decodeError maps json decoder failures onto the validation taxonomy
func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return perr.Validationf(perr.CodeInvalidType, typeErr.Field,
			"must be of type %s", typeErr.Type.Kind())
	}
	if field, ok := unknownField(err); ok {
		return perr.Validationf(perr.CodeExtraProperty, field, "unrecognized key %q", field)
	}
	return perr.Validation(perr.CodeInvalidJSON, "", "Invalid JSON body")
}

// unknownField extracts the offending key from the decoder's unknown-field
// error. The error has no structured type, so the message is parsed
func unknownField(err error) (string, bool) {
	const marker = `json: unknown field "`
	msg := err.Error()
	if !strings.HasPrefix(msg, marker) {
		return "", false
	}
	return strings.TrimSuffix(strings.TrimPrefix(msg, marker), `"`), true
}

// firstViolation converts the first field error into a project error.
// One violation per call; no aggregation
func firstViolation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return perr.Validation(perr.CodeInvalidFormat, "", err.Error())
	}
	fe := verrs[0]

	code := perr.CodeInvalidFormat
	if fe.Tag() == "required" {
		code = perr.CodeRequired
	}
	return perr.Validation(code, FieldPath(fe), fe.Translate(Get().Translator))
}

// FieldPath returns the dotted path of a field error relative to the payload
// root, e.g. "dnd.start" for a nested field
func FieldPath(fe FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return fe.Field()
}

// custom tags with translations

func registerHHMM(v *validator.Validate, trans ut.Translator) {
	_ = v.RegisterValidation("hhmm", func(fl FieldLevel) bool {
		return HHMMValid(fl.Field().String())
	})
	_ = v.RegisterTranslation("hhmm", trans,
		func(ut ut.Translator) error {
			return ut.Add("hhmm", "{0} must match HH:MM (00:00 to 23:59)", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T("hhmm", fe.Field())
			return msg
		},
	)
}

func registerEventKey(v *validator.Validate, trans ut.Translator) {
	_ = v.RegisterValidation("eventkey", func(fl FieldLevel) bool {
		return EventKeyValid(fl.Field().String())
	})
	_ = v.RegisterTranslation("eventkey", trans,
		func(ut ut.Translator) error {
			return ut.Add("eventkey", "{0} is an invalid event key", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T("eventkey", fe.Field())
			return msg
		},
	)
}

func registerISOUTC(v *validator.Validate, trans ut.Translator) {
	_ = v.RegisterValidation("isoutc", func(fl FieldLevel) bool {
		return ISOUTCValid(fl.Field().String())
	})
	_ = v.RegisterTranslation("isoutc", trans,
		func(ut ut.Translator) error {
			return ut.Add("isoutc", "{0} must be ISO8601 UTC like 2025-07-28T23:00:00Z", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T("isoutc", fe.Field())
			return msg
		},
	)
}
