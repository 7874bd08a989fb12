package validator

import (
	"errors"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/locales/id"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	id_translations "github.com/go-playground/validator/v10/translations/id"
	"github.com/stemsi/roster-mahasiswa/internal/model"
)

// ErrUnknownField is returned by ValidateField for a field the form does not have.
var ErrUnknownField = errors.New("unknown form field")

// messages holds the user-facing message per field and failing tag. Anything
// missing here falls back to the Indonesian default translation.
var messages = map[string]map[string]string{
	"name": {
		"required": "Nama tidak boleh kosong",
		"min":      "Nama minimal 2 karakter",
	},
	"npm": {
		"required":     "NPM harus berupa angka positif",
		"positive_int": "NPM harus berupa angka positif",
		"min":          "NPM minimal 8 digit",
	},
	"gender": {
		"required": "Jenis kelamin harus dipilih",
		"oneof":    "Jenis kelamin harus dipilih",
	},
	"birth_info": {
		"required": "Tempat tanggal lahir tidak boleh kosong",
	},
	"address": {
		"required": "Alamat tidak boleh kosong",
		"min":      "Alamat terlalu singkat",
	},
	"enrollment_year": {
		"required":  "Tahun masuk harus antara 2000-2030",
		"int_range": "Tahun masuk harus antara 2000-2030",
	},
	"ipk": {
		"required":      "IPK tidak valid. Harus antara 0.0 dan 4.0",
		"decimal_range": "IPK tidak valid. Harus antara 0.0 dan 4.0",
	},
}

// Validator checks student form submissions and translates failures into
// per-field Indonesian messages.
type Validator struct {
	engine *govalidator.Validate
	trans  ut.Translator
	// rules maps the JSON field name to its validate tag, for single-field checks.
	rules map[string]string
}

// New builds a Validator with the custom roster tags and Indonesian translations.
func New() *Validator {
	engine := govalidator.New(govalidator.WithRequiredStructEnabled())

	// Use JSON tag name for field names in error messages.
	engine.RegisterTagNameFunc(jsonName)

	_ = engine.RegisterValidation("positive_int", positiveInt)
	_ = engine.RegisterValidation("int_range", intRange)
	_ = engine.RegisterValidation("decimal_range", decimalRange)

	idLocale := id.New()
	uni := ut.New(idLocale, idLocale)
	trans, _ := uni.GetTranslator("id")
	_ = id_translations.RegisterDefaultTranslations(engine, trans)

	return &Validator{
		engine: engine,
		trans:  trans,
		rules:  collectRules(reflect.TypeOf(model.StudentForm{})),
	}
}

// ValidateForm checks every field of the form and returns field name →
// message for all violations at once. It returns nil when the form is valid.
// The form is expected to be normalized already.
func (v *Validator) ValidateForm(form model.StudentForm) map[string]string {
	if err := v.engine.Struct(form); err != nil {
		return v.TranslateErrors(err)
	}
	return nil
}

// ValidateField re-runs the rule of a single field for live feedback. It returns
// an empty message when the value is acceptable. Uniqueness is not checked here.
func (v *Validator) ValidateField(field, value string) (string, error) {
	tag, ok := v.rules[field]
	if !ok {
		return "", ErrUnknownField
	}

	err := v.engine.Var(strings.TrimSpace(value), tag)
	if err == nil {
		return "", nil
	}

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return v.message(field, ve[0]), nil
	}
	return "", err
}

// TranslateErrors takes a validation error and returns a map of
// field name → human-readable error message. If the error is not a
// validation error, it returns a single-key map with "detail".
func (v *Validator) TranslateErrors(err error) map[string]string {
	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[fe.Field()] = v.message(fe.Field(), fe)
		}
		return fields
	}

	fields["detail"] = err.Error()
	return fields
}

func (v *Validator) message(field string, fe govalidator.FieldError) string {
	if msg, ok := messages[field][fe.Tag()]; ok {
		return msg
	}
	return fe.Translate(v.trans)
}

func jsonName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func collectRules(t reflect.Type) map[string]string {
	rules := make(map[string]string, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		fld := t.Field(i)
		if name := jsonName(fld); name != "" {
			rules[name] = fld.Tag.Get("validate")
		}
	}
	return rules
}

// ─── Custom tags ──────────────────────────────────────────────────────

// Plain base-10 text only; strconv would also take signs and hex or exponent forms.
var (
	digitsPattern  = regexp.MustCompile(`^[0-9]+$`)
	decimalPattern = regexp.MustCompile(`^([0-9]+(\.[0-9]*)?|\.[0-9]+)$`)
)

// positiveInt accepts digit-only text whose value is greater than zero.
func positiveInt(fl govalidator.FieldLevel) bool {
	s := fl.Field().String()
	if !digitsPattern.MatchString(s) {
		return false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	return err == nil && n > 0
}

// intRange accepts an integer within the inclusive bounds given as "lo:hi".
func intRange(fl govalidator.FieldLevel) bool {
	lo, hi, ok := parseBounds(fl.Param())
	if !ok {
		return false
	}
	s := fl.Field().String()
	if !digitsPattern.MatchString(s) {
		return false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return false
	}
	return float64(n) >= lo && float64(n) <= hi
}

// decimalRange accepts a finite real number within the inclusive bounds "lo:hi".
func decimalRange(fl govalidator.FieldLevel) bool {
	lo, hi, ok := parseBounds(fl.Param())
	if !ok {
		return false
	}
	s := fl.Field().String()
	if !decimalPattern.MatchString(s) {
		return false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	return f >= lo && f <= hi
}

func parseBounds(param string) (float64, float64, bool) {
	loStr, hiStr, found := strings.Cut(param, ":")
	if !found {
		return 0, 0, false
	}
	lo, err := strconv.ParseFloat(loStr, 64)
	if err != nil {
		return 0, 0, false
	}
	hi, err := strconv.ParseFloat(hiStr, 64)
	if err != nil {
		return 0, 0, false
	}
	return lo, hi, true
}
