package dto

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

var (
	Validate = validator.New()
	trans    ut.Translator
)

// oneOfParam splits a oneof parameter the way the validator does, so
// quoted labels with spaces stay whole.
var oneOfParam = regexp.MustCompile(`'[^']*'|\S+`)

// ErrorResponse is the error envelope returned by every endpoint.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

func InitValidator() error {
	uni := ut.New(en.New(), en.New())
	trans, _ = uni.GetTranslator("en")

	err := enTranslations.RegisterDefaultTranslations(Validate, trans)
	if err != nil {
		return err
	}

	err = Validate.RegisterTranslation("oneof", trans, func(t ut.Translator) error {
		return t.Add("oneof", "{0} must be one of: {1}", true)
	}, translateOneOf)
	if err != nil {
		return err
	}

	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return nil
}

// translateOneOf lists the allowed labels without the quoting of the tag.
// Example: "'One Way' 'Round Trip'" -> "ticket_type must be one of: One Way, Round Trip"
func translateOneOf(t ut.Translator, fe validator.FieldError) string {
	options := oneOfParam.FindAllString(fe.Param(), -1)
	for i, option := range options {
		options[i] = strings.Trim(option, "'")
	}

	msg, err := t.T("oneof", fe.Field(), strings.Join(options, ", "))
	if err != nil {
		return fe.Error()
	}

	return msg
}

func ValidateSingleError(req interface{}) error {
	if err := Validate.Struct(req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return errors.New(ve[0].Translate(trans))
		}
		return err
	}
	return nil
}
