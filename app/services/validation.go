package services

import (
	"errors"

	"github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	pt_translations "github.com/go-playground/validator/v10/translations/pt_BR"
)

// RequiredMessage is shown when an empty comment is submitted.
const RequiredMessage = "Esse campo é obrigatório"

type commentForm struct {
	Comment string `validate:"required"`
}

// commentValidator checks comment drafts and produces pt-BR messages.
type commentValidator struct {
	validate *validator.Validate
	trans    ut.Translator
}

func newCommentValidator() (*commentValidator, error) {
	locale := pt_BR.New()
	uni := ut.New(locale, locale)
	trans, _ := uni.GetTranslator(locale.Locale())

	v := validator.New()
	if err := pt_translations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, err
	}
	err := v.RegisterTranslation("required", trans,
		func(ut ut.Translator) error {
			return ut.Add("required", RequiredMessage, true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T("required")
			return msg
		},
	)
	if err != nil {
		return nil, err
	}

	return &commentValidator{validate: v, trans: trans}, nil
}

// check returns the translated message for an unacceptable draft and false,
// or "" and true. Only the raw length matters.
func (c *commentValidator) check(draft string) (string, bool) {
	err := c.validate.Struct(commentForm{Comment: draft})
	if err == nil {
		return "", true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Translate(c.trans), false
	}
	return err.Error(), false
}
