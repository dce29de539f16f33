// Package validation turns untyped request payloads into validated domain requests.
package validation

import (
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/google/uuid"

	"github.com/Night40050/support-copilot/internal/domain"
	apperrors "github.com/Night40050/support-copilot/pkg/util/errorutil"
)

const uuidTag = "anyuuid"

// ticketPayload mirrors the wire shape of a process-ticket request.
type ticketPayload struct {
	TicketID    string `json:"ticket_id" validate:"required,anyuuid"`
	Description string `json:"description" validate:"required,min=10"`
}

// Validator checks ticket requests. It is safe for concurrent use.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// New builds a Validator with English messages keyed by json field names.
func New() *Validator {
	enLoc := en.New()
	uni := ut.New(enLoc, enLoc)
	trans, _ := uni.GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
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

	_ = v.RegisterValidation(uuidTag, func(fl validator.FieldLevel) bool {
		_, err := uuid.Parse(fl.Field().String())
		return err == nil
	})
	registerTranslation(v, trans, uuidTag, "{0} must be a valid UUID")
	registerTranslation(v, trans, "required", "{0} is required")
	registerTranslation(v, trans, "min", "{0} must be at least {1} characters long")

	return &Validator{validate: v, translator: trans}
}

// ValidateTicketRequest validates a decoded JSON object and reports every violated field.
func (v *Validator) ValidateTicketRequest(payload map[string]any) (domain.TicketProcessRequest, error) {
	var (
		body       ticketPayload
		details    []string
		mismatched = map[string]bool{}
	)

	if raw, ok := payload["ticket_id"]; ok && raw != nil {
		s, isString := raw.(string)
		if !isString {
			details = append(details, "ticket_id must be a string")
			mismatched["ticket_id"] = true
		} else {
			body.TicketID = s
		}
	}
	if raw, ok := payload["description"]; ok && raw != nil {
		s, isString := raw.(string)
		if !isString {
			details = append(details, "description must be a string")
			mismatched["description"] = true
		} else {
			body.Description = s
		}
	}

	if err := v.validate.Struct(body); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return domain.TicketProcessRequest{}, apperrors.NewInternalError(err)
		}
		for _, fe := range verrs {
			if mismatched[fe.Field()] {
				continue
			}
			details = append(details, fe.Translate(v.translator))
		}
	}

	if len(details) > 0 {
		sort.Strings(details)
		return domain.TicketProcessRequest{}, apperrors.NewInputValidation(details)
	}

	id, err := uuid.Parse(body.TicketID)
	if err != nil {
		return domain.TicketProcessRequest{}, apperrors.NewInternalError(err)
	}
	return domain.TicketProcessRequest{TicketID: id, Description: body.Description}, nil
}

func registerTranslation(v *validator.Validate, trans ut.Translator, tag, text string) {
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
