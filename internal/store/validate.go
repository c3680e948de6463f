package store

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/mesh-intelligence/todos/pkg/types"
)

// newValidator returns a validator that reports json field names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// checkRequest validates a request struct and converts failures to an error
// wrapping types.ErrInvalidArgument.
func (s *Store) checkRequest(req any) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", types.ErrInvalidArgument, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return fmt.Errorf("%w: %s", types.ErrInvalidArgument, strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "missing " + fe.Field()
	case "min":
		return fe.Field() + " must not be empty"
	case "gte":
		return fe.Field() + " must be non-negative"
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}

// checkUpsert validates an upsert request, including the UTF-8 name and
// finite due checks the tags cannot express. Both keep the slot encoding
// an exact copy of the mapping.
func (s *Store) checkUpsert(req types.UpsertRequest) error {
	if err := s.checkRequest(req); err != nil {
		return err
	}
	if !utf8.ValidString(*req.Name) {
		return fmt.Errorf("%w: name must be valid UTF-8", types.ErrInvalidArgument)
	}
	if math.IsNaN(*req.DueAt) || math.IsInf(*req.DueAt, 0) {
		return fmt.Errorf("%w: dueAt must be a finite number", types.ErrInvalidArgument)
	}
	return nil
}
