package utils

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	// validatorM maps custom binding tags to their implementations.
	validatorM map[string]validator.Func
	patternM   map[string]string
)

func init() {
	validatorM = map[string]validator.Func{
		"money": regexpValidator,
	}
	patternM = map[string]string{
		// money values travel as decimal strings, at most two fraction digits
		"money": `^[0-9]+(\.[0-9]{1,2})?$`,
	}
}

var regexpValidator validator.Func = func(fl validator.FieldLevel) bool {
	key, _ := fl.Field().Interface().(string)
	pattern, ok := patternM[fl.GetTag()]
	if ok {
		match, _ := regexp.MatchString(pattern, key)
		return match
	}
	return false
}

// RegisterValidators hooks the custom tags into gin's binding validator.
// Called once from the router setup.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	for tag, fn := range validatorM {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}
