package utils

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type moneyField struct {
	Amount string `binding:"required,money"`
}

func TestRegisterValidators(t *testing.T) {
	require.NoError(t, RegisterValidators())
	// the router registers once per engine; a second call must stay safe
	require.NoError(t, RegisterValidators())

	for _, v := range []string{"0", "10", "10.5", "10.50", "105.00", "123456.99"} {
		assert.NoError(t, binding.Validator.ValidateStruct(moneyField{Amount: v}), "%q should pass", v)
	}
	for _, v := range []string{"", "-5", "10.505", "1,000", "abc", "10.", ".50", "1e3"} {
		assert.Error(t, binding.Validator.ValidateStruct(moneyField{Amount: v}), "%q should fail", v)
	}
}
