package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsVoyageNumber(t *testing.T) {
	assert.True(t, IsVoyageNumber("045W"))
	assert.False(t, IsVoyageNumber("ABCDE"))
	assert.False(t, IsVoyageNumber(""))
}

func TestIsVesselName(t *testing.T) {
	assert.True(t, IsVesselName("EVER GIVEN"))
	assert.True(t, IsVesselName("MSC OSCAR"))
	assert.False(t, IsVesselName("12345"))
	assert.False(t, IsVesselName("A"))
}

func TestIsPortName(t *testing.T) {
	assert.True(t, IsPortName("Shanghai"))
	assert.False(t, IsPortName("sh"))
	assert.False(t, IsPortName("shanghai"))
}

func TestIsUNLOCODE(t *testing.T) {
	assert.True(t, IsUNLOCODE("CNSHA"))
	assert.False(t, IsUNLOCODE("cnsha"))
	assert.False(t, IsUNLOCODE("CNSH1"))
}

func TestIsNotStopWord(t *testing.T) {
	assert.False(t, IsNotStopWord("regards"))
	assert.True(t, IsNotStopWord("BKG1234567"))
}

func TestIsNotContainerOwnerCode(t *testing.T) {
	assert.False(t, IsNotContainerOwnerCode("MSKU1234"))
	assert.True(t, IsNotContainerOwnerCode("SL1234"))
}

func TestValidateAmount(t *testing.T) {
	cur, val, ok := ValidateAmount("USD 1,234.56")
	assert.True(t, ok)
	assert.Equal(t, "USD", cur)
	assert.Equal(t, 1234.56, val)

	cur, val, ok = ValidateAmount("$500.00")
	assert.True(t, ok)
	assert.Equal(t, "USD", cur)
	assert.Equal(t, 500.00, val)

	_, _, ok = ValidateAmount("not an amount")
	assert.False(t, ok)

	_, _, ok = ValidateAmount("")
	assert.False(t, ok)
}
