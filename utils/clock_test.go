package utils_test

import (
	"testing"

	"github.com/shoptext/wastatus/utils"
	"github.com/stretchr/testify/assert"
)

func TestFormatClockTime(t *testing.T) {
	formatted, err := utils.FormatClockTime("0")
	assert.NoError(t, err)
	assert.Equal(t, "12:00 AM", formatted)

	// 2023-11-14 22:13:20 UTC
	formatted, err = utils.FormatClockTime("1700000000")
	assert.NoError(t, err)
	assert.Equal(t, "10:13 PM", formatted)

	// same input always renders the same
	again, err := utils.FormatClockTime("1700000000")
	assert.NoError(t, err)
	assert.Equal(t, formatted, again)

	// pre-epoch timestamps still format
	formatted, err = utils.FormatClockTime("-1")
	assert.NoError(t, err)
	assert.Equal(t, "11:59 PM", formatted)

	_, err = utils.FormatClockTime("not-a-timestamp")
	assert.Error(t, err)

	_, err = utils.FormatClockTime("")
	assert.Error(t, err)

	_, err = utils.FormatClockTime("1700000000.5")
	assert.Error(t, err)
}
