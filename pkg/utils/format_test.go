package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"traveldesk-service/pkg/utils"
)

func TestFormatDate(t *testing.T) {
	d := time.Date(2026, 7, 4, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, "04 Jul 2026", utils.FormatDate(&d))
	assert.Equal(t, "TBD", utils.FormatDate(nil))

	zero := time.Time{}
	assert.Equal(t, "TBD", utils.FormatDate(&zero))
}

func TestFormatDateTime(t *testing.T) {
	d := time.Date(2026, 7, 4, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, "04 Jul 2026 15:30", utils.FormatDateTime(&d))
	assert.Equal(t, "TBD", utils.FormatDateTime(nil))
}

func TestFormatDateRange(t *testing.T) {
	start := time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 7, 11, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "04 Jul 2026 - 11 Jul 2026", utils.FormatDateRange(&start, &end))
	assert.Equal(t, "04 Jul 2026 - TBD", utils.FormatDateRange(&start, nil))
	assert.Equal(t, "TBD - 11 Jul 2026", utils.FormatDateRange(nil, &end))
	assert.Equal(t, "TBD", utils.FormatDateRange(nil, nil))
}

func TestOrTBD(t *testing.T) {
	assert.Equal(t, "ABC123", utils.OrTBD("ABC123"))
	assert.Equal(t, "TBD", utils.OrTBD(""))
}
