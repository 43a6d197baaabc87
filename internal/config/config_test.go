package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-easter/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"Version", config.Version},
		{"UserAgent", config.UserAgent},
		{"ICalVersion", config.ICalVersion},
		{"ICalProdid", config.ICalProdid},
		{"DefaultMonthDay", config.DefaultMonthDay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

// TestDefaults_Sanity checks that default values make sense logically.
func TestDefaults_Sanity(t *testing.T) {
	assert.Len(t, config.DefaultMonthDay, config.MonthDayLength)
	assert.Less(t, config.DefaultSearchFrom, config.DefaultSearchTo, "Search window must not be empty")
	assert.LessOrEqual(t, config.ValidatedYearMin, config.DefaultSearchFrom)
	assert.GreaterOrEqual(t, config.ValidatedYearMax, config.DefaultSearchTo)
	assert.Equal(t, 2000, config.TwoDigitYearBase)
	assert.True(t, config.LeapProbeYear%4 == 0 && (config.LeapProbeYear%100 != 0 || config.LeapProbeYear%400 == 0), "Probe year must be a leap year")
	assert.Contains(t, config.SupportedLanguages, config.DefaultLanguage)
}

// TestObservanceOffsets pins the liturgical offsets from Easter Sunday.
func TestObservanceOffsets(t *testing.T) {
	assert.Equal(t, -46, config.OffsetAshWed)
	assert.Equal(t, -2, config.OffsetGoodFriday)
	assert.Equal(t, 39, config.OffsetAscension)
	assert.Equal(t, 49, config.OffsetPentecost)
	assert.Less(t, config.OffsetAshWed, config.OffsetMaundy)
	assert.Less(t, config.OffsetHolySat, config.OffsetEaster)
}

// TestUserAgent_Format ensures the UA string follows the standard format.
func TestUserAgent_Format(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.UserAgent, "Go-Easter/"), "UserAgent must start with AppName/")
}

// TestTimeouts ensures that operational constraints are reasonable.
func TestTimeouts(t *testing.T) {
	t.Parallel()

	assert.Greater(t, config.ShutdownTimeout, 0*time.Second, "ShutdownTimeout must be positive")
	assert.Greater(t, config.ServerWriteTimeout, config.ServerReadTimeout)
	assert.GreaterOrEqual(t, config.DefaultICalRefresh, time.Hour, "Feed refresh hint should not hammer the server")
}
