package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

func TestParseFilter_Empty(t *testing.T) {
	filter, err := ParseFilter(FilterInput{})
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationFilter{}, filter)
}

func TestParseFilter_AllFields(t *testing.T) {
	filter, err := ParseFilter(FilterInput{Date: "2025-03-10", Floor: "2", Room: "4", Shift: "Tarde"})
	require.NoError(t, err)

	require.NotNil(t, filter.Date)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), *filter.Date)
	require.NotNil(t, filter.Floor)
	assert.Equal(t, domain.Floor(2), *filter.Floor)
	require.NotNil(t, filter.Room)
	assert.Equal(t, domain.Room(4), *filter.Room)
	require.NotNil(t, filter.Shift)
	assert.Equal(t, domain.ShiftAfternoon, *filter.Shift)
}

func TestParseFilter_Invalid(t *testing.T) {
	_, err := ParseFilter(FilterInput{Date: "tomorrow", Floor: "9", Room: "x", Shift: "Dawn"})
	require.Error(t, err)
	assert.ElementsMatch(t, []string{"date", "floor", "room", "shift"}, fieldsOf(t, err))
}

func TestParseFilter_DateRequired(t *testing.T) {
	_, err := ParseFilter(FilterInput{Floor: "1", DateRequired: true})
	require.Error(t, err)
	assert.Equal(t, []string{"date"}, fieldsOf(t, err))
}
