package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlot_IsValid(t *testing.T) {
	assert.True(t, Slot{Day: DaySexta, Time: "20:00"}.IsValid())
	assert.True(t, Slot{Day: DaySabado, Time: "08:00"}.IsValid())
	assert.False(t, Slot{Day: "Segunda", Time: "10:00"}.IsValid())
	assert.False(t, Slot{Day: DayQuarta, Time: "07:00"}.IsValid())
	assert.False(t, Slot{Day: DayQuarta, Time: "10:30"}.IsValid())
	assert.False(t, Slot{Day: DayQuarta, Time: "21:00"}.IsValid())
}

func TestTimeSlots(t *testing.T) {
	assert.Len(t, TimeSlots, 13)
	assert.Equal(t, TimeSlot("08:00"), TimeSlots[0])
	assert.Equal(t, TimeSlot("20:00"), TimeSlots[len(TimeSlots)-1])
}
