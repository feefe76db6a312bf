package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Day is one of the weekdays the café takes reservations for.
type Day string

const (
	DayQuarta  Day = "Quarta"
	DayQuinta  Day = "Quinta"
	DaySexta   Day = "Sexta"
	DaySabado  Day = "Sábado"
	DayDomingo Day = "Domingo"
)

// Days lists the bookable days in week order.
var Days = []Day{DayQuarta, DayQuinta, DaySexta, DaySabado, DayDomingo}

// TimeSlot is an hourly reservation start time in "HH:00" form.
type TimeSlot string

const (
	firstSlotHour = 8
	lastSlotHour  = 20
)

// TimeSlots lists the bookable hours, 08:00 through 20:00.
var TimeSlots = func() []TimeSlot {
	slots := make([]TimeSlot, 0, lastSlotHour-firstSlotHour+1)
	for h := firstSlotHour; h <= lastSlotHour; h++ {
		slots = append(slots, TimeSlot(fmt.Sprintf("%02d:00", h)))
	}
	return slots
}()

// IsValid reports whether d is a bookable day.
func (d Day) IsValid() bool {
	for _, v := range Days {
		if v == d {
			return true
		}
	}
	return false
}

// IsValid reports whether t is a bookable hour.
func (t TimeSlot) IsValid() bool {
	for _, v := range TimeSlots {
		if v == t {
			return true
		}
	}
	return false
}

// Slot identifies a reservation window.
type Slot struct {
	Day  Day      `json:"day"`
	Time TimeSlot `json:"time"`
}

// IsValid reports whether both parts of the slot are in the enumerated sets.
func (s Slot) IsValid() bool {
	return s.Day.IsValid() && s.Time.IsValid()
}

func (s Slot) String() string {
	return string(s.Day) + " " + string(s.Time)
}

// Reservation books one table for one slot.
type Reservation struct {
	ID         uuid.UUID `json:"id" db:"id"`
	TableID    int       `json:"table_id" db:"table_id"`
	ClientName string    `json:"client_name" db:"client_name"`
	People     int       `json:"people" db:"people"`
	Day        Day       `json:"day" db:"day"`
	Time       TimeSlot  `json:"time" db:"time_slot"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Slot returns the (day, time) the reservation occupies.
func (r *Reservation) Slot() Slot {
	return Slot{Day: r.Day, Time: r.Time}
}

// ReservationRequest is the assigner input.
type ReservationRequest struct {
	ClientName string   `json:"client_name"`
	People     int      `json:"people"`
	Day        Day      `json:"day"`
	Time       TimeSlot `json:"time"`
}

// ReservationFilter narrows reservation listings; nil fields match everything.
type ReservationFilter struct {
	Day  *Day
	Time *TimeSlot
}

// TableStatus pairs a table with its reservation at a given slot, if any.
type TableStatus struct {
	Table       Table        `json:"table"`
	Reservation *Reservation `json:"reservation,omitempty"`
}

// SlotAvailability partitions the floor plan for one slot.
type SlotAvailability struct {
	Slot     Slot          `json:"slot"`
	Reserved []TableStatus `json:"reserved"`
	Free     []Table       `json:"free"`
}

// Assignment is the assigner's answer: the booked reservation and the table it landed on.
type Assignment struct {
	Reservation *Reservation `json:"reservation"`
	Table       Table        `json:"table"`
}
