package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PlayCourt-BookingService/pkg/ptr"
	"github.com/m04kA/PlayCourt-BookingService/pkg/types"
)

func candidateSlots(totalCourts int, starts ...types.TimeString) []Slot {
	slots := make([]Slot, len(starts))
	for i, start := range starts {
		slots[i] = Slot{
			StartTime:       start,
			DurationMinutes: 30,
			Price:           750,
			TotalCourts:     totalCourts,
			AvailableCourts: totalCourts,
			Status:          SlotStatusAvailable,
		}
	}
	return slots
}

func TestAnnotateSlots_NoData(t *testing.T) {
	slots := candidateSlots(3, "10:00", "10:30")

	annotated := AnnotateSlots(slots, nil, nil)

	// Отсутствие данных означает полную доступность
	require.Len(t, annotated, 2)
	for _, slot := range annotated {
		assert.Equal(t, 0, slot.BookedCourts)
		assert.Equal(t, 3, slot.AvailableCourts)
		assert.Equal(t, SlotStatusAvailable, slot.Status)
	}
}

func TestAnnotateSlots_Statuses(t *testing.T) {
	slots := candidateSlots(3, "10:00", "10:30", "11:00", "11:30")
	counts := map[types.TimeString]int{
		"10:30": 2, // limited: остался один корт
		"11:00": 3, // full
		"11:30": 1, // available: два корта свободны
	}

	annotated := AnnotateSlots(slots, counts, nil)

	assert.Equal(t, SlotStatusAvailable, annotated[0].Status)
	assert.Equal(t, 3, annotated[0].AvailableCourts)

	assert.Equal(t, SlotStatusLimited, annotated[1].Status)
	assert.Equal(t, 1, annotated[1].AvailableCourts)

	assert.Equal(t, SlotStatusFull, annotated[2].Status)
	assert.Equal(t, 0, annotated[2].AvailableCourts)

	assert.Equal(t, SlotStatusAvailable, annotated[3].Status)
	assert.Equal(t, 2, annotated[3].AvailableCourts)
}

func TestAnnotateSlots_BlockedWinsOverCapacity(t *testing.T) {
	slots := candidateSlots(3, "10:00", "10:30")
	counts := map[types.TimeString]int{"10:00": 1}
	blocks := map[types.TimeString]SlotBlock{
		"10:00": {VenueID: 1, StartTime: "10:00", Reason: ptr.Ptr("ремонт покрытия")},
	}

	annotated := AnnotateSlots(slots, counts, blocks)

	// Блокировка перекрывает любую доступность
	assert.Equal(t, SlotStatusBlocked, annotated[0].Status)
	assert.Equal(t, 0, annotated[0].AvailableCourts)
	assert.Equal(t, 1, annotated[0].BookedCourts)
	require.NotNil(t, annotated[0].BlockReason)
	assert.Equal(t, "ремонт покрытия", *annotated[0].BlockReason)

	assert.Equal(t, SlotStatusAvailable, annotated[1].Status)
	assert.Nil(t, annotated[1].BlockReason)
}

func TestAnnotateSlots_OverbookedClampsToZero(t *testing.T) {
	slots := candidateSlots(2, "10:00")
	// Вместимость площадки могла уменьшиться после создания бронирований
	counts := map[types.TimeString]int{"10:00": 5}

	annotated := AnnotateSlots(slots, counts, nil)

	assert.Equal(t, 0, annotated[0].AvailableCourts)
	assert.Equal(t, 5, annotated[0].BookedCourts)
	assert.Equal(t, SlotStatusFull, annotated[0].Status)
}

func TestAnnotateSlots_SingleCourtVenue(t *testing.T) {
	slots := candidateSlots(1, "10:00", "10:30")
	counts := map[types.TimeString]int{"10:30": 1}

	annotated := AnnotateSlots(slots, counts, nil)

	// Один свободный корт на площадке с одним кортом - limited
	assert.Equal(t, SlotStatusLimited, annotated[0].Status)
	assert.Equal(t, SlotStatusFull, annotated[1].Status)
}
