package domain

import "github.com/m04kA/PlayCourt-BookingService/pkg/types"

// AnnotateSlots (Availability Aggregator) накладывает подтвержденные
// бронирования и блокировки на слоты-кандидаты.
//
// Функция чистая: одинаковые входы всегда дают одинаковый результат.
// Отсутствие данных о бронированиях слота означает полную доступность -
// никакой случайной "заполненности" здесь быть не может.
//
// Приоритет статусов: blocked > full (0 мест) > limited (1 место) > available.
// Заблокированный слот всегда отдается с нулевой доступностью,
// причина блокировки сохраняется как есть.
func AnnotateSlots(
	slots []Slot,
	bookedCountsByStart map[types.TimeString]int,
	blocksByStart map[types.TimeString]SlotBlock,
) []Slot {
	annotated := make([]Slot, len(slots))

	for i, slot := range slots {
		booked := bookedCountsByStart[slot.StartTime]

		available := slot.TotalCourts - booked
		if available < 0 {
			available = 0
		}

		slot.BookedCourts = booked
		slot.AvailableCourts = available

		if block, blocked := blocksByStart[slot.StartTime]; blocked {
			slot.AvailableCourts = 0
			slot.Status = SlotStatusBlocked
			slot.BlockReason = block.Reason
		} else {
			switch {
			case available == 0:
				slot.Status = SlotStatusFull
			case available == 1:
				slot.Status = SlotStatusLimited
			default:
				slot.Status = SlotStatusAvailable
			}
		}

		annotated[i] = slot
	}

	return annotated
}
