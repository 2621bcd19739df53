package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/PlayCourt-BookingService/pkg/types"
)

// ResolveSlots (Schedule Resolver) разворачивает конфигурацию площадки
// в упорядоченный список слотов-кандидатов на календарную дату.
//
// Правила:
//   - при наличии переопределения дня недели используются его часы;
//     выключенное переопределение означает закрытую площадку (пустой список);
//   - слоты идут от открытия с шагом slot_duration + buffer;
//     слот включается, только если целиком помещается до закрытия;
//   - цена слота - пиковая, если час начала попадает в любой пиковый
//     интервал [start_hour, end_hour), иначе базовая.
//
// Результат детерминирован: одинаковые config и date всегда дают
// одинаковый список. Это канонический порядок для всех потребителей.
func ResolveSlots(cfg *VenueScheduleConfig, date time.Time) ([]Slot, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	open, openTime, closeTime := cfg.HoursForDate(date)
	if !open {
		return []Slot{}, nil
	}

	openMin, err := openTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: open time: %v", ErrConfigInvalid, err)
	}
	closeMin, err := closeTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: close time: %v", ErrConfigInvalid, err)
	}
	if openMin >= closeMin {
		return nil, fmt.Errorf("%w: open time %s is not before close time %s", ErrConfigInvalid, openTime, closeTime)
	}

	// Арифметика в минутах от полуночи, чтобы слот не мог "перешагнуть"
	// через границу суток при сложении времени
	step := cfg.SlotDurationMinutes + cfg.BufferMinutes

	slots := make([]Slot, 0)
	for startMin := openMin; startMin+cfg.SlotDurationMinutes <= closeMin; startMin += step {
		startTime := minutesToTimeString(startMin)
		price := cfg.PriceForHour(startMin / 60)

		slots = append(slots, Slot{
			StartTime:       startTime,
			DurationMinutes: cfg.SlotDurationMinutes,
			Price:           price,
			TotalCourts:     cfg.CourtCount,
			BookedCourts:    0,
			AvailableCourts: cfg.CourtCount,
			Status:          SlotStatusAvailable,
		})
	}

	return slots, nil
}

// FindSlot находит слот-кандидат по времени начала.
// Возвращает nil, если такого слота в расписании нет.
func FindSlot(slots []Slot, startTime types.TimeString) *Slot {
	for i := range slots {
		if slots[i].StartTime == startTime {
			return &slots[i]
		}
	}
	return nil
}

func minutesToTimeString(m int) types.TimeString {
	return types.TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60))
}
