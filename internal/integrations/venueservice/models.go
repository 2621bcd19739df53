package venueservice

import (
	"time"

	"github.com/m04kA/PlayCourt-BookingService/internal/domain"
	"github.com/m04kA/PlayCourt-BookingService/pkg/types"
)

// Venue модель площадки из VenueService
type Venue struct {
	ID         int64          `json:"id"`
	Name       string         `json:"name"`
	City       string         `json:"city"`
	SportType  string         `json:"sport_type"`
	ManagerIDs []int64        `json:"manager_ids"`
	Schedule   ScheduleConfig `json:"schedule"`
}

// ScheduleConfig конфигурация расписания площадки (как отдает VenueService)
type ScheduleConfig struct {
	OpenTime            string        `json:"open_time"`  // "07:00"
	CloseTime           string        `json:"close_time"` // "23:00"
	SlotDurationMinutes int           `json:"slot_duration_minutes"`
	BufferMinutes       int           `json:"buffer_minutes"`
	CourtCount          int           `json:"court_count"`
	BasePrice           float64       `json:"base_price"`
	PeakPrice           *float64      `json:"peak_price,omitempty"`
	PeakWindows         []PeakWindow  `json:"peak_windows,omitempty"`
	DayOverrides        *DayOverrides `json:"day_overrides,omitempty"`
}

// PeakWindow часовой интервал пикового тарифа [start_hour, end_hour)
type PeakWindow struct {
	StartHour int `json:"start_hour"`
	EndHour   int `json:"end_hour"`
}

// DayOverrides переопределения расписания по дням недели
type DayOverrides struct {
	Monday    *DayOverride `json:"monday,omitempty"`
	Tuesday   *DayOverride `json:"tuesday,omitempty"`
	Wednesday *DayOverride `json:"wednesday,omitempty"`
	Thursday  *DayOverride `json:"thursday,omitempty"`
	Friday    *DayOverride `json:"friday,omitempty"`
	Saturday  *DayOverride `json:"saturday,omitempty"`
	Sunday    *DayOverride `json:"sunday,omitempty"`
}

// DayOverride переопределение рабочих часов для конкретного дня недели.
// enabled=false означает, что площадка закрыта в этот день.
type DayOverride struct {
	Enabled   bool   `json:"enabled"`
	OpenTime  string `json:"open_time,omitempty"`
	CloseTime string `json:"close_time,omitempty"`
}

// ErrorResponse модель ошибки от VenueService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// IsManager проверяет, что пользователь является менеджером площадки
func (v *Venue) IsManager(userID int64) bool {
	for _, id := range v.ManagerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// ToDomainConfig конвертирует конфигурацию из формата VenueService в доменную
// модель с валидацией на границе. Переопределения по дням недели переводятся
// из именованных JSON полей в map с ключом time.Weekday.
func (v *Venue) ToDomainConfig() (*domain.VenueScheduleConfig, error) {
	cfg := &domain.VenueScheduleConfig{
		VenueID:             v.ID,
		OpenTime:            types.TimeString(v.Schedule.OpenTime),
		CloseTime:           types.TimeString(v.Schedule.CloseTime),
		SlotDurationMinutes: v.Schedule.SlotDurationMinutes,
		BufferMinutes:       v.Schedule.BufferMinutes,
		CourtCount:          v.Schedule.CourtCount,
		BasePrice:           v.Schedule.BasePrice,
		PeakPrice:           v.Schedule.PeakPrice,
	}

	for _, w := range v.Schedule.PeakWindows {
		cfg.PeakWindows = append(cfg.PeakWindows, domain.PeakWindow{
			StartHour: w.StartHour,
			EndHour:   w.EndHour,
		})
	}

	if v.Schedule.DayOverrides != nil {
		cfg.DayOverrides = make(map[time.Weekday]domain.DaySchedule)
		overridesByDay := map[time.Weekday]*DayOverride{
			time.Monday:    v.Schedule.DayOverrides.Monday,
			time.Tuesday:   v.Schedule.DayOverrides.Tuesday,
			time.Wednesday: v.Schedule.DayOverrides.Wednesday,
			time.Thursday:  v.Schedule.DayOverrides.Thursday,
			time.Friday:    v.Schedule.DayOverrides.Friday,
			time.Saturday:  v.Schedule.DayOverrides.Saturday,
			time.Sunday:    v.Schedule.DayOverrides.Sunday,
		}
		for day, override := range overridesByDay {
			if override == nil {
				continue
			}
			cfg.DayOverrides[day] = domain.DaySchedule{
				Enabled:   override.Enabled,
				OpenTime:  types.TimeString(override.OpenTime),
				CloseTime: types.TimeString(override.CloseTime),
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
