package bootstrap

import (
	"testdrive-hub/internal/domain/calendar"
	"testdrive-hub/internal/domain/testdrive"
	"testdrive-hub/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		NewRules,
		NewCalendarSettings,
	),
)

func NewRules(cfg config.Config) testdrive.Rules {
	return testdrive.Rules{
		Location:       cfg.Booking.Location(),
		MinLeadTime:    cfg.Booking.MinLeadTime,
		MaxHorizonDays: cfg.Booking.MaxHorizonDays,
	}
}

func NewCalendarSettings(cfg config.Config) calendar.Settings {
	return calendar.Settings{
		ProdID:         cfg.Booking.CalendarProdID,
		UIDHost:        cfg.Booking.CalendarUIDHost,
		TimeZone:       cfg.Booking.Location(),
		SellerLocation: cfg.Booking.SellerLocation,
		OfficeLocation: cfg.Booking.OfficeLocation,
		PublicLocation: cfg.Booking.PublicLocation,
	}
}
