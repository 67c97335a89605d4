package tui

import (
	"strings"
	"time"

	"github.com/ZeeshanAK/my-availability-app/internal/app"
	"github.com/ZeeshanAK/my-availability-app/internal/domain"
)

// Option configures a Model at construction time.
type Option func(*Model)

// WithWeekStart sets the weekday shown in the grid's first column.
func WithWeekStart(day time.Weekday) Option {
	return func(m *Model) {
		if day >= time.Sunday && day <= time.Saturday {
			m.weekStart = day
		}
	}
}

// WithShareBase sets the base URL share links are built against.
func WithShareBase(base string) Option {
	return func(m *Model) {
		if base = strings.TrimSpace(base); base != "" {
			m.shareBase = base
		}
	}
}

// WithInitialDate opens the calendar focused on the given date instead of
// today.
func WithInitialDate(day domain.Date) Option {
	return func(m *Model) {
		if day.Valid() {
			m.setFocus(day)
		}
	}
}

// WithFeed subscribes the model to a change feed. Every event triggers a
// fresh snapshot load; events carry no data of their own.
func WithFeed(feed *app.Feed) Option {
	return func(m *Model) {
		if feed == nil {
			return
		}
		m.events, m.cancelFeed = feed.Subscribe()
	}
}

// WithKeyConfig applies configured key overrides to the default bindings.
func WithKeyConfig(cfg KeyConfig) Option {
	return func(m *Model) {
		m.keys.applyConfig(cfg)
	}
}
