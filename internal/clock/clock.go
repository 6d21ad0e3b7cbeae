package clock

import (
	"fmt"
	"time"
	_ "time/tzdata" // зона магазина не должна зависеть от tzdata хоста
)

// Clock возвращает текущее время в часовом поясе магазина
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// New создает часы для указанного часового пояса (например, "Asia/Yerevan")
func New(timezone string) (*Clock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("clock: load timezone %q: %w", timezone, err)
	}
	return NewFunc(loc, time.Now), nil
}

// NewFixed часы с фиксированным "сейчас" (для тестов)
func NewFixed(now time.Time) *Clock {
	return NewFunc(now.Location(), func() time.Time { return now })
}

// NewFunc часы с внешним источником времени
func NewFunc(loc *time.Location, now func() time.Time) *Clock {
	return &Clock{loc: loc, now: now}
}

// Now возвращает текущее время в зоне магазина
func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

// Location часовой пояс магазина
func (c *Clock) Location() *time.Location {
	return c.loc
}

// StartOfDay локальная полночь дня, в который попадает t
func (c *Clock) StartOfDay(t time.Time) time.Time {
	t = t.In(c.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.loc)
}

// Today локальная полночь текущего дня
func (c *Clock) Today() time.Time {
	return c.StartOfDay(c.Now())
}

// DayBounds возвращает [полночь дня, полночь следующего дня)
// AddDate, а не Add(24h), чтобы дни с переходом на летнее время имели верную длину
func (c *Clock) DayBounds(day time.Time) (time.Time, time.Time) {
	start := c.StartOfDay(day)
	return start, start.AddDate(0, 0, 1)
}

// ParseDate разбирает YYYY-MM-DD как локальную дату магазина
func (c *Clock) ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", value, c.loc)
}
