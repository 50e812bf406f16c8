package out

import (
	"time"

	pomodoroout "studysphere/internal/modules/pomodoro/port/out"
)

type SystemTickerFactory struct{}

func NewSystemTickerFactory() pomodoroout.TickerFactory {
	return SystemTickerFactory{}
}

func (SystemTickerFactory) NewTicker(interval time.Duration) pomodoroout.Ticker {
	return systemTicker{ticker: time.NewTicker(interval)}
}

type systemTicker struct {
	ticker *time.Ticker
}

func (t systemTicker) C() <-chan time.Time { return t.ticker.C }
func (t systemTicker) Stop()               { t.ticker.Stop() }
