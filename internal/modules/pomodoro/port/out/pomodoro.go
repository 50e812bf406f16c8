package out

import "time"

type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type TickerFactory interface {
	NewTicker(interval time.Duration) Ticker
}
