// Package stream stops item producers at shutdown.
package stream

import "time"

// TakeUntil forwards items from src until stop or src is closed, then closes
// the returned channel. No item is forwarded once stop is closed, even if src
// has more ready.
func TakeUntil[T any](stop <-chan struct{}, src <-chan T) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		for {
			select {
			case <-stop:
				return
			case item, ok := <-src:
				if !ok {
					return
				}
				select {
				case <-stop:
					return
				default:
				}
				select {
				case out <- item:
				case <-stop:
					return
				}
			}
		}
	}()
	return out
}

// Ticks sends 1, 2, 3... every interval until stop is closed.
func Ticks(stop <-chan struct{}, interval time.Duration) <-chan int {
	out := make(chan int)
	go func() {
		defer close(out)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for n := 1; ; n++ {
			select {
			case <-ticker.C:
			case <-stop:
				return
			}
			select {
			case out <- n:
			case <-stop:
				return
			}
		}
	}()
	return out
}
