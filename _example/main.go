package main

import (
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/hupe1980/slotmap"
)

func main() {
	size := 1_000_000

	m, err := slotmap.New[uint64, float64](
		slotmap.WithCapacity(1024),
		slotmap.WithLogger(slotmap.NewTextLogger(slog.LevelDebug)),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer m.Close()

	fmt.Println("--- Insert ---")
	fmt.Println("Size:", size)

	start := time.Now()
	for k := 0; k < size; k++ {
		if _, err := m.Set(uint64(k), float64(k)*0.5); err != nil {
			log.Fatal(err)
		}
	}
	fmt.Println("Elapsed:", time.Since(start))

	fmt.Println("--- Lookup ---")
	start = time.Now()
	hits := 0
	for k := 0; k < size; k++ {
		if _, ok := m.Get(uint64(k)); ok {
			hits++
		}
	}
	fmt.Println("Hits:", hits)
	fmt.Println("Elapsed:", time.Since(start))

	fmt.Println("--- Churn ---")
	start = time.Now()
	for k := 0; k < size; k += 2 {
		m.Delete(uint64(k))
	}
	for k := size; k < size+size/2; k++ {
		if _, err := m.Set(uint64(k), float64(k)); err != nil {
			log.Fatal(err)
		}
	}
	fmt.Println("Len:", m.Len(), "Range:", m.Range(), "Cap:", m.Cap())
	fmt.Println("Elapsed:", time.Since(start))
}
