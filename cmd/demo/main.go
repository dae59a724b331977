// Command demo fills the configured store with a sample week so the grid
// has something to lay out.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"tableflip.dev/weekplan/pkg/app"
	"tableflip.dev/weekplan/pkg/store"
	"tableflip.dev/weekplan/pkg/task"
)

func main() {
	settings, err := store.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	p, err := store.Load(settings)
	if err != nil {
		log.Fatal(err)
	}
	svc := app.New(p, settings)

	ctx := context.Background()
	start := svc.WeekOf(task.DateOf(time.Now()))
	for _, d := range app.DemoWeek(start) {
		t, err := svc.CreateTask(ctx, d)
		if err != nil {
			log.Fatalf("seeding %q: %v", d.Name, err)
		}
		fmt.Println(t.ID, t.String())
	}
}
