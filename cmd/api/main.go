package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"matterflow/db"
	"matterflow/matter"
	"matterflow/sla"
)

const defaultThresholdHours = 8

func main() {
	ctx := context.Background()

	pool, err := db.NewPool(ctx, os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("bootstrap database pool: %v", err)
	}
	defer pool.Close()

	thresholdHours := defaultThresholdHours
	if raw := os.Getenv("SLA_THRESHOLD_HOURS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			log.Fatalf("parse SLA_THRESHOLD_HOURS %q: %v", raw, err)
		}
		thresholdHours = parsed
	}

	evaluator, err := sla.NewEvaluator(time.Duration(thresholdHours) * time.Hour)
	if err != nil {
		log.Fatalf("configure SLA evaluator: %v", err)
	}

	repo := matter.NewRepository(pool)
	matterSvc := matter.NewService(repo, evaluator)
	statusSvc := matter.NewStatusService(pool)

	server := NewServer(matterSvc, statusSvc)

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	log.Printf("matterflow api listening on %s (SLA threshold %dh)", addr, thresholdHours)
	if err := http.ListenAndServe(addr, server.Routes()); err != nil {
		log.Fatalf("http server: %v", err)
	}
}
