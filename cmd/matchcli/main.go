package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"jobradar/internal/app"
	"jobradar/internal/config"
)

func main() {
	skillsArg := flag.String("skills", "", "comma-separated profile skills")
	location := flag.String("location", "", "job location filter")
	timeout := flag.Duration("timeout", 3*time.Minute, "overall run deadline")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	c, err := app.NewContainer(cfg)
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}
	defer c.Close()

	skills := splitSkills(*skillsArg)
	if len(skills) == 0 {
		log.Fatalf("provide -skills, e.g. -skills \"excel,customer service,pos systems\"")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	report, err := c.Usecase.ScrapeAndMatch(ctx, skills, strings.TrimSpace(*location))
	if err != nil {
		log.Fatalf("match run failed: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		log.Fatalf("encode report: %v", err)
	}

	for _, se := range report.SourceErrors {
		log.Printf("source %s failed: %s", se.Source, se.Reason)
	}
}

func splitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
