// Command refresh publishes refresh commands to the trade-refresh topic so an
// operator can prefetch a period, or force a re-fetch for one that a partially
// failed run left looking complete.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/peter9889466/midori-view-sub000/internal/domain"
)

type catalog struct {
	Products  []domain.Product `json:"products"`
	Countries []domain.Country `json:"countries"`
}

type refreshCommand struct {
	Period    string           `json:"period"`
	Products  []domain.Product `json:"products"`
	Countries []domain.Country `json:"countries"`
	Force     bool             `json:"force"`
}

func main() {
	var (
		period      = flag.String("period", "", "period to refresh, YYYY.MM")
		catalogPath = flag.String("catalog", "catalog.json", "path to the products/countries catalog")
		brokers     = flag.String("brokers", "localhost:9092", "comma-separated kafka brokers")
		topic       = flag.String("topic", "trade-refresh", "refresh topic")
		force       = flag.Bool("force", false, "re-fetch even if the period is already cached")
	)
	flag.Parse()

	if *period == "" || !domain.ValidPeriod(*period) {
		log.Fatalf("period must be YYYY.MM, got %q", *period)
	}

	cat, err := loadCatalog(*catalogPath)
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}
	if len(cat.Products) == 0 || len(cat.Countries) == 0 {
		log.Fatalf("catalog %s must list products and countries", *catalogPath)
	}

	payload, err := json.Marshal(refreshCommand{
		Period:    *period,
		Products:  cat.Products,
		Countries: cat.Countries,
		Force:     *force,
	})
	if err != nil {
		log.Fatalf("marshal command: %v", err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(*brokers, ",")...),
		Topic:        *topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}
	defer writer.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(*period),
		Value: payload,
	}); err != nil {
		log.Fatalf("publish: %v", err)
	}

	fmt.Printf("refresh command published: period=%s products=%d countries=%d force=%v\n",
		*period, len(cat.Products), len(cat.Countries), *force)
}

func loadCatalog(path string) (catalog, error) {
	var cat catalog
	data, err := os.ReadFile(path)
	if err != nil {
		return cat, err
	}
	if err := json.Unmarshal(data, &cat); err != nil {
		return cat, err
	}
	return cat, nil
}
