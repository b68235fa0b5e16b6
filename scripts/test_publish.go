//go:build ignore

// Публикует тестовое событие в stream:geocode:cache и ждёт, пока воркер его подтвердит.
//
//	go run scripts/test_publish.go -redis localhost:6380 -group geocode-cache-workers
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/place-resolver/internal/domain"
	"github.com/redis/go-redis/v9"
)

func main() {
	redisAddr := flag.String("redis", "localhost:6380", "Redis address for streams")
	group := flag.String("group", "geocode-cache-workers", "Worker consumer group")
	lat := flag.Float64("lat", 14.5849, "Latitude")
	lon := flag.Float64("lon", 121.0563, "Longitude")
	name := flag.String("name", "SM Megamall", "Place name")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	event := domain.GeocodeCacheEvent{
		Place: domain.Place{
			Name:    *name,
			Address: "EDSA cor. Julia Vargas Ave, Mandaluyong",
			Lat:     *lat,
			Lon:     *lon,
			Source:  domain.SourceGoogle,
		},
		ResolvedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: domain.StreamGeocodeCache,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published\n")
	fmt.Printf("   Stream: %s\n", domain.StreamGeocodeCache)
	fmt.Printf("   Message ID: %s\n", id)
	fmt.Printf("   Place: %s (%.6f, %.6f)\n", event.Place.Name, event.Place.Lat, event.Place.Lon)

	fmt.Printf("\nWaiting for group %q to acknowledge...\n", *group)

	timeout := time.After(30 * time.Second)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("Timeout: message was not acknowledged, is the worker running?")
			return
		case <-ticker.C:
			groups, err := client.XInfoGroups(ctx, domain.StreamGeocodeCache).Result()
			if err != nil {
				continue
			}
			for _, g := range groups {
				if g.Name != *group {
					continue
				}
				pending, err := client.XPendingExt(ctx, &redis.XPendingExtArgs{
					Stream: domain.StreamGeocodeCache,
					Group:  g.Name,
					Start:  id,
					End:    id,
					Count:  1,
				}).Result()
				if err != nil {
					continue
				}
				// Доставлено и не висит в pending - значит подтверждено
				if g.LastDeliveredID >= id && len(pending) == 0 {
					fmt.Println("Acknowledged by worker")
					return
				}
			}
		}
	}
}
