package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"
)

// Finds owners that have a next_map_ key but no running travelling_ timer.
// Those are journeys whose timer lapsed but whose resolution never ran to
// completion (for example a crash between the timer expiring and the arrival
// being persisted). The server retries these on its own; this script just
// reports them, and clears them with -clear when a row was deleted manually.
func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	doClear := len(os.Args) > 1 && os.Args[1] == "-clear"

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	fmt.Println("Connected to Redis:", redisURL)
	fmt.Println("Scanning for stranded travels...")

	iter := client.Scan(ctx, 0, "next_map_*", 0).Iterator()

	var stranded []string
	var checkedCount int

	for iter.Next(ctx) {
		key := iter.Val()
		checkedCount++

		owner := strings.TrimPrefix(key, "next_map_")
		ttl, err := client.TTL(ctx, "travelling_"+owner).Result()
		if err != nil {
			fmt.Printf("Error reading timer for %s: %v\n", owner, err)
			continue
		}

		if ttl <= 0 {
			dest, _ := client.Get(ctx, key).Result()
			fmt.Printf("Stranded: owner %s, pending destination %s\n", owner, dest)
			stranded = append(stranded, owner)
		}
	}
	if err := iter.Err(); err != nil {
		log.Fatal("Scan failed:", err)
	}

	fmt.Printf("Checked %d pending destinations, %d stranded\n", checkedCount, len(stranded))

	if !doClear || len(stranded) == 0 {
		return
	}

	fmt.Println("Clearing stranded keys...")
	for _, owner := range stranded {
		keys := []string{
			"travelling_" + owner,
			"exploring_" + owner,
			"next_map_" + owner,
			"status_" + owner,
		}
		if err := client.Del(ctx, keys...).Err(); err != nil {
			fmt.Printf("Error clearing %s: %v\n", owner, err)
			continue
		}
		fmt.Println("Cleared", owner)
	}
}
