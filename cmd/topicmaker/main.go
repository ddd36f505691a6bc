package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dsmarket/product-service/config"
	"github.com/dsmarket/product-service/pkg/sigctx"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

const (
	partitions        = 3
	replicationFactor = 3
)

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()

	cl := createClient(cfg.Broker.SeedBrokers)
	defer cl.Close()

	start := time.Now()
	fmt.Println("creating topics...")

	err := makeTopics(sigCtx, cl, cfg.Broker.StockEventsTopic)
	if err != nil {
		fmt.Printf("failed to create topics: %v\n", err)
		return
	}

	fmt.Printf("completed in %v\n", time.Since(start))
}

func createClient(seedBrokers []string) *kadm.Client {
	cl, err := kadm.NewOptClient(
		kgo.SeedBrokers(seedBrokers...),
	)
	if err != nil {
		panic(err) // develop mistake
	}
	return cl
}

func makeTopics(
	ctx context.Context, cl *kadm.Client, topics ...string,
) error {
	cleanupPolicy := "delete"
	minISR := "1"

	config := map[string]*string{
		"cleanup.policy":      &cleanupPolicy,
		"min.insync.replicas": &minISR,
	}

	res, err := cl.CreateTopics(
		ctx, partitions, replicationFactor, config, topics...,
	)
	if err != nil {
		return err
	}

	for _, r := range res.Sorted() {
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("topic %q: %w", r.Topic, r.Err)
		}
		fmt.Printf("topic %q is ready\n", r.Topic)
	}
	return nil
}
