package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/AlekSi/pointer"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	sandwichgo "github.com/franco-bianco/sandwich-go/sandwich-go"
	"github.com/franco-bianco/sandwich-go/spltoken/decimals"
	"github.com/franco-bianco/sandwich-go/store"
)

const (
	defaultNumBlocks = 5
	blockFetchLimit  = 30 * time.Second
)

func main() {
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})

	rpcURL := os.Getenv("SOLANA_RPC_URL")
	if rpcURL == "" {
		if apiKey := os.Getenv("HELIUS_API_KEY"); apiKey != "" {
			rpcURL = fmt.Sprintf("https://mainnet.helius-rpc.com/?api-key=%s", apiKey)
		}
	}
	if rpcURL == "" {
		log.Fatal("set SOLANA_RPC_URL or HELIUS_API_KEY")
	}

	numBlocks := defaultNumBlocks
	if v := os.Getenv("SANDWICH_NUM_BLOCKS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			log.Fatalf("invalid SANDWICH_NUM_BLOCKS %q", v)
		}
		numBlocks = n
	}

	ctx := context.Background()
	client := rpc.New(rpcURL)

	var patternStore store.PatternStore
	if dsn := os.Getenv("SANDWICH_DATABASE_URL"); dsn != "" {
		pg, err := store.NewPostgres(ctx, dsn)
		if err != nil {
			log.WithError(err).Fatal("failed to connect to postgres")
		}
		defer pg.Close()
		if err := pg.EnsureSchema(ctx); err != nil {
			log.WithError(err).Fatal("failed to ensure schema")
		}
		patternStore = pg
	}

	decimalsCache := decimals.NewCache(decimals.RPCResolver(client))

	latestSlot, err := client.GetSlot(ctx, rpc.CommitmentFinalized)
	if err != nil {
		log.WithError(err).Fatal("failed to fetch latest slot")
	}
	log.Infof("scanning %d blocks back from slot %d", numBlocks, latestSlot)

	for i := 0; i < numBlocks; i++ {
		slot := latestSlot - uint64(i)

		block, err := fetchBlock(ctx, client, slot)
		if err != nil {
			log.WithError(err).Warnf("failed to fetch block at slot %d", slot)
			continue
		}

		patterns := sandwichgo.AnalyzeBlock(ctx, block, decimalsCache, log)
		if len(patterns) == 0 {
			log.Infof("no sandwich patterns at slot %d", slot)
			continue
		}

		fmt.Printf("=== Found %d sandwich patterns at slot %d ===\n", len(patterns), slot)
		for _, p := range patterns {
			fmt.Println(p.Summary())
			fmt.Println("---")
		}

		if patternStore != nil {
			records := make([]store.PatternRecord, 0, len(patterns))
			for _, p := range patterns {
				records = append(records, store.RecordFromPattern(p))
			}
			if err := patternStore.Save(ctx, records); err != nil {
				log.WithError(err).Warnf("failed to save patterns for slot %d", slot)
			}
		}
	}
}

func fetchBlock(ctx context.Context, client *rpc.Client, slot uint64) (*rpc.GetBlockResult, error) {
	ctx, cancel := context.WithTimeout(ctx, blockFetchLimit)
	defer cancel()

	return client.GetBlockWithOpts(ctx, slot, &rpc.GetBlockOpts{
		Commitment:                     rpc.CommitmentFinalized,
		TransactionDetails:             rpc.TransactionDetailsFull,
		Rewards:                        pointer.ToBool(false),
		MaxSupportedTransactionVersion: pointer.ToUint64(0),
	})
}
