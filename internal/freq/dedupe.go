package freq

import (
	"fmt"
	"strings"

	redisbloom "github.com/RedisBloom/redisbloom-go"

	"github.com/codemix-nlp/codemix/config"
)

const (
	dedupeCapacity  = 1_000_000
	dedupeErrorRate = 0.01
)

// Deduper drops lines already seen in a previous shard, so retweets and
// reposted lines only count once.
type Deduper interface {
	Seen(line string) (bool, error)
}

type LineDeduper struct {
	client *redisbloom.Client
	filter string
}

func NewLineDeduper(cfg *config.RedisConfig, filter string) (*LineDeduper, error) {
	client := redisbloom.NewClient(cfg.Host, "", nil)
	if err := client.Reserve(filter, dedupeErrorRate, dedupeCapacity); err != nil {
		// the filter survives across runs on purpose
		if !strings.Contains(err.Error(), "exists") {
			return nil, fmt.Errorf("could not reserve dedupe filter: %w", err)
		}
	}
	return &LineDeduper{
		client: client,
		filter: filter,
	}, nil
}

// Seen marks line as seen and reports whether it already was. Bloom
// lookups can report false positives at the configured error rate, which
// for counting duplicates means slightly undercounting.
func (d *LineDeduper) Seen(line string) (bool, error) {
	added, err := d.client.Add(d.filter, line)
	if err != nil {
		return false, fmt.Errorf("failed to update dedupe filter: %w", err)
	}
	return !added, nil
}
