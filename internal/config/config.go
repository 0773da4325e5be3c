// Package config loads the demo driver's runtime parameters: ring
// shape, participant counts, ARC stress sizing, and the demo's own
// environment (development vs production, for telemetry).
package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds everything cmd/ringbufdemo needs to size its workload.
type Config struct {
	Env string

	RingCount        int
	RingCapacity     int
	Producers        int
	Consumers        int
	ItemsPerProducer int

	ArcLoaders    int
	ArcStorers    int
	ArcLoadIters  int
	ArcStoreIters int

	MetricsAddr string
}

// Load reads an optional .env file, then binds RINGBUF_-prefixed
// environment variables over a set of defaults sized for a quick local
// run rather than a sustained benchmark.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables only")
	}

	viper.SetEnvPrefix("RINGBUF")
	viper.AutomaticEnv()

	viper.SetDefault("ENV", "development")
	viper.SetDefault("RING_COUNT", 4)
	viper.SetDefault("RING_CAPACITY", 64)
	viper.SetDefault("PRODUCERS", 4)
	viper.SetDefault("CONSUMERS", 4)
	viper.SetDefault("ITEMS_PER_PRODUCER", 2000)
	viper.SetDefault("ARC_LOADERS", 6)
	viper.SetDefault("ARC_STORERS", 2)
	viper.SetDefault("ARC_LOAD_ITERS", 5000)
	viper.SetDefault("ARC_STORE_ITERS", 500)
	viper.SetDefault("METRICS_ADDR", ":9090")

	return &Config{
		Env:              viper.GetString("ENV"),
		RingCount:        viper.GetInt("RING_COUNT"),
		RingCapacity:     viper.GetInt("RING_CAPACITY"),
		Producers:        viper.GetInt("PRODUCERS"),
		Consumers:        viper.GetInt("CONSUMERS"),
		ItemsPerProducer: viper.GetInt("ITEMS_PER_PRODUCER"),
		ArcLoaders:       viper.GetInt("ARC_LOADERS"),
		ArcStorers:       viper.GetInt("ARC_STORERS"),
		ArcLoadIters:     viper.GetInt("ARC_LOAD_ITERS"),
		ArcStoreIters:    viper.GetInt("ARC_STORE_ITERS"),
		MetricsAddr:      viper.GetString("METRICS_ADDR"),
	}
}
