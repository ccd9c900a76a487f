package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/localnerve/jam-build-appstore/internal/logging"
	"github.com/localnerve/jam-build-appstore/internal/testutil"
	"github.com/testcontainers/testcontainers-go"
	"go.uber.org/zap"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	var withRedis bool
	flag.BoolVar(&withRedis, "redis", true, "also start a redis cache")
	flag.Parse()

	usage := `
Run the appstore development containers (postgres, redis) with the environment
variables from the .env file. Prints the settings to export for the server.

Usage:

testcontainers [-h] [-f ENV_FILE_PATH] [-redis=false]

ENV_FILE_PATH: path to the .env file (POSTGRES_IMAGE, REDIS_IMAGE)

example
  testcontainers -f /path/to/something/.env
`
	// if -h flag print usage and return
	if showHelp {
		fmt.Println(usage)
		return
	}

	log := logging.NewOrNop(logging.Config{Level: "info", Development: true})
	defer func() { _ = log.Sync() }()

	if envFilename != "" {
		log.Info("loading environment variables", zap.String("file", envFilename))
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatal("failed to load environment variables", zap.Error(err))
		}
	} else {
		log.Info("no environment file specified, using current environment variables")
	}

	ctx := context.Background()
	var running []testcontainers.Container
	terminate := func() {
		for _, c := range running {
			if err := testcontainers.TerminateContainer(c); err != nil {
				log.Warn("failed to terminate container", zap.Error(err))
			}
		}
	}

	pg, pgCfg, err := testutil.RunPostgres(ctx)
	running = append(running, pg)
	if err != nil {
		terminate()
		log.Fatal("failed to create postgres container", zap.Error(err))
	}
	fmt.Printf("DB_TYPE=postgres\nDB_HOST=%s\nDB_PORT=%s\nDB_DATABASE=%s\nDB_USER=%s\nDB_PASSWORD=%s\n",
		pgCfg.Host, pgCfg.Port, pgCfg.Database, pgCfg.User, pgCfg.Password)

	if withRedis {
		rc, url, err := testutil.RunRedis(ctx)
		running = append(running, rc)
		if err != nil {
			terminate()
			log.Fatal("failed to create redis container", zap.Error(err))
		}
		fmt.Printf("CACHE_ENABLED=true\nREDIS_URL=%s\n", url)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGTSTP, syscall.SIGQUIT)

	sig := <-sigs
	log.Info("terminating test containers", zap.String("signal", sig.String()))
	terminate()
}
