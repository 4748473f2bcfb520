package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/Skotchmaster/shop_records/internal/cache"
	"github.com/Skotchmaster/shop_records/internal/es"
	"github.com/Skotchmaster/shop_records/internal/repo"
	"github.com/Skotchmaster/shop_records/internal/search"
	"github.com/Skotchmaster/shop_records/internal/seed"
	pkgdb "github.com/Skotchmaster/shop_records/pkg/db"
	"github.com/Skotchmaster/shop_records/pkg/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("notice: .env not loaded: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "load fixture rows into the shop database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "postgres URL or sqlite file",
				EnvVars: []string{"DATABASE_URL"},
				Value:   "shop.db",
			},
			&cli.StringFlag{
				Name:  "fixture",
				Usage: "embedded fixture name (bootstrap, demo)",
				Value: seed.DemoFixture,
			},
			&cli.StringFlag{
				Name:  "file",
				Usage: "read the fixture from a YAML file instead",
			},
			&cli.BoolFlag{
				Name:  "reset",
				Usage: "delete all rows before inserting",
			},
			&cli.BoolFlag{
				Name:  "only-empty",
				Usage: "skip tables that already have rows",
			},
			&cli.StringFlag{
				Name:    "redis-addr",
				Usage:   "record cache to purge on reset",
				EnvVars: []string{"REDIS_ADDR"},
			},
			&cli.StringFlag{
				Name:    "redis-password",
				EnvVars: []string{"REDIS_PASSWORD"},
			},
			&cli.IntFlag{
				Name:    "redis-db",
				EnvVars: []string{"REDIS_DB"},
			},
			&cli.StringFlag{
				Name:    "es-url",
				Usage:   "search index to rebuild after seeding",
				EnvVars: []string{"ES_URL"},
			},
			&cli.StringFlag{
				Name:    "es-user",
				EnvVars: []string{"ES_USER"},
			},
			&cli.StringFlag{
				Name:    "es-password",
				EnvVars: []string{"ES_PASSWORD"},
			},
			&cli.StringFlag{
				Name:    "es-index",
				EnvVars: []string{"ES_INDEX"},
				Value:   "shopitems",
			},
			&cli.StringFlag{
				Name:    "log-level",
				EnvVars: []string{"LOG_LEVEL"},
				Value:   "info",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	logger := logging.New(c.String("log-level")).With("cmd", "seed")
	ctx, cancel := context.WithTimeout(logging.IntoContext(c.Context, logger), time.Minute)
	defer cancel()

	fixture, err := loadFixture(c)
	if err != nil {
		return err
	}

	db, err := pkgdb.Open(ctx, c.String("database-url"))
	if err != nil {
		return err
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	repository := repo.New(db)
	if err := repository.Migrate(ctx); err != nil {
		return err
	}

	seeder := &seed.Seeder{Repo: repository}
	if addr := c.String("redis-addr"); addr != "" {
		rc := cache.New(addr, c.String("redis-password"), c.Int("redis-db"), 0)
		defer rc.Close()
		seeder.Cache = rc
	}
	var res seed.Result
	if c.Bool("reset") {
		res, err = seeder.Reset(ctx, fixture)
	} else {
		res, err = seeder.Apply(ctx, fixture, c.Bool("only-empty"))
	}
	if err != nil {
		return err
	}

	logger.Info("seed complete",
		"customers", res.Customers,
		"categories", res.Categories,
		"shop_items", res.ShopItems,
		"orders", res.Orders,
	)

	if url := c.String("es-url"); url != "" {
		esClient, err := es.NewClient(url, c.String("es-user"), c.String("es-password"))
		if err != nil {
			return err
		}
		items, err := repository.ShopItems.List(ctx)
		if err != nil {
			return err
		}
		index := &search.Index{ES: esClient, Name: c.String("es-index")}
		if err := index.Reindex(ctx, items); err != nil {
			return err
		}
		logger.Info("search index rebuilt", "index", index.Name, "items", len(items))
	}
	return nil
}

func loadFixture(c *cli.Context) (*seed.Fixture, error) {
	if path := c.String("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return seed.Parse(data)
	}
	return seed.Load(c.String("fixture"))
}
