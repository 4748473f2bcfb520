package seed

import (
	"context"
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/Skotchmaster/shop_records/internal/config"
	"github.com/Skotchmaster/shop_records/internal/models"
	"github.com/Skotchmaster/shop_records/internal/repo"
	"github.com/Skotchmaster/shop_records/internal/service"
	"github.com/Skotchmaster/shop_records/pkg/logging"
)

//go:embed fixtures/*.yaml
var fixtures embed.FS

const (
	BootstrapFixture = "bootstrap"
	DemoFixture      = "demo"
)

type Fixture struct {
	Customers []struct {
		Name    string `yaml:"name"`
		Surname string `yaml:"surname"`
		Email   string `yaml:"email"`
	} `yaml:"customers"`
	Categories []struct {
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
	} `yaml:"categories"`
	ShopItems []struct {
		Title       string  `yaml:"title"`
		Description string  `yaml:"description"`
		Price       float64 `yaml:"price"`
	} `yaml:"shop_items"`
	Orders []struct {
		Customer int `yaml:"customer"`
	} `yaml:"orders"`
}

// Result counts the rows inserted per table.
type Result struct {
	Customers  int `json:"customers"`
	Categories int `json:"categories"`
	ShopItems  int `json:"shop_items"`
	Orders     int `json:"orders"`
}

func (r Result) Total() int {
	return r.Customers + r.Categories + r.ShopItems + r.Orders
}

func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	for i, o := range f.Orders {
		if o.Customer < 0 || o.Customer >= len(f.Customers) {
			return nil, fmt.Errorf("parse fixture: order %d references customer %d of %d", i, o.Customer, len(f.Customers))
		}
	}
	return &f, nil
}

// Load reads one of the embedded fixtures by name.
func Load(name string) (*Fixture, error) {
	data, err := fixtures.ReadFile("fixtures/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("unknown fixture %q: %w", name, err)
	}
	return Parse(data)
}

// Purger drops cached records of one resource.
type Purger interface {
	Purge(ctx context.Context, resource string) error
}

type Seeder struct {
	Repo *repo.GormRepo
	// Cache is optional. Reset purges it so rows removed by the reset are not served from it.
	Cache Purger
}

var cachedResources = []string{
	service.CustomerResource,
	service.CategoryResource,
	service.ShopItemResource,
	service.OrderResource,
}

// Bootstrap creates missing tables and then seeds according to mode.
// SeedAlways inserts the bootstrap rows on every call, so repeated startups duplicate them.
// SeedOnce only fills tables that are still empty.
func (s *Seeder) Bootstrap(ctx context.Context, mode string) (Result, error) {
	l := logging.FromContext(ctx).With("svc", "seed.bootstrap", "mode", mode)

	if err := s.Repo.Migrate(ctx); err != nil {
		return Result{}, err
	}
	if mode == config.SeedOff {
		l.Info("seed_skipped")
		return Result{}, nil
	}

	f, err := Load(BootstrapFixture)
	if err != nil {
		return Result{}, err
	}
	res, err := s.Apply(ctx, f, mode == config.SeedOnce)
	if err != nil {
		return Result{}, err
	}
	l.Info("seed_done", "inserted", res.Total())
	return res, nil
}

// Apply inserts the fixture in one transaction. With onlyEmpty, tables that already
// hold rows are left alone.
func (s *Seeder) Apply(ctx context.Context, f *Fixture, onlyEmpty bool) (Result, error) {
	var res Result

	err := s.Repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := repo.New(tx)

		fill := func(t interface {
			Count(context.Context) (int64, error)
		}) (bool, error) {
			if !onlyEmpty {
				return true, nil
			}
			n, err := t.Count(ctx)
			return n == 0, err
		}

		customerIDs := make([]uint, 0, len(f.Customers))
		ok, err := fill(r.Customers)
		if err != nil {
			return err
		}
		if ok {
			for _, c := range f.Customers {
				rec := models.Customer{Name: ptr(c.Name), Surname: ptr(c.Surname), Email: ptr(c.Email)}
				if err := r.Customers.Insert(ctx, &rec); err != nil {
					return fmt.Errorf("insert customer: %w", err)
				}
				customerIDs = append(customerIDs, rec.ID)
			}
			res.Customers = len(customerIDs)
		}

		if ok, err = fill(r.Categories); err != nil {
			return err
		} else if ok {
			for _, c := range f.Categories {
				rec := models.ShopItemCategory{Title: ptr(c.Title), Description: ptr(c.Description)}
				if err := r.Categories.Insert(ctx, &rec); err != nil {
					return fmt.Errorf("insert category: %w", err)
				}
				res.Categories++
			}
		}

		if ok, err = fill(r.ShopItems); err != nil {
			return err
		} else if ok {
			for _, it := range f.ShopItems {
				rec := models.ShopItem{Title: ptr(it.Title), Description: ptr(it.Description), Price: ptr(it.Price)}
				if err := r.ShopItems.Insert(ctx, &rec); err != nil {
					return fmt.Errorf("insert shop item: %w", err)
				}
				res.ShopItems++
			}
		}

		// orders point at customers inserted above; skip them when customers were skipped
		if len(customerIDs) == 0 {
			return nil
		}
		if ok, err = fill(r.Orders); err != nil {
			return err
		} else if ok {
			for _, o := range f.Orders {
				rec := models.Order{CustomerID: ptr(customerIDs[o.Customer])}
				if err := r.Orders.Insert(ctx, &rec); err != nil {
					return fmt.Errorf("insert order: %w", err)
				}
				res.Orders++
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

// Reset empties every table, purges the cache and then applies the fixture.
func (s *Seeder) Reset(ctx context.Context, f *Fixture) (Result, error) {
	if err := s.Repo.Clear(ctx); err != nil {
		return Result{}, err
	}
	if s.Cache != nil {
		for _, resource := range cachedResources {
			if err := s.Cache.Purge(ctx, resource); err != nil {
				return Result{}, fmt.Errorf("purge %s cache: %w", resource, err)
			}
		}
	}
	return s.Apply(ctx, f, false)
}

func ptr[T any](v T) *T {
	return &v
}
