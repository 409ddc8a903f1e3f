// Command seed fills a database with a demo salon, its owner and a
// randomised catalog.
package main

import (
	"flag"
	"log"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-pos/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-pos/internal/db"
	"github.com/BruksfildServices01/salon-pos/internal/domain/money"
	"github.com/BruksfildServices01/salon-pos/internal/models"
)

var serviceMenu = []struct {
	collection string
	name       string
	minutes    int
	rupees     int64
}{
	{"Hair", "Haircut", 30, 400},
	{"Hair", "Hair Spa", 60, 1500},
	{"Hair", "Global Colour", 120, 3500},
	{"Skin", "Cleanup", 45, 900},
	{"Skin", "Facial", 60, 1800},
	{"Nails", "Manicure", 45, 700},
	{"Nails", "Pedicure", 45, 800},
}

var specialties = []string{"cut", "colour", "styling", "skin", "nails", "bridal"}

func main() {
	slug := flag.String("slug", "demo-salon", "salon slug")
	email := flag.String("email", "owner@demo-salon.in", "owner login")
	password := flag.String("password", "demo1234", "owner password")
	stylists := flag.Int("stylists", 4, "stylists to create")
	clients := flag.Int("clients", 25, "clients to create")
	products := flag.Int("products", 12, "products to create")
	seed := flag.Uint64("seed", 42, "faker seed")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	db := dbpkg.NewDB(cfg)
	faker := gofakeit.New(*seed)

	err = db.Transaction(func(tx *gorm.DB) error {
		salon := models.Salon{
			Name:     "Demo Salon",
			Slug:     *slug,
			Phone:    faker.Phone(),
			Address:  faker.Street() + ", " + faker.City(),
			Timezone: cfg.Rules.Timezone,
		}
		if err := tx.Create(&salon).Error; err != nil {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		owner := models.User{
			SalonID:      salon.ID,
			Name:         faker.Name(),
			Email:        strings.ToLower(*email),
			PasswordHash: string(hash),
			Role:         "owner",
		}
		if err := tx.Omit("Salon").Create(&owner).Error; err != nil {
			return err
		}

		collections := map[string]uint{}
		for _, item := range serviceMenu {
			id, ok := collections[item.collection]
			if !ok {
				col := models.ServiceCollection{SalonID: salon.ID, Name: item.collection}
				if err := tx.Create(&col).Error; err != nil {
					return err
				}
				id = col.ID
				collections[item.collection] = id
			}
			svc := models.Service{
				SalonID:      salon.ID,
				Name:         item.name,
				DurationMin:  item.minutes,
				Price:        money.Rupees(item.rupees),
				Active:       true,
				CollectionID: &id,
			}
			if err := tx.Create(&svc).Error; err != nil {
				return err
			}
		}

		for i := 0; i < *stylists; i++ {
			st := models.Stylist{
				SalonID:     salon.ID,
				Name:        faker.FirstName() + " " + faker.LastName(),
				Specialties: pick(faker, specialties, 2),
				Available:   true,
				Phone:       faker.Phone(),
			}
			if err := tx.Create(&st).Error; err != nil {
				return err
			}
		}

		for i := 0; i < *clients; i++ {
			cl := models.Client{
				SalonID: salon.ID,
				Name:    faker.Name(),
				Phone:   faker.Phone(),
				Email:   strings.ToLower(faker.Email()),
			}
			if err := tx.Create(&cl).Error; err != nil {
				return err
			}
		}

		for i := 0; i < *products; i++ {
			p := models.Product{
				SalonID: salon.ID,
				Name:    faker.ProductName(),
				HSNCode: faker.Numerify("3305####"),
				Unit:    faker.RandomString([]string{"BTL", "PCS", "JAR", "BOX"}),
				Price:   money.FromFloat(faker.Price(150, 2500)),
				Stock:   float64(faker.IntRange(0, 40)),
			}
			if err := tx.Create(&p).Error; err != nil {
				return err
			}
		}

		log.Printf("seeded salon id=%d slug=%s owner=%s stylists=%d clients=%d products=%d",
			salon.ID, salon.Slug, owner.Email, *stylists, *clients, *products)
		return nil
	})
	if err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func pick(f *gofakeit.Faker, from []string, n int) []string {
	out := make([]string, 0, n)
	seen := map[string]bool{}
	for len(out) < n && len(seen) < len(from) {
		s := f.RandomString(from)
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
