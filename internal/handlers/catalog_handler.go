package handlers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-pos/internal/audit"
	"github.com/BruksfildServices01/salon-pos/internal/domain/money"
	"github.com/BruksfildServices01/salon-pos/internal/httperr"
	"github.com/BruksfildServices01/salon-pos/internal/infra/repository"
	"github.com/BruksfildServices01/salon-pos/internal/middleware"
	"github.com/BruksfildServices01/salon-pos/internal/models"
	"github.com/BruksfildServices01/salon-pos/internal/usecase/inventory"
)

// ======================================================
// STYLISTS
// ======================================================

type StylistRequest struct {
	Name        *string   `json:"name"`
	Specialties *[]string `json:"specialties"`
	Available   *bool     `json:"available"`
	Phone       *string   `json:"phone"`
	Email       *string   `json:"email"`
}

func (r StylistRequest) apply(s *models.Stylist) error {
	if r.Name != nil {
		if strings.TrimSpace(*r.Name) == "" {
			return httperr.ErrBusinessMsg("invalid_request", "name is required")
		}
		s.Name = strings.TrimSpace(*r.Name)
	}
	if r.Specialties != nil {
		s.Specialties = *r.Specialties
	}
	if r.Available != nil {
		s.Available = *r.Available
	}
	if r.Phone != nil {
		s.Phone = *r.Phone
	}
	if r.Email != nil {
		s.Email = strings.ToLower(strings.TrimSpace(*r.Email))
	}
	return nil
}

func NewStylistHandler(db *gorm.DB, audit *audit.Dispatcher) *CrudHandler[models.Stylist] {
	return &CrudHandler[models.Stylist]{
		entity:        "stylist",
		repo:          repository.NewCrud[models.Stylist](db, "stylist", repository.BreaksInOrder),
		audit:         audit,
		searchColumns: []string{"name"},
		idOf:          func(s *models.Stylist) uint { return s.ID },
		create: func(c *gin.Context, salonID uint) (*models.Stylist, error) {
			var req StylistRequest
			if err := bindBody(c, &req); err != nil {
				return nil, err
			}
			if req.Name == nil {
				return nil, httperr.ErrBusinessMsg("invalid_request", "name is required")
			}
			s := &models.Stylist{SalonID: salonID, Available: true, Specialties: []string{}}
			return s, req.apply(s)
		},
		patch: func(c *gin.Context) (func(*models.Stylist) error, error) {
			var req StylistRequest
			if err := bindBody(c, &req); err != nil {
				return nil, err
			}
			return req.apply, nil
		},
	}
}

// ======================================================
// CLIENTS
// ======================================================

type ClientRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
	Notes *string `json:"notes"`
}

func (r ClientRequest) apply(cl *models.Client) error {
	if r.Name != nil {
		if strings.TrimSpace(*r.Name) == "" {
			return httperr.ErrBusinessMsg("invalid_request", "name is required")
		}
		cl.Name = strings.TrimSpace(*r.Name)
	}
	if r.Phone != nil {
		cl.Phone = *r.Phone
	}
	if r.Email != nil {
		cl.Email = strings.ToLower(strings.TrimSpace(*r.Email))
	}
	if r.Notes != nil {
		cl.Notes = *r.Notes
	}
	return nil
}

// Spending totals are maintained by checkout and are read-only here.
func NewClientHandler(db *gorm.DB, audit *audit.Dispatcher) *CrudHandler[models.Client] {
	return &CrudHandler[models.Client]{
		entity:        "client",
		repo:          repository.NewCrud[models.Client](db, "client"),
		audit:         audit,
		searchColumns: []string{"name", "phone", "email"},
		idOf:          func(cl *models.Client) uint { return cl.ID },
		create: func(c *gin.Context, salonID uint) (*models.Client, error) {
			var req ClientRequest
			if err := bindBody(c, &req); err != nil {
				return nil, err
			}
			if req.Name == nil {
				return nil, httperr.ErrBusinessMsg("invalid_request", "name is required")
			}
			cl := &models.Client{SalonID: salonID}
			return cl, req.apply(cl)
		},
		patch: func(c *gin.Context) (func(*models.Client) error, error) {
			var req ClientRequest
			if err := bindBody(c, &req); err != nil {
				return nil, err
			}
			return req.apply, nil
		},
	}
}

// ======================================================
// SERVICE COLLECTIONS
// ======================================================

type CollectionRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (r CollectionRequest) apply(col *models.ServiceCollection) error {
	if r.Name != nil {
		if strings.TrimSpace(*r.Name) == "" {
			return httperr.ErrBusinessMsg("invalid_request", "name is required")
		}
		col.Name = strings.TrimSpace(*r.Name)
	}
	if r.Description != nil {
		col.Description = *r.Description
	}
	return nil
}

func NewCollectionHandler(db *gorm.DB, audit *audit.Dispatcher) *CrudHandler[models.ServiceCollection] {
	return &CrudHandler[models.ServiceCollection]{
		entity: "collection",
		repo:   repository.NewCrud[models.ServiceCollection](db, "collection"),
		audit:  audit,
		idOf:   func(col *models.ServiceCollection) uint { return col.ID },
		create: func(c *gin.Context, salonID uint) (*models.ServiceCollection, error) {
			var req CollectionRequest
			if err := bindBody(c, &req); err != nil {
				return nil, err
			}
			if req.Name == nil {
				return nil, httperr.ErrBusinessMsg("invalid_request", "name is required")
			}
			col := &models.ServiceCollection{SalonID: salonID}
			return col, req.apply(col)
		},
		patch: func(c *gin.Context) (func(*models.ServiceCollection) error, error) {
			var req CollectionRequest
			if err := bindBody(c, &req); err != nil {
				return nil, err
			}
			return req.apply, nil
		},
	}
}

// ======================================================
// SERVICES
// ======================================================

type ServiceRequest struct {
	Name         *string       `json:"name"`
	Description  *string       `json:"description"`
	DurationMin  *int          `json:"duration_min"`
	Price        *money.Amount `json:"price"`
	Active       *bool         `json:"active"`
	CollectionID *uint         `json:"collection_id"`
}

func (r ServiceRequest) apply(s *models.Service) error {
	if r.Name != nil {
		if strings.TrimSpace(*r.Name) == "" {
			return httperr.ErrBusinessMsg("invalid_request", "name is required")
		}
		s.Name = strings.TrimSpace(*r.Name)
	}
	if r.Description != nil {
		s.Description = *r.Description
	}
	if r.DurationMin != nil {
		if *r.DurationMin <= 0 {
			return httperr.ErrBusinessMsg("invalid_request", "duration_min must be positive")
		}
		s.DurationMin = *r.DurationMin
	}
	if r.Price != nil {
		if *r.Price < 0 {
			return httperr.ErrBusinessMsg("invalid_request", "price cannot be negative")
		}
		s.Price = *r.Price
	}
	if r.Active != nil {
		s.Active = *r.Active
	}
	if r.CollectionID != nil {
		if *r.CollectionID == 0 {
			s.CollectionID = nil
		} else {
			id := *r.CollectionID
			s.CollectionID = &id
		}
	}
	return nil
}

func NewServiceHandler(db *gorm.DB, audit *audit.Dispatcher) *CrudHandler[models.Service] {
	collections := repository.NewCrud[models.ServiceCollection](db, "collection")

	// checkCollection rejects a collection id from another salon.
	checkCollection := func(ctx context.Context, salonID uint, id *uint) error {
		if id == nil || *id == 0 {
			return nil
		}
		_, err := collections.Get(ctx, salonID, *id)
		return err
	}

	return &CrudHandler[models.Service]{
		entity:        "service",
		repo:          repository.NewCrud[models.Service](db, "service"),
		audit:         audit,
		searchColumns: []string{"name", "description"},
		idOf:          func(s *models.Service) uint { return s.ID },
		create: func(c *gin.Context, salonID uint) (*models.Service, error) {
			var req ServiceRequest
			if err := bindBody(c, &req); err != nil {
				return nil, err
			}
			if req.Name == nil || req.DurationMin == nil || req.Price == nil {
				return nil, httperr.ErrBusinessMsg("invalid_request", "name, duration_min and price are required")
			}
			if err := checkCollection(c.Request.Context(), salonID, req.CollectionID); err != nil {
				return nil, err
			}
			s := &models.Service{SalonID: salonID, Active: true}
			return s, req.apply(s)
		},
		patch: func(c *gin.Context) (func(*models.Service) error, error) {
			var req ServiceRequest
			if err := bindBody(c, &req); err != nil {
				return nil, err
			}
			if err := checkCollection(c.Request.Context(), middleware.SalonID(c), req.CollectionID); err != nil {
				return nil, err
			}
			return req.apply, nil
		},
	}
}

// ======================================================
// PRODUCTS
// ======================================================

type ProductRequest struct {
	Name    *string       `json:"name"`
	HSNCode *string       `json:"hsn_code"`
	Unit    *string       `json:"unit"`
	Price   *money.Amount `json:"price"`
	Stock   *float64      `json:"stock"`
}

func (r ProductRequest) apply(p *models.Product) error {
	if r.Name != nil {
		if strings.TrimSpace(*r.Name) == "" {
			return httperr.ErrBusinessMsg("invalid_request", "name is required")
		}
		p.Name = strings.TrimSpace(*r.Name)
	}
	if r.HSNCode != nil {
		p.HSNCode = strings.TrimSpace(*r.HSNCode)
	}
	if r.Unit != nil {
		p.Unit = inventory.StandardizeUnit(*r.Unit)
	}
	if r.Price != nil {
		if *r.Price < 0 {
			return httperr.ErrBusinessMsg("invalid_request", "price cannot be negative")
		}
		p.Price = *r.Price
	}
	if r.Stock != nil {
		p.Stock = inventory.FixFloat(*r.Stock)
	}
	return nil
}

func NewProductHandler(db *gorm.DB, audit *audit.Dispatcher) *CrudHandler[models.Product] {
	return &CrudHandler[models.Product]{
		entity:        "product",
		repo:          repository.NewCrud[models.Product](db, "product"),
		audit:         audit,
		searchColumns: []string{"name", "hsn_code"},
		idOf:          func(p *models.Product) uint { return p.ID },
		create: func(c *gin.Context, salonID uint) (*models.Product, error) {
			var req ProductRequest
			if err := bindBody(c, &req); err != nil {
				return nil, err
			}
			if req.Name == nil {
				return nil, httperr.ErrBusinessMsg("invalid_request", "name is required")
			}
			p := &models.Product{SalonID: salonID}
			return p, req.apply(p)
		},
		patch: func(c *gin.Context) (func(*models.Product) error, error) {
			var req ProductRequest
			if err := bindBody(c, &req); err != nil {
				return nil, err
			}
			return req.apply, nil
		},
	}
}
