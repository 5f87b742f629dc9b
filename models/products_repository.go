package models

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductsRepository reads the catalog from a gorm database. The tables are
// seeded once at startup and only read afterwards.
type ProductsRepository struct {
	db *gorm.DB
}

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

// Migrate creates or updates the catalog tables.
func (r *ProductsRepository) Migrate() error {
	if err := r.db.AutoMigrate(&Category{}, &Product{}); err != nil {
		return pkgerrors.Wrap(err, "migrate catalog")
	}
	return nil
}

// Seed inserts the given rows, leaving rows that already exist untouched.
func (r *ProductsRepository) Seed(products []Product, categories []Category) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if len(categories) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&categories).Error; err != nil {
				return pkgerrors.Wrap(err, "seed categories")
			}
		}
		if len(products) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&products).Error; err != nil {
				return pkgerrors.Wrap(err, "seed products")
			}
		}
		return nil
	})
}

func (r *ProductsRepository) GetAllProducts() ([]Product, error) {
	var products []Product
	if err := r.db.
		Order("position ASC").
		Order("id ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductsRepository) GetByID(id string) (*Product, error) {
	var product Product
	if err := r.db.
		Where("id = ?", id).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err // Other DB error
	}
	return &product, nil
}

func (r *ProductsRepository) GetAllCategories() ([]Category, error) {
	var categories []Category
	if err := r.db.Order("id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
