package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/littlelemon/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategoryInput struct {
	Name string `json:"name" binding:"required,max=100"`
}

type MenuInput struct {
	CategoryID  uint            `json:"category_id" binding:"required"`
	Title       string          `json:"title" binding:"required,max=100"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Image       string          `json:"image" binding:"max=255"`
}

// CatalogService serves categories and menu items.
type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

// ListCategories returns categories by name. withItems keeps only those that
// have at least one menu item.
func (s *CatalogService) ListCategories(ctx context.Context, withItems bool) ([]models.Category, error) {
	categories := []models.Category{}
	q := s.DB.WithContext(ctx).Order("name ASC, id ASC")
	if withItems {
		q = q.Where("EXISTS (?)", s.DB.Model(&models.Menu{}).Select("1").Where("menus.category_id = categories.id"))
	}
	if err := q.Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id uint) (models.Category, error) {
	var category models.Category
	if err := s.DB.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return category, notFoundError(ReasonCategoryNotFound, fmt.Sprintf("category %d not found", id))
		}
		return category, fmt.Errorf("load category %d: %w", id, err)
	}
	return category, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, in CategoryInput) (models.Category, error) {
	category := models.Category{Name: strings.TrimSpace(in.Name)}
	if err := s.DB.WithContext(ctx).Create(&category).Error; err != nil {
		return models.Category{}, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uint, in CategoryInput) (models.Category, error) {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return category, err
	}
	category.Name = strings.TrimSpace(in.Name)
	if err := s.DB.WithContext(ctx).Model(&category).Update("name", category.Name).Error; err != nil {
		return models.Category{}, fmt.Errorf("update category %d: %w", id, err)
	}
	return category, nil
}

// DeleteCategory removes a category and every menu item filed under it.
func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundError(ReasonCategoryNotFound, fmt.Sprintf("category %d not found", id))
			}
			return fmt.Errorf("load category %d: %w", id, err)
		}
		if err := tx.Where("category_id = ?", id).Delete(&models.Menu{}).Error; err != nil {
			return fmt.Errorf("delete menu items of category %d: %w", id, err)
		}
		if err := tx.Delete(&category).Error; err != nil {
			return fmt.Errorf("delete category %d: %w", id, err)
		}
		return nil
	})
}

// ListMenu returns menu items ordered by category then title, optionally
// restricted to one category.
func (s *CatalogService) ListMenu(ctx context.Context, categoryID uint) ([]models.Menu, error) {
	menus := []models.Menu{}
	q := s.DB.WithContext(ctx).
		Preload("Category").
		Joins("JOIN categories ON categories.id = menus.category_id").
		Order("categories.name ASC, menus.title ASC, menus.id ASC")
	if categoryID != 0 {
		q = q.Where("menus.category_id = ?", categoryID)
	}
	if err := q.Find(&menus).Error; err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}
	return menus, nil
}

func (s *CatalogService) GetMenu(ctx context.Context, id uint) (models.Menu, error) {
	var menu models.Menu
	if err := s.DB.WithContext(ctx).Preload("Category").First(&menu, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return menu, notFoundError(ReasonMenuNotFound, fmt.Sprintf("menu item %d not found", id))
		}
		return menu, fmt.Errorf("load menu item %d: %w", id, err)
	}
	return menu, nil
}

func (s *CatalogService) CreateMenu(ctx context.Context, in MenuInput) (models.Menu, error) {
	if err := checkPrice(in.Price); err != nil {
		return models.Menu{}, err
	}
	category, err := s.GetCategory(ctx, in.CategoryID)
	if err != nil {
		return models.Menu{}, err
	}

	menu := models.Menu{
		CategoryID:  category.ID,
		Title:       strings.TrimSpace(in.Title),
		Price:       in.Price.Round(2),
		Description: in.Description,
		Image:       in.Image,
	}
	if err := s.DB.WithContext(ctx).Omit(clause.Associations).Create(&menu).Error; err != nil {
		return models.Menu{}, fmt.Errorf("create menu item: %w", err)
	}
	menu.Category = category
	return menu, nil
}

func (s *CatalogService) UpdateMenu(ctx context.Context, id uint, in MenuInput) (models.Menu, error) {
	if err := checkPrice(in.Price); err != nil {
		return models.Menu{}, err
	}
	menu, err := s.GetMenu(ctx, id)
	if err != nil {
		return menu, err
	}
	category, err := s.GetCategory(ctx, in.CategoryID)
	if err != nil {
		return models.Menu{}, err
	}

	menu.CategoryID = category.ID
	menu.Category = category
	menu.Title = strings.TrimSpace(in.Title)
	menu.Price = in.Price.Round(2)
	menu.Description = in.Description
	menu.Image = in.Image
	if err := s.DB.WithContext(ctx).Model(&menu).Omit(clause.Associations).Updates(map[string]interface{}{
		"category_id": menu.CategoryID,
		"title":       menu.Title,
		"price":       menu.Price,
		"description": menu.Description,
		"image":       menu.Image,
	}).Error; err != nil {
		return models.Menu{}, fmt.Errorf("update menu item %d: %w", id, err)
	}
	return menu, nil
}

func (s *CatalogService) DeleteMenu(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Menu{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete menu item %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFoundError(ReasonMenuNotFound, fmt.Sprintf("menu item %d not found", id))
	}
	return nil
}

func checkPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return validationError(ReasonInvalidRequest, "price cannot be negative")
	}
	if price.GreaterThanOrEqual(decimal.New(1, 8)) {
		return validationError(ReasonInvalidRequest, "price must fit in 10 digits with 2 decimals")
	}
	return nil
}
