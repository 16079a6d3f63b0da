package database

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/littlelemon/models"
	"github.com/yeremiapane/littlelemon/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedCategories = []string{
	"Entradas",
	"Platos Principales",
	"Postres",
	"Bebidas",
	"Ensaladas",
}

var seedTables = []struct {
	Name  string
	Seats int
}{
	{"Mesa 1", 2},
	{"Mesa 2", 2},
	{"Mesa 3", 4},
	{"Mesa 4", 4},
	{"Mesa 5", 6},
	{"Mesa 6", 6},
	{"Mesa 7", 8},
	{"Mesa VIP", 10},
}

var seedMenu = []struct {
	Title       string
	Price       string
	Description string
	Category    string
}{
	{"Bruschetta", "8.50", "Pan tostado con tomate fresco, albahaca y aceite de oliva", "Entradas"},
	{"Ensalada Caprese", "9.00", "Tomate, mozzarella fresca y albahaca", "Entradas"},
	{"Calamares Fritos", "12.00", "Anillos de calamar crujientes con salsa tártara", "Entradas"},
	{"Pizza Margherita", "14.50", "Salsa de tomate, mozzarella y albahaca fresca", "Platos Principales"},
	{"Pasta Carbonara", "15.00", "Pasta con panceta, huevo y queso parmesano", "Platos Principales"},
	{"Risotto de Hongos", "16.50", "Arroz arborio con hongos variados", "Platos Principales"},
	{"Salmón a la Parrilla", "22.00", "Filete de salmón con vegetales asados", "Platos Principales"},
	{"Filete Mignon", "28.00", "Filete de res con papas y salsa de vino", "Platos Principales"},
	{"Tiramisú", "7.50", "Clásico postre italiano con café y mascarpone", "Postres"},
	{"Panna Cotta", "6.50", "Crema italiana con coulis de frutos rojos", "Postres"},
	{"Cheesecake", "7.00", "Tarta de queso con base de galleta", "Postres"},
	{"Limonada Natural", "4.00", "Limonada fresca hecha en casa", "Bebidas"},
	{"Agua Mineral", "3.00", "Agua con o sin gas", "Bebidas"},
	{"Vino Tinto Copa", "8.00", "Selección de vinos tintos", "Bebidas"},
	{"Café Espresso", "3.50", "Café italiano auténtico", "Bebidas"},
	{"Ensalada César", "10.00", "Lechuga romana, crutones, parmesano y aderezo césar", "Ensaladas"},
	{"Ensalada Griega", "9.50", "Tomate, pepino, cebolla, aceitunas y queso feta", "Ensaladas"},
}

const (
	demoEmail    = "demo@littlelemon.com"
	demoPassword = "demo123"
)

// Seed loads the demo catalog, floor plan and demo account. Rows that already
// exist are left alone, so it can run on every start.
func Seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		categories := make(map[string]models.Category, len(seedCategories))
		for _, name := range seedCategories {
			var category models.Category
			if err := tx.Where(models.Category{Name: name}).FirstOrCreate(&category).Error; err != nil {
				return fmt.Errorf("seed category %q: %w", name, err)
			}
			categories[name] = category
		}

		for _, t := range seedTables {
			var table models.Table
			err := tx.Where("name = ?", t.Name).First(&table).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("seed table %q: %w", t.Name, err)
			}
			table = models.Table{Name: t.Name, Seats: t.Seats, Available: true}
			if err := tx.Create(&table).Error; err != nil {
				return fmt.Errorf("seed table %q: %w", t.Name, err)
			}
		}

		for _, item := range seedMenu {
			var count int64
			if err := tx.Model(&models.Menu{}).Where("title = ?", item.Title).Count(&count).Error; err != nil {
				return fmt.Errorf("seed menu %q: %w", item.Title, err)
			}
			if count > 0 {
				continue
			}
			menu := models.Menu{
				CategoryID:  categories[item.Category].ID,
				Title:       item.Title,
				Price:       decimal.RequireFromString(item.Price),
				Description: item.Description,
			}
			if err := tx.Omit("Category").Create(&menu).Error; err != nil {
				return fmt.Errorf("seed menu %q: %w", item.Title, err)
			}
		}

		var demo models.User
		err := tx.Where("email = ?", demoEmail).First(&demo).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			hashed, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash demo password: %w", err)
			}
			demo = models.User{Name: "Usuario Demo", Email: demoEmail, Password: string(hashed), Role: models.RoleCustomer}
			if err := tx.Create(&demo).Error; err != nil {
				return fmt.Errorf("seed demo user: %w", err)
			}
		} else if err != nil {
			return fmt.Errorf("seed demo user: %w", err)
		}

		utils.InfoLogger.WithFields(map[string]interface{}{
			"categories": len(seedCategories),
			"tables":     len(seedTables),
			"menu_items": len(seedMenu),
		}).Info("seed data loaded")
		return nil
	})
}
