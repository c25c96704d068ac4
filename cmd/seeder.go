package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/bizexpense/expense-manager/internal/catalog"
	expenseDatamodel "github.com/bizexpense/expense-manager/internal/core/datamodel/expense"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample expense records for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			if err := db.Exec("DELETE FROM business_expenses").Error; err != nil {
				log.Fatalf("failed to clear expenses: %v", err)
			}
			fmt.Println("Cleared existing expense records")
		}

		now := time.Now()
		detail := "Warehouse roof repair"

		samples := []expenseDatamodel.BusinessExpense{
			{
				ExpenseDoneBy:   "Stores Team",
				AmountINR:       15200.50,
				ExpenseCategory: string(catalog.CategoryMaterial),
				ExpenseType:     "Raw Material",
				ExpenseDate:     now.AddDate(0, 0, -2),
				ProfileRole:     string(catalog.RoleMaterials),
			},
			{
				ExpenseDoneBy:   "Dispatch Desk",
				AmountINR:       3400,
				ExpenseCategory: string(catalog.CategoryLogistics),
				ExpenseType:     "Courier",
				ExpenseDate:     now.AddDate(0, 0, -1),
				ProfileRole:     string(catalog.RoleLogistics),
			},
			{
				ExpenseDoneBy:   "HR",
				AmountINR:       86000,
				ExpenseCategory: string(catalog.CategoryPayroll),
				ExpenseType:     "Salary",
				ExpenseDate:     now.AddDate(0, 0, -5),
				ProfileRole:     string(catalog.RolePayroll),
			},
			{
				ExpenseDoneBy:     "Facilities",
				AmountINR:         1250.75,
				ExpenseCategory:   string(catalog.CategoryOther),
				ExpenseType:       "Miscellaneous",
				ExpenseTypeDetail: &detail,
				ExpenseDate:       now,
				ProfileRole:       string(catalog.RoleSuperAdmin),
			},
		}

		for i := range samples {
			samples[i].CreatedAt = now
			if err := db.Create(&samples[i]).Error; err != nil {
				log.Fatalf("failed to seed expense: %v", err)
			}
		}

		fmt.Printf("Seeded %d expense records\n", len(samples))
	},
}
