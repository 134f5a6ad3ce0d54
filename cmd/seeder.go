package cmd

import (
	"fmt"
	"log"

	"github.com/lawateaditya/Stock-Management/internal"
	"github.com/lawateaditya/Stock-Management/internal/auth"
	catalogDatamodel "github.com/lawateaditya/Stock-Management/internal/core/datamodel/catalog"
	ledgerDatamodel "github.com/lawateaditya/Stock-Management/internal/core/datamodel/ledger"
	userDatamodel "github.com/lawateaditya/Stock-Management/internal/core/datamodel/user"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long: `Seed the database with sample data for development and testing purposes.
Seeded accounts all use the password Password@123 except the super admin.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{
			TranslateError: true,
		})
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"issue_entries", "inward_entries", "items", "suppliers", "user_sessions"} {
				if err := gormDB.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			if err := gormDB.Exec("DELETE FROM users WHERE email <> ?", auth.SuperAdminEmail).Error; err != nil {
				log.Fatalf("failed to clear users: %v", err)
			}
			fmt.Println("Cleared existing data")
		}

		superHash, _ := bcrypt.GenerateFromPassword([]byte(auth.SuperAdminPassword), cfg.Security.BCryptCost)
		sampleHash, _ := bcrypt.GenerateFromPassword([]byte("Password@123"), cfg.Security.BCryptCost)

		users := []userDatamodel.User{
			{UserID: internal.NewID("user"), Email: auth.SuperAdminEmail, Name: auth.SuperAdminName, PasswordHash: string(superHash), Role: auth.RoleSuperAdmin.String(), IsActive: true},
			{UserID: internal.NewID("user"), Email: "manager@inventory.com", Name: "Store Manager", PasswordHash: string(sampleHash), Role: auth.RoleAdmin.String(), IsActive: true},
			{UserID: internal.NewID("user"), Email: "storekeeper@inventory.com", Name: "Store Keeper", PasswordHash: string(sampleHash), Role: auth.RoleInwardUser.String(), IsActive: true},
			{UserID: internal.NewID("user"), Email: "issuer@inventory.com", Name: "Floor Issuer", PasswordHash: string(sampleHash), Role: auth.RoleIssuerUser.String(), IsActive: true},
		}
		for i := range users {
			err := gormDB.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "email"}},
				DoNothing: true,
			}).Create(&users[i]).Error
			if err != nil {
				log.Fatalf("failed to seed user %s: %v", users[i].Email, err)
			}
			fmt.Println("Seeded user:", users[i].Email)
		}

		var superAdmin userDatamodel.User
		if err := gormDB.Where("email = ?", auth.SuperAdminEmail).First(&superAdmin).Error; err != nil {
			log.Fatalf("failed to look up super admin: %v", err)
		}

		items := []catalogDatamodel.Item{
			{ItemCode: "ITM-001", ItemName: "Steel Rod 12mm", Category: "Raw Material", UOM: "kg", ItemRate: 52.50, CreatedBy: superAdmin.UserID},
			{ItemCode: "ITM-002", ItemName: "Copper Wire 2.5sqmm", Category: "Electrical", UOM: "m", ItemRate: 18.75, CreatedBy: superAdmin.UserID},
			{ItemCode: "ITM-003", ItemName: "Hydraulic Oil 68", Category: "Consumable", UOM: "l", ItemRate: 240, CreatedBy: superAdmin.UserID},
		}
		for i := range items {
			err := gormDB.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "item_code"}},
				DoNothing: true,
			}).Create(&items[i]).Error
			if err != nil {
				log.Fatalf("failed to seed item %s: %v", items[i].ItemCode, err)
			}
			fmt.Println("Seeded item:", items[i].ItemCode)
		}

		suppliers := []catalogDatamodel.Supplier{
			{SupplierID: "SUP-001", SupplierName: "Apex Metals Pvt Ltd", ContactPerson: "R. Sharma", Email: "sales@apexmetals.example", Phone: "+91-9811000001", Country: "India", State: "Maharashtra", City: "Pune", Address: "Plot 14, MIDC Bhosari", Pincode: "411026", CreatedBy: superAdmin.UserID},
			{SupplierID: "SUP-002", SupplierName: "Volt Electricals", ContactPerson: "K. Iyer", Email: "orders@voltelectricals.example", Phone: "+91-9811000002", Country: "India", State: "Karnataka", City: "Bengaluru", Address: "22 Industrial Layout", Pincode: "560058", CreatedBy: superAdmin.UserID},
		}
		for i := range suppliers {
			err := gormDB.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "supplier_id"}},
				DoNothing: true,
			}).Create(&suppliers[i]).Error
			if err != nil {
				log.Fatalf("failed to seed supplier %s: %v", suppliers[i].SupplierID, err)
			}
			fmt.Println("Seeded supplier:", suppliers[i].SupplierID)
		}

		// fixed entry ids keep re-runs from duplicating ledger rows
		inwardEntries := []ledgerDatamodel.InwardEntry{
			{EntryID: "inward_5eed00000001", Date: "2025-01-06", ItemCode: "ITM-001", ItemDescription: "Steel Rod 12mm", InwardQty: 500, InwardRate: 52.50, InwardValue: 26250, Supplier: "SUP-001", RefNo: "GRN-2025-0001", CreatedBy: superAdmin.UserID},
			{EntryID: "inward_5eed00000002", Date: "2025-01-08", ItemCode: "ITM-002", ItemDescription: "Copper Wire 2.5sqmm", InwardQty: 1200, InwardRate: 18.75, InwardValue: 22500, Supplier: "SUP-002", RefNo: "GRN-2025-0002", CreatedBy: superAdmin.UserID},
		}
		for i := range inwardEntries {
			err := gormDB.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "entry_id"}},
				DoNothing: true,
			}).Create(&inwardEntries[i]).Error
			if err != nil {
				log.Fatalf("failed to seed inward entry %s: %v", inwardEntries[i].EntryID, err)
			}
		}

		issueEntries := []ledgerDatamodel.IssueEntry{
			{EntryID: "issue_5eed00000001", Date: "2025-01-10", ItemCode: "ITM-001", ItemDescription: "Steel Rod 12mm", IssuedQty: 120, CreatedBy: superAdmin.UserID},
		}
		for i := range issueEntries {
			err := gormDB.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "entry_id"}},
				DoNothing: true,
			}).Create(&issueEntries[i]).Error
			if err != nil {
				log.Fatalf("failed to seed issue entry %s: %v", issueEntries[i].EntryID, err)
			}
		}

		fmt.Println("Sample ledger entries seeded successfully")
	},
}
