package main

import (
	"database/sql"
	"flag"
	"log"

	"github.com/apextradecapital/SONATUR/app/config"
	"github.com/apextradecapital/SONATUR/app/database"
	"github.com/apextradecapital/SONATUR/app/models"
)

func main() {
	seed := flag.Bool("seed", false, "insert the demo inventory after migrating")
	flag.Parse()

	log.Println("Starting manual migration...")

	config.InitDB()
	db := config.GetDB()
	if db == nil {
		log.Fatal("Failed to get database instance")
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Migration failed:", err)
	}

	if *seed {
		seedParcels(db)
	}

	log.Println("Manual migration completed successfully!")
}

// seedParcels inserts the Ziniaré demo inventory. Existing IDs are skipped so
// the command stays re-runnable.
func seedParcels(db *sql.DB) {
	for _, p := range demoParcels() {
		p.Normalize()
		if err := p.Validate(); err != nil {
			log.Printf("Skipping %s: %v", p.ID, err)
			continue
		}
		if existing, err := database.GetParcelByID(db, p.ID); err == nil && existing != nil {
			log.Printf("Parcel %s already present, skipping", p.ID)
			continue
		}
		if err := database.InsertParcel(db, &p); err != nil {
			log.Printf("Error inserting %s: %v", p.ID, err)
		} else {
			log.Printf("Inserted parcel %s", p.ID)
		}
	}
}

func demoParcels() []models.Parcel {
	site := "ZINIARE_SILMIOUGOU"
	fee := int64(50000)
	return []models.Parcel{
		{ID: "PARCEL-1757171468136895", SiteCode: site, Category: "Habitation Ordinaire",
			Area: 374.23, PricePerM2: 6300, TotalPrice: 2357649, SubscriptionFee: fee,
			Description: "Zone: Habitation Ordinaire (L2), Section A, Lot 06", Status: models.ParcelAvailable},
		{ID: "PARCEL-1757171533503005", SiteCode: site, Category: "Habitation Ordinaire",
			Area: 247.67, PricePerM2: 6300, TotalPrice: 1560321, SubscriptionFee: fee,
			Description: "Zone: Habitation Ordinaire (L2), Section B, Lot 12", Status: models.ParcelAvailable},
		{ID: "PARCEL-1757171598634028", SiteCode: site, Category: "Habitation Angle",
			Area: 407.2, PricePerM2: 7650, TotalPrice: 3115080, SubscriptionFee: fee,
			Description: "Zone: Habitation Angle, Section C, Lot 01", Status: models.ParcelAvailable},
		{ID: "PARCEL-COMM-88293", SiteCode: site, Category: "Commerce Voie Non Bitumée",
			Area: 300, PricePerM2: 9900, TotalPrice: 2970000, SubscriptionFee: fee,
			Description: "Zone: Commerciale, Section D, Lot 04", Status: models.ParcelAvailable},
		{ID: "PARCEL-COMM-BITUME-99123", SiteCode: site, Category: "Commerce Voie Bitumée",
			Area: 450, PricePerM2: 15000, TotalPrice: 6750000, SubscriptionFee: fee,
			Description: "Zone: Commerciale Prestige, Façade Goudronnée, Section E, Lot 05", Status: models.ParcelReserved},
		{ID: "PARCEL-SOC-1758282910", SiteCode: site, Category: "Logement Social",
			Area: 240, PricePerM2: 3500, TotalPrice: 840000, SubscriptionFee: fee,
			Description: "Zone: Sociale, Section F, Lot 22", Status: models.ParcelAvailable},
		{ID: "PARCEL-SOC-EXT-223", SiteCode: site, Category: "Logement Social",
			Area: 300, PricePerM2: 3500, TotalPrice: 1050000, SubscriptionFee: fee,
			Description: "Zone: Sociale Extension, Section K, Lot 14", Status: models.ParcelAvailable},
		{ID: "PARCEL-RES-1759393921", SiteCode: site, Category: "Habitation Pan coupé",
			Area: 500, PricePerM2: 7000, TotalPrice: 3500000, SubscriptionFee: fee,
			Description: "Zone: Résidentielle (L3), Section G, Lot 08", Status: models.ParcelSold},
		{ID: "PARCEL-ART-28394", SiteCode: site, Category: "Zone Artisanale",
			Area: 400, PricePerM2: 5000, TotalPrice: 2000000, SubscriptionFee: fee,
			Description: "Zone: Artisanale, Section H, Lot 15", Status: models.ParcelAvailable},
		{ID: "PARCEL-IND-55920", SiteCode: site, Category: "Zone Industrielle",
			Area: 1000, PricePerM2: 4500, TotalPrice: 4500000, SubscriptionFee: fee,
			Description: "Zone: Industrielle, Section I, Lot 02", Status: models.ParcelAvailable},
		{ID: "PARCEL-RES-LUX-10293", SiteCode: site, Category: "Résidentiel Haut Standing",
			Area: 600, PricePerM2: 12000, TotalPrice: 7200000, SubscriptionFee: fee,
			Description: "Zone: Résidentielle (L1), Section J, Lot 09", Status: models.ParcelAvailable},
	}
}
