package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}

	if err := db.Exec(`CREATE TABLE IF NOT EXISTS "products" (
		"id" TEXT PRIMARY KEY, "name" TEXT NOT NULL UNIQUE, "category" TEXT NOT NULL,
		"price" NUMERIC NOT NULL, "image_thumbnail" TEXT, "image_mobile" TEXT,
		"image_tablet" TEXT, "image_desktop" TEXT, "position" INTEGER DEFAULT 0,
		"created_at" DATETIME, "updated_at" DATETIME
	)`).Error; err != nil {
		t.Fatal(err)
	}
	return db
}

func TestProductBeforeCreateGeneratesUUID(t *testing.T) {
	db := setupTestDB(t)
	p := Product{Name: "Waffle", Category: "Waffle", Price: decimal.RequireFromString("6.50")}

	if err := db.Create(&p).Error; err != nil {
		t.Fatal(err)
	}
	if p.ID == uuid.Nil {
		t.Error("expected UUID to be generated")
	}
}

func TestProductBeforeCreateKeepsExistingUUID(t *testing.T) {
	db := setupTestDB(t)
	id := uuid.New()
	p := Product{ID: id, Name: "Cake", Category: "Cake", Price: decimal.RequireFromString("4.50")}

	if err := db.Create(&p).Error; err != nil {
		t.Fatal(err)
	}
	if p.ID != id {
		t.Errorf("expected ID %s to be kept, got %s", id, p.ID)
	}
}

func TestLineTotal(t *testing.T) {
	item := CartLineItem{Product: Product{Name: "Waffle", Price: decimal.RequireFromString("6.50")}, Quantity: 3}

	if got := item.LineTotal(); !got.Equal(decimal.RequireFromString("19.50")) {
		t.Errorf("expected 19.50, got %s", got)
	}
}

func TestSnapshotFind(t *testing.T) {
	snap := CartSnapshot{Items: []CartLineItem{
		{Product: Product{Name: "Waffle"}, Quantity: 2},
	}}

	if item, ok := snap.Find("Waffle"); !ok || item.Quantity != 2 {
		t.Errorf("expected Waffle x2, got %+v %v", item, ok)
	}
	if _, ok := snap.Find("Cake"); ok {
		t.Error("expected Cake to be absent")
	}
	if snap.IsEmpty() {
		t.Error("expected non-empty snapshot")
	}
}

func TestNewOrderSummary(t *testing.T) {
	at := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	snap := CartSnapshot{
		Items: []CartLineItem{
			{Product: Product{Name: "Waffle", Price: decimal.RequireFromString("6.50"), Image: ProductImage{Thumbnail: "t.jpg", Mobile: "m.jpg"}}, Quantity: 2},
			{Product: Product{Name: "Cake", Price: decimal.RequireFromString("4.50"), Image: ProductImage{Mobile: "cake.jpg"}}, Quantity: 1},
		},
		Total: decimal.RequireFromString("17.50"),
		Count: 3,
	}

	order := NewOrderSummary(snap, at)

	if order.ID == uuid.Nil {
		t.Error("expected order ID")
	}
	if !order.ConfirmedAt.Equal(at) || order.Count != 3 || !order.Total.Equal(snap.Total) {
		t.Errorf("unexpected order header %+v", order)
	}
	if len(order.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(order.Lines))
	}
	if order.Lines[0].Image != "m.jpg" {
		t.Errorf("expected mobile image, got %q", order.Lines[0].Image)
	}
	if order.Lines[1].Image != "cake.jpg" {
		t.Errorf("expected mobile image, got %q", order.Lines[1].Image)
	}
	if !order.Lines[0].LineTotal.Equal(decimal.RequireFromString("13.00")) {
		t.Errorf("expected line total 13.00, got %s", order.Lines[0].LineTotal)
	}
}
