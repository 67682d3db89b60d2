package repositoryImp

import (
	"errors"
	"path/filepath"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"cropdoc/entities"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.sqlite")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&entities.Farm{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestFarmOwnershipScoping(t *testing.T) {
	db := openTestDB(t)
	repo := New(db)

	mine := &entities.Farm{UserID: "U1", Name: "mine"}
	theirs := &entities.Farm{UserID: "U2", Name: "theirs"}
	if err := repo.Create(mine); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(theirs); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := repo.FindByID(mine.FarmID, "U1"); err != nil {
		t.Fatalf("own farm: %v", err)
	}
	// someone else's farm id looks exactly like a missing farm
	if _, err := repo.FindByID(theirs.FarmID, "U1"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("foreign farm err = %v", err)
	}

	farms, err := repo.FindByUser("U1")
	if err != nil {
		t.Fatalf("FindByUser: %v", err)
	}
	if len(farms) != 1 || farms[0].Name != "mine" {
		t.Fatalf("FindByUser = %+v", farms)
	}
}

func TestFirstByUser(t *testing.T) {
	db := openTestDB(t)
	repo := New(db)

	if _, err := repo.FirstByUser("U1"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	a := &entities.Farm{UserID: "U1", Name: "first"}
	b := &entities.Farm{UserID: "U1", Name: "second"}
	_ = repo.Create(a)
	_ = repo.Create(b)

	f, err := repo.FirstByUser("U1")
	if err != nil {
		t.Fatalf("FirstByUser: %v", err)
	}
	if f.Name != "first" {
		t.Fatalf("got %s, want the oldest farm", f.Name)
	}
}
