package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"rentalog/internal/blob"
	"rentalog/internal/models"
	"rentalog/internal/testutil"
)

func photo(name, contentType, body string) *Upload {
	return &Upload{
		Filename:    name,
		ContentType: contentType,
		Size:        int64(len(body)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(body)), nil
		},
	}
}

func TestCreateViolation(t *testing.T) {
	ctx := context.Background()

	t.Run("with_photo", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		store := blob.NewMemory("/uploads")
		svc := NewViolationService(db, store)

		agent := testutil.CreateTestUser(t, db, models.RoleAgent)
		admin := testutil.CreateTestUser(t, db, models.RolePKJ)
		rental := testutil.CreateTestRental(t, db, agent.Email)

		v, err := svc.CreateViolation(ctx, admin.Actor(), ViolationInput{
			RentalID:    rental.ID,
			Description: models.ViolationCatalog[0],
			Photo:       photo("Bukti.JPG", "image/jpeg", "jpeg-bytes"),
		})
		testutil.AssertNoError(t, err)

		if v.UploadedBy != admin.Email {
			t.Errorf("expected uploaded_by %s, got %s", admin.Email, v.UploadedBy)
		}
		if !strings.HasPrefix(v.PhotoKey, "violations/") || !strings.HasSuffix(v.PhotoKey, ".jpg") {
			t.Errorf("unexpected photo key %q", v.PhotoKey)
		}
		if v.PhotoURL == nil || *v.PhotoURL != "/uploads/"+v.PhotoKey {
			t.Errorf("unexpected photo url %v", v.PhotoURL)
		}
		if b, ok := store.Bytes(v.PhotoKey); !ok || string(b) != "jpeg-bytes" {
			t.Error("expected photo to be stored")
		}
	})

	t.Run("without_photo", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewViolationService(db, blob.NewMemory(""))

		admin := testutil.CreateTestUser(t, db, models.RolePKJ)
		rental := testutil.CreateTestRental(t, db, "agent@example.com")

		v, err := svc.CreateViolation(ctx, admin.Actor(), ViolationInput{RentalID: rental.ID, Description: "Merokok di lorong"})
		testutil.AssertNoError(t, err)
		if v.PhotoURL != nil || v.PhotoKey != "" {
			t.Errorf("expected no photo, got %+v", v)
		}
	})

	t.Run("non_image_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		store := blob.NewMemory("")
		svc := NewViolationService(db, store)

		admin := testutil.CreateTestUser(t, db, models.RolePKJ)
		rental := testutil.CreateTestRental(t, db, "agent@example.com")

		_, err := svc.CreateViolation(ctx, admin.Actor(), ViolationInput{
			RentalID:    rental.ID,
			Description: "x",
			Photo:       photo("notes.pdf", "application/pdf", "pdf"),
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		if store.Len() != 0 {
			t.Errorf("expected nothing stored, got %d blobs", store.Len())
		}
	})

	t.Run("description_required", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewViolationService(db, blob.NewMemory(""))

		admin := testutil.CreateTestUser(t, db, models.RolePKJ)
		rental := testutil.CreateTestRental(t, db, "agent@example.com")

		_, err := svc.CreateViolation(ctx, admin.Actor(), ViolationInput{RentalID: rental.ID, Description: "  "})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_rental", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewViolationService(db, blob.NewMemory(""))

		admin := testutil.CreateTestUser(t, db, models.RolePKJ)
		_, err := svc.CreateViolation(ctx, admin.Actor(), ViolationInput{RentalID: 42, Description: "x"})
		testutil.AssertAppError(t, err, "RENTAL_NOT_FOUND")
	})

	t.Run("db_failure_discards_photo", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		store := blob.NewMemory("")
		svc := NewViolationService(db, store)

		admin := testutil.CreateTestUser(t, db, models.RolePKJ)
		rental := testutil.CreateTestRental(t, db, "agent@example.com")
		testutil.FailCreatesOn(t, db, "violations", errors.New("disk full"))

		_, err := svc.CreateViolation(ctx, admin.Actor(), ViolationInput{
			RentalID:    rental.ID,
			Description: "x",
			Photo:       photo("a.png", "image/png", "png"),
		})
		testutil.AssertAppError(t, err, "INTERNAL_ERROR")
		if store.Len() != 0 {
			t.Errorf("expected uploaded photo removed, got %d blobs", store.Len())
		}
	})
}

func TestUpdateViolation(t *testing.T) {
	ctx := context.Background()

	t.Run("replace_photo_deletes_old_blob", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		store := blob.NewMemory("")
		svc := NewViolationService(db, store)

		admin := testutil.CreateTestUser(t, db, models.RolePKJ)
		rental := testutil.CreateTestRental(t, db, "agent@example.com")
		created, err := svc.CreateViolation(ctx, admin.Actor(), ViolationInput{
			RentalID: rental.ID, Description: "lama", Photo: photo("a.png", "image/png", "old"),
		})
		testutil.AssertNoError(t, err)
		oldKey := created.PhotoKey

		updated, err := svc.UpdateViolation(ctx, admin.Actor(), created.ID, ViolationInput{
			Description: "baru", Photo: photo("b.png", "image/png", "new"),
		})
		testutil.AssertNoError(t, err)

		if updated.Description != "baru" || updated.PhotoKey == oldKey {
			t.Errorf("unexpected violation after update %+v", updated)
		}
		if _, ok := store.Bytes(oldKey); ok {
			t.Error("expected old photo deleted")
		}
		if store.Len() != 1 {
			t.Errorf("expected 1 blob, got %d", store.Len())
		}
	})

	t.Run("remove_photo", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		store := blob.NewMemory("")
		svc := NewViolationService(db, store)

		admin := testutil.CreateTestUser(t, db, models.RolePKJ)
		rental := testutil.CreateTestRental(t, db, "agent@example.com")
		created, err := svc.CreateViolation(ctx, admin.Actor(), ViolationInput{
			RentalID: rental.ID, Description: "x", Photo: photo("a.png", "image/png", "old"),
		})
		testutil.AssertNoError(t, err)

		_, err = svc.UpdateViolation(ctx, admin.Actor(), created.ID, ViolationInput{Description: "x", RemovePhoto: true})
		testutil.AssertNoError(t, err)

		var stored models.Violation
		db.First(&stored, created.ID)
		if stored.PhotoURL != nil || stored.PhotoKey != "" {
			t.Errorf("expected photo cleared, got %+v", stored)
		}
		if store.Len() != 0 {
			t.Errorf("expected blob deleted, got %d", store.Len())
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewViolationService(db, blob.NewMemory(""))

		admin := testutil.CreateTestUser(t, db, models.RolePKJ)
		_, err := svc.UpdateViolation(ctx, admin.Actor(), 99, ViolationInput{Description: "x"})
		testutil.AssertAppError(t, err, "VIOLATION_NOT_FOUND")
	})
}

func TestDeleteViolation(t *testing.T) {
	ctx := context.Background()

	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	store := blob.NewMemory("")
	svc := NewViolationService(db, store)

	admin := testutil.CreateTestUser(t, db, models.RolePKJ)
	rental := testutil.CreateTestRental(t, db, "agent@example.com")
	created, err := svc.CreateViolation(ctx, admin.Actor(), ViolationInput{
		RentalID: rental.ID, Description: "x", Photo: photo("a.png", "image/png", "img"),
	})
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, svc.DeleteViolation(ctx, created.ID))
	if store.Len() != 0 {
		t.Errorf("expected photo deleted, got %d blobs", store.Len())
	}
	testutil.AssertAppError(t, svc.DeleteViolation(ctx, created.ID), "VIOLATION_NOT_FOUND")
}

func TestListViolations(t *testing.T) {
	ctx := context.Background()

	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewViolationService(db, blob.NewMemory(""))

	agent := testutil.CreateTestUser(t, db, models.RoleAgent)
	other := testutil.CreateTestUser(t, db, models.RoleAgent)
	admin := testutil.CreateTestUser(t, db, models.RolePKJ)
	own := testutil.CreateTestRental(t, db, agent.Email)
	foreign := testutil.CreateTestRental(t, db, other.Email)
	for _, id := range []uint{own.ID, own.ID, foreign.ID} {
		_, err := svc.CreateViolation(ctx, admin.Actor(), ViolationInput{RentalID: id, Description: "x"})
		testutil.AssertNoError(t, err)
	}

	t.Run("agent_sees_own_rentals", func(t *testing.T) {
		list, err := svc.ListViolations(ctx, agent.Actor(), nil)
		testutil.AssertNoError(t, err)
		if len(list) != 2 {
			t.Errorf("expected 2 violations, got %d", len(list))
		}
	})

	t.Run("admin_filters_by_rental", func(t *testing.T) {
		id := foreign.ID
		list, err := svc.ListViolations(ctx, admin.Actor(), &id)
		testutil.AssertNoError(t, err)
		if len(list) != 1 || list[0].RentalID != foreign.ID {
			t.Errorf("expected the foreign rental's violation, got %+v", list)
		}
	})

	t.Run("newest_first", func(t *testing.T) {
		list, err := svc.ListViolations(ctx, admin.Actor(), nil)
		testutil.AssertNoError(t, err)
		if len(list) != 3 || list[0].ID < list[2].ID {
			t.Errorf("expected newest first, got %+v", list)
		}
	})
}
