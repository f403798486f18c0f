package handlers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "rentalog/internal/errors"
	"rentalog/internal/models"
	"rentalog/internal/services"
)

type mockViolationService struct {
	listViolationsFn  func(actor *models.Actor, rentalID *uint) ([]models.Violation, error)
	createViolationFn func(actor *models.Actor, input services.ViolationInput) (*models.Violation, error)
	updateViolationFn func(actor *models.Actor, id uint, input services.ViolationInput) (*models.Violation, error)
	deleteViolationFn func(id uint) error
}

var _ services.ViolationServicer = (*mockViolationService)(nil)

func (m *mockViolationService) ListViolations(_ context.Context, actor *models.Actor, rentalID *uint) ([]models.Violation, error) {
	if m.listViolationsFn != nil {
		return m.listViolationsFn(actor, rentalID)
	}
	return nil, nil
}

func (m *mockViolationService) CreateViolation(_ context.Context, actor *models.Actor, input services.ViolationInput) (*models.Violation, error) {
	if m.createViolationFn != nil {
		return m.createViolationFn(actor, input)
	}
	return &models.Violation{}, nil
}

func (m *mockViolationService) UpdateViolation(_ context.Context, actor *models.Actor, id uint, input services.ViolationInput) (*models.Violation, error) {
	if m.updateViolationFn != nil {
		return m.updateViolationFn(actor, id, input)
	}
	return &models.Violation{ID: id}, nil
}

func (m *mockViolationService) DeleteViolation(_ context.Context, id uint) error {
	if m.deleteViolationFn != nil {
		return m.deleteViolationFn(id)
	}
	return nil
}

func setupViolationRouter(handler *ViolationHandler, actor *models.Actor) *gin.Engine {
	r := gin.New()
	g := r.Group("", injectActor(actor))
	g.GET("/violations", handler.ListViolations)
	g.GET("/violations/catalog", handler.Catalog)
	g.POST("/violations", handler.CreateViolation)
	g.PUT("/violations/:id", handler.UpdateViolation)
	g.DELETE("/violations/:id", handler.DeleteViolation)
	return r
}

type photoPart struct {
	filename    string
	contentType string
	data        []byte
}

func doMultipart(t *testing.T, r *gin.Engine, method, path string, fields map[string]string, photo *photoPart) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if photo != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="photo"; filename="`+photo.filename+`"`)
		if photo.contentType != "" {
			h.Set("Content-Type", photo.contentType)
		}
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write(photo.data); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func readUpload(t *testing.T, u *services.Upload) []byte {
	t.Helper()
	rc, err := u.Open()
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestViolationHandler_ListViolations(t *testing.T) {
	t.Run("filters by rental", func(t *testing.T) {
		var got *uint
		svc := &mockViolationService{
			listViolationsFn: func(_ *models.Actor, rentalID *uint) ([]models.Violation, error) {
				got = rentalID
				return []models.Violation{{ID: 1, RentalID: 5, Description: "Merokok di area terlarang"}}, nil
			},
		}
		r := setupViolationRouter(NewViolationHandler(svc, 1<<20), agentActor)

		rec := doRequest(r, "GET", "/violations?rental_id=5", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got == nil || *got != 5 {
			t.Errorf("expected rental filter 5, got %v", got)
		}
		row := parseJSON(t, rec)["data"].([]interface{})[0].(map[string]interface{})
		if _, leaked := row["photo_key"]; leaked {
			t.Error("photo key must not be serialized")
		}
	})

	t.Run("lists everything without filter", func(t *testing.T) {
		filtered := true
		svc := &mockViolationService{
			listViolationsFn: func(_ *models.Actor, rentalID *uint) ([]models.Violation, error) {
				filtered = rentalID != nil
				return nil, nil
			},
		}
		r := setupViolationRouter(NewViolationHandler(svc, 1<<20), adminActor)

		rec := doRequest(r, "GET", "/violations", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if filtered {
			t.Error("expected no rental filter")
		}
	})
}

func TestViolationHandler_Catalog(t *testing.T) {
	t.Run("returns the standard descriptions", func(t *testing.T) {
		r := setupViolationRouter(NewViolationHandler(&mockViolationService{}, 1<<20), adminActor)

		rec := doRequest(r, "GET", "/violations/catalog", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		data := parseJSON(t, rec)["data"].([]interface{})
		if len(data) != len(models.ViolationCatalog) {
			t.Errorf("expected %d entries, got %d", len(models.ViolationCatalog), len(data))
		}
	})
}

func TestViolationHandler_CreateViolation(t *testing.T) {
	t.Run("returns 201 with photo upload", func(t *testing.T) {
		var got services.ViolationInput
		var gotData []byte
		svc := &mockViolationService{
			createViolationFn: func(_ *models.Actor, input services.ViolationInput) (*models.Violation, error) {
				got = input
				if input.Photo != nil {
					gotData = readUpload(t, input.Photo)
				}
				url := "/uploads/violations/x.png"
				return &models.Violation{ID: 3, RentalID: input.RentalID, Description: input.Description, PhotoURL: &url}, nil
			},
		}
		r := setupViolationRouter(NewViolationHandler(svc, 1<<20), adminActor)

		rec := doMultipart(t, r, "POST", "/violations",
			map[string]string{"rental_id": "5", "description": "Kerusakan parah pada fasilitas"},
			&photoPart{filename: "broken.png", contentType: "image/png", data: []byte("png-bytes")})

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.RentalID != 5 || got.Description != "Kerusakan parah pada fasilitas" {
			t.Errorf("unexpected input %+v", got)
		}
		if got.Photo == nil {
			t.Fatal("expected photo upload")
		}
		if got.Photo.Filename != "broken.png" || got.Photo.ContentType != "image/png" || got.Photo.Size != 9 {
			t.Errorf("unexpected upload %+v", got.Photo)
		}
		if string(gotData) != "png-bytes" {
			t.Errorf("unexpected photo data %q", gotData)
		}
		if parseJSON(t, rec)["photo_url"] != "/uploads/violations/x.png" {
			t.Errorf("unexpected body %s", rec.Body.String())
		}
	})

	t.Run("falls back to the extension for a missing content type", func(t *testing.T) {
		var got *services.Upload
		svc := &mockViolationService{
			createViolationFn: func(_ *models.Actor, input services.ViolationInput) (*models.Violation, error) {
				got = input.Photo
				return &models.Violation{}, nil
			},
		}
		r := setupViolationRouter(NewViolationHandler(svc, 1<<20), adminActor)

		rec := doMultipart(t, r, "POST", "/violations",
			map[string]string{"rental_id": "5", "description": "x"},
			&photoPart{filename: "photo.jpg", data: []byte("jpg")})

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if got == nil || got.ContentType != "image/jpeg" {
			t.Errorf("expected image/jpeg, got %+v", got)
		}
	})

	t.Run("accepts a report without photo", func(t *testing.T) {
		hasPhoto := true
		svc := &mockViolationService{
			createViolationFn: func(_ *models.Actor, input services.ViolationInput) (*models.Violation, error) {
				hasPhoto = input.Photo != nil
				return &models.Violation{}, nil
			},
		}
		r := setupViolationRouter(NewViolationHandler(svc, 1<<20), adminActor)

		rec := doMultipart(t, r, "POST", "/violations",
			map[string]string{"rental_id": "5", "description": "Merokok di area terlarang"}, nil)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if hasPhoto {
			t.Error("expected no photo")
		}
	})

	t.Run("returns 400 without description", func(t *testing.T) {
		r := setupViolationRouter(NewViolationHandler(&mockViolationService{}, 1<<20), adminActor)

		rec := doMultipart(t, r, "POST", "/violations", map[string]string{"rental_id": "5"}, nil)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on oversized photo", func(t *testing.T) {
		called := false
		svc := &mockViolationService{
			createViolationFn: func(_ *models.Actor, _ services.ViolationInput) (*models.Violation, error) {
				called = true
				return &models.Violation{}, nil
			},
		}
		r := setupViolationRouter(NewViolationHandler(svc, 16), adminActor)

		rec := doMultipart(t, r, "POST", "/violations",
			map[string]string{"rental_id": "5", "description": "x"},
			&photoPart{filename: "big.png", contentType: "image/png", data: bytes.Repeat([]byte("a"), 64)})

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if called {
			t.Error("service must not be called for an oversized photo")
		}
	})

	t.Run("returns 404 when rental not visible", func(t *testing.T) {
		svc := &mockViolationService{
			createViolationFn: func(_ *models.Actor, _ services.ViolationInput) (*models.Violation, error) {
				return nil, apperrors.ErrRentalNotFound
			},
		}
		r := setupViolationRouter(NewViolationHandler(svc, 1<<20), adminActor)

		rec := doMultipart(t, r, "POST", "/violations",
			map[string]string{"rental_id": "99", "description": "x"}, nil)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestViolationHandler_UpdateViolation(t *testing.T) {
	t.Run("passes remove_photo", func(t *testing.T) {
		var got services.ViolationInput
		var gotID uint
		svc := &mockViolationService{
			updateViolationFn: func(_ *models.Actor, id uint, input services.ViolationInput) (*models.Violation, error) {
				gotID, got = id, input
				return &models.Violation{ID: id, Description: input.Description}, nil
			},
		}
		r := setupViolationRouter(NewViolationHandler(svc, 1<<20), adminActor)

		rec := doMultipart(t, r, "PUT", "/violations/7",
			map[string]string{"description": "updated", "remove_photo": "true"}, nil)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotID != 7 || !got.RemovePhoto || got.Description != "updated" || got.RentalID != 0 {
			t.Errorf("unexpected update id=%d input=%+v", gotID, got)
		}
	})

	t.Run("returns 404 when violation not found", func(t *testing.T) {
		svc := &mockViolationService{
			updateViolationFn: func(_ *models.Actor, _ uint, _ services.ViolationInput) (*models.Violation, error) {
				return nil, apperrors.ErrViolationNotFound
			},
		}
		r := setupViolationRouter(NewViolationHandler(svc, 1<<20), adminActor)

		rec := doMultipart(t, r, "PUT", "/violations/7", map[string]string{"description": "x"}, nil)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "VIOLATION_NOT_FOUND")
	})
}

func TestViolationHandler_DeleteViolation(t *testing.T) {
	t.Run("returns 204 on success", func(t *testing.T) {
		var gotID uint
		svc := &mockViolationService{
			deleteViolationFn: func(id uint) error {
				gotID = id
				return nil
			},
		}
		r := setupViolationRouter(NewViolationHandler(svc, 1<<20), adminActor)

		rec := doRequest(r, "DELETE", "/violations/7", "")

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
		if gotID != 7 {
			t.Errorf("expected id 7, got %d", gotID)
		}
	})
}
