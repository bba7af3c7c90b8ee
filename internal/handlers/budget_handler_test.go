package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
	"spendwise/internal/services"
)

func setupBudgetRouter(handler *BudgetHandler) *gin.Engine {
	r := gin.New()
	g := r.Group("/budgets", injectActor("alice"))
	g.POST("", handler.CreateBudget)
	g.GET("", handler.GetBudgets)
	g.GET("/:id", handler.GetBudget)
	g.PUT("/:id", handler.UpdateBudget)
	g.DELETE("/:id", handler.DeleteBudget)
	return r
}

func TestBudgetHandler_CreateBudget(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		var got *models.Budget
		svc := &mockBudgetService{
			saveBudgetFn: func(actor string, b *models.Budget) (*models.Budget, error) {
				if actor != "alice" {
					t.Errorf("expected actor alice, got %s", actor)
				}
				got = b
				b.ID = 1
				return b, nil
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(svc))

		rec := doRequest(r, "POST", "/budgets",
			`{"amount":1200,"category":"housing","subcategory":"Rent","description":"Flat"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Category != models.CategoryHousing {
			t.Errorf("expected canonical category Housing, got %s", got.Category)
		}
		if got.Subcategory != models.SomeSubcategory(models.SubcategoryRent) {
			t.Errorf("expected subcategory Rent, got %+v", got.Subcategory)
		}
		budget := parseJSON(t, rec)["budget"].(map[string]interface{})
		if budget["subcategory"] != "Rent" {
			t.Errorf("expected subcategory Rent in response, got %v", budget["subcategory"])
		}
	})

	t.Run("returns 400 on unknown category", func(t *testing.T) {
		r := setupBudgetRouter(NewBudgetHandler(&mockBudgetService{}))

		rec := doRequest(r, "POST", "/budgets", `{"amount":10,"category":"Yachts"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on unknown subcategory", func(t *testing.T) {
		r := setupBudgetRouter(NewBudgetHandler(&mockBudgetService{}))

		rec := doRequest(r, "POST", "/budgets", `{"amount":10,"category":"Food","subcategory":"Caviar"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on zero amount", func(t *testing.T) {
		r := setupBudgetRouter(NewBudgetHandler(&mockBudgetService{}))

		rec := doRequest(r, "POST", "/budgets", `{"amount":0,"category":"Food"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestBudgetHandler_GetBudget(t *testing.T) {
	t.Run("returns 404 when not owned", func(t *testing.T) {
		svc := &mockBudgetService{
			resolveBudgetFn: func(string, uint) (*models.Budget, error) {
				return nil, apperrors.ErrBudgetNotFound
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(svc))

		rec := doRequest(r, "GET", "/budgets/5", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "BUDGET_NOT_FOUND")
	})

	t.Run("returns 400 on invalid id", func(t *testing.T) {
		r := setupBudgetRouter(NewBudgetHandler(&mockBudgetService{}))

		rec := doRequest(r, "GET", "/budgets/abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestBudgetHandler_GetBudgets(t *testing.T) {
	r := setupBudgetRouter(NewBudgetHandler(&mockBudgetService{}))

	rec := doRequest(r, "GET", "/budgets?page=1&page_size=10", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if _, ok := parseJSON(t, rec)["data"]; !ok {
		t.Error("expected paginated data")
	}
}

func TestBudgetHandler_UpdateBudget(t *testing.T) {
	t.Run("omitted fields stay nil", func(t *testing.T) {
		var got services.BudgetUpdate
		svc := &mockBudgetService{
			updateBudgetFn: func(_ string, _ uint, u services.BudgetUpdate) (*models.Budget, error) {
				got = u
				return &models.Budget{}, nil
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(svc))

		rec := doRequest(r, "PUT", "/budgets/1", `{"amount":99.5}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Amount == nil || *got.Amount != 99.5 {
			t.Errorf("expected amount 99.5, got %v", got.Amount)
		}
		if got.Category != nil || got.Subcategory != nil || got.Description != nil {
			t.Errorf("expected untouched fields to be nil, got %+v", got)
		}
	})

	t.Run("null subcategory clears", func(t *testing.T) {
		var got services.BudgetUpdate
		svc := &mockBudgetService{
			updateBudgetFn: func(_ string, _ uint, u services.BudgetUpdate) (*models.Budget, error) {
				got = u
				return &models.Budget{}, nil
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(svc))

		rec := doRequest(r, "PUT", "/budgets/1", `{"subcategory":null,"category":"food"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Subcategory == nil || got.Subcategory.Valid {
			t.Errorf("expected an explicit clear, got %+v", got.Subcategory)
		}
		if got.Category == nil || *got.Category != models.CategoryFood {
			t.Errorf("expected category Food, got %v", got.Category)
		}
	})
}

func TestBudgetHandler_DeleteBudget(t *testing.T) {
	var deleted uint
	svc := &mockBudgetService{
		deleteBudgetFn: func(_ string, id uint) error {
			deleted = id
			return nil
		},
	}
	r := setupBudgetRouter(NewBudgetHandler(svc))

	rec := doRequest(r, "DELETE", "/budgets/8", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if deleted != 8 {
		t.Errorf("expected budget 8 deleted, got %d", deleted)
	}
}
