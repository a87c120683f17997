package handlers_test

import (
	"net/http"
	"testing"

	"flight-catering-api/config"
	"flight-catering-api/middleware"
	"flight-catering-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminToken(t *testing.T) string {
	t.Helper()
	admin := models.User{
		Name:         "Catering Admin",
		Email:        "admin@catering.test",
		PasswordHash: "x",
		Role:         models.RoleAdmin,
	}
	require.NoError(t, config.DB.Create(&admin).Error)
	token, err := middleware.GenerateToken(&admin)
	require.NoError(t, err)
	return token
}

func TestAddMenuItemRequiresBothLocationPrices(t *testing.T) {
	r, _ := setupTest(t)
	token := adminToken(t)

	w := doJSON(r, http.MethodPost, "/api/admin/menu", token, gin.H{
		"name":     "Club Sandwich",
		"category": "main",
		"price_cents_by_location": gin.H{
			"thessaloniki": 1200,
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestAddMenuItemAndResolveIt(t *testing.T) {
	r, customerToken := setupTest(t)
	token := adminToken(t)

	w := doJSON(r, http.MethodPost, "/api/admin/menu", token, gin.H{
		"name":     "Club Sandwich",
		"category": "main",
		"unit":     "per piece",
		"price_cents_by_location": gin.H{
			"thessaloniki": 1200,
			"mykonos":      1350,
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var item models.MenuItem
	require.NoError(t, config.DB.Where("name = ?", "Club Sandwich").First(&item).Error)

	// The new item must price through the same engine as everything else
	w = doJSON(r, http.MethodPost, "/api/customer/orders/quote", customerToken, gin.H{
		"location": "mykonos",
		"items":    []map[string]interface{}{{"menu_item_id": item.ID, "quantity": 2}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	totals := decodeBody(t, w)["totals"].(map[string]interface{})
	assert.EqualValues(t, 2700, totals["subtotal_cents"])
}

func TestMenuEndpointsRequireAdminRole(t *testing.T) {
	r, customerToken := setupTest(t)

	w := doJSON(r, http.MethodPost, "/api/admin/menu", customerToken, gin.H{
		"name":     "Club Sandwich",
		"category": "main",
		"price_cents_by_location": gin.H{
			"thessaloniki": 1200,
			"mykonos":      1350,
		},
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteMenuItemMakesCartStale(t *testing.T) {
	r, customerToken := setupTest(t)
	token := adminToken(t)

	w := doJSON(r, http.MethodDelete, "/api/admin/menu/1", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// A cart still referencing the deleted item must fail loudly, never
	// compute a partial total
	w = doJSON(r, http.MethodPost, "/api/customer/orders/quote", customerToken, gin.H{
		"location": "thessaloniki",
		"items":    []map[string]interface{}{{"menu_item_id": 1, "quantity": 1}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
