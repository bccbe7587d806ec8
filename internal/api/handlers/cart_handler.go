// server/internal/api/handlers/cart_handler.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"greenscape-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CartHandler struct {
	DB *mongo.Database
}

type AddToCartPayload struct {
	ItemID     string `json:"itemId" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required"`
	CustomerID string `json:"customerId"`
}

type UpdateCartItemPayload struct {
	Quantity int `json:"quantity" binding:"required"`
}

// GetCart returns the session's cart, or an empty one if none exists yet.
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID := c.Param("sessionId")

	var cart models.Cart
	err := h.DB.Collection("carts").FindOne(context.Background(), bson.M{"sessionId": sessionID}).Decode(&cart)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusOK, models.Cart{SessionID: sessionID, Items: []models.CartLine{}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve cart"})
		return
	}
	c.JSON(http.StatusOK, cart)
}

// AddToCart appends an item line to the session's cart, or merges the
// quantity into an existing line. The price is snapshotted from the Item
// at add time and never re-fetched.
func (h *CartHandler) AddToCart(c *gin.Context) {
	sessionID := c.Param("sessionId")

	var payload AddToCartPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if payload.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be at least 1"})
		return
	}

	var item models.Item
	err := h.DB.Collection("items").FindOne(context.Background(), bson.M{"itemID": payload.ItemID}).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check item"})
		return
	}

	cartCollection := h.DB.Collection("carts")
	var cart models.Cart
	err = cartCollection.FindOne(context.Background(), bson.M{"sessionId": sessionID}).Decode(&cart)
	if err != nil && err != mongo.ErrNoDocuments {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve cart"})
		return
	}
	if err == mongo.ErrNoDocuments {
		cart = models.Cart{
			SessionID:  sessionID,
			CustomerID: payload.CustomerID,
			Items:      []models.CartLine{},
			CreatedAt:  time.Now(),
		}
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ItemID == payload.ItemID {
			cart.Items[i].Quantity += payload.Quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, models.CartLine{
			ItemID:       item.ItemID,
			ItemName:     item.ItemName,
			PricePerItem: item.Price,
			Quantity:     payload.Quantity,
			ImageURL:     item.ImageURL,
		})
	}
	cart.Recalculate()
	cart.UpdatedAt = time.Now()

	opts := options.Replace().SetUpsert(true)
	if _, err := cartCollection.ReplaceOne(context.Background(), bson.M{"sessionId": sessionID}, cart, opts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
		return
	}
	c.JSON(http.StatusOK, cart)
}

// UpdateItemQuantity sets the quantity on one cart line. Quantities below
// 1 are rejected; removal goes through RemoveItem.
func (h *CartHandler) UpdateItemQuantity(c *gin.Context) {
	sessionID := c.Param("sessionId")
	itemID := c.Param("itemId")

	var payload UpdateCartItemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if payload.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be at least 1"})
		return
	}

	cartCollection := h.DB.Collection("carts")
	var cart models.Cart
	err := cartCollection.FindOne(context.Background(), bson.M{"sessionId": sessionID}).Decode(&cart)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve cart"})
		return
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ItemID == itemID {
			cart.Items[i].Quantity = payload.Quantity
			found = true
			break
		}
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in cart"})
		return
	}
	cart.Recalculate()
	cart.UpdatedAt = time.Now()

	if _, err := cartCollection.ReplaceOne(context.Background(), bson.M{"sessionId": sessionID}, cart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
		return
	}
	c.JSON(http.StatusOK, cart)
}

// RemoveItem drops one line from the cart.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	sessionID := c.Param("sessionId")
	itemID := c.Param("itemId")

	cartCollection := h.DB.Collection("carts")
	var cart models.Cart
	err := cartCollection.FindOne(context.Background(), bson.M{"sessionId": sessionID}).Decode(&cart)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve cart"})
		return
	}

	kept := cart.Items[:0]
	found := false
	for _, line := range cart.Items {
		if line.ItemID == itemID {
			found = true
			continue
		}
		kept = append(kept, line)
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in cart"})
		return
	}
	cart.Items = kept
	cart.Recalculate()
	cart.UpdatedAt = time.Now()

	if _, err := cartCollection.ReplaceOne(context.Background(), bson.M{"sessionId": sessionID}, cart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
		return
	}
	c.JSON(http.StatusOK, cart)
}

// ClearCart deletes the whole cart document for a session.
func (h *CartHandler) ClearCart(c *gin.Context) {
	sessionID := c.Param("sessionId")
	result, err := h.DB.Collection("carts").DeleteOne(context.Background(), bson.M{"sessionId": sessionID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
