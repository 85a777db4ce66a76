package handler

import (
	"net/http"
	"strconv"

	"storefront-client/internal/dto"
	"storefront-client/internal/middleware"
	"storefront-client/internal/model"

	"github.com/labstack/echo/v4"
)

// ShopHandler serves products, the cart and the address book.
type ShopHandler struct {
	store *Store
}

func NewShopHandler(store *Store) *ShopHandler {
	return &ShopHandler{
		store: store,
	}
}

func (h *ShopHandler) ListProducts(c echo.Context) error {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	return c.JSON(http.StatusOK, h.store.products)
}

func (h *ShopHandler) GetProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "bad product id"})
	}

	h.store.mu.Lock()
	defer h.store.mu.Unlock()

	product, ok := h.store.productByID(id)
	if !ok {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "product not found"})
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ShopHandler) GetCart(c echo.Context) error {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()

	cart := h.store.cartFor(middleware.UserID(c))
	return c.JSON(http.StatusOK, model.Cart{OrderID: cart.OrderID, Items: cart.Items})
}

func (h *ShopHandler) AddItem(c echo.Context) error {
	var req dto.AddItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "malformed body"})
	}
	if req.Quantity <= 0 {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "quantity must be positive"})
	}

	h.store.mu.Lock()
	defer h.store.mu.Unlock()

	product, ok := h.store.productByID(req.ProductID)
	if !ok {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "product not found"})
	}

	cart := h.store.cartFor(middleware.UserID(c))
	for i := range cart.Items {
		if cart.Items[i].ProductID == req.ProductID {
			cart.Items[i].Quantity += req.Quantity
			cart.Items[i].Recurrence = req.Recurrence
			return c.JSON(http.StatusOK, model.Cart{OrderID: cart.OrderID, Items: cart.Items})
		}
	}

	cart.Items = append(cart.Items, model.CartItem{
		ID:         h.store.id(),
		ProductID:  product.ID,
		Name:       product.Name,
		UnitPrice:  product.Price,
		Quantity:   req.Quantity,
		Recurrence: req.Recurrence,
	})
	return c.JSON(http.StatusOK, model.Cart{OrderID: cart.OrderID, Items: cart.Items})
}

func (h *ShopHandler) UpdateItem(c echo.Context) error {
	var req dto.UpdateItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "malformed body"})
	}
	if req.Quantity <= 0 {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "quantity must be positive, delete the item instead"})
	}

	h.store.mu.Lock()
	defer h.store.mu.Unlock()

	cart := h.store.cartFor(middleware.UserID(c))
	for i := range cart.Items {
		if cart.Items[i].ProductID == req.ProductID {
			cart.Items[i].Quantity = req.Quantity
			cart.Items[i].Recurrence = req.Recurrence
			return c.JSON(http.StatusOK, model.Cart{OrderID: cart.OrderID, Items: cart.Items})
		}
	}
	return c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "item not in cart"})
}

func (h *ShopHandler) DeleteItem(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "bad item id"})
	}

	h.store.mu.Lock()
	defer h.store.mu.Unlock()

	cart := h.store.cartFor(middleware.UserID(c))
	for i := range cart.Items {
		if cart.Items[i].ID == id {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			return c.JSON(http.StatusOK, model.Cart{OrderID: cart.OrderID, Items: cart.Items})
		}
	}
	return c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "item not in cart"})
}

func (h *ShopHandler) UpdateOrder(c echo.Context) error {
	var req dto.UpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "malformed body"})
	}

	h.store.mu.Lock()
	defer h.store.mu.Unlock()

	cart := h.store.cartFor(middleware.UserID(c))
	if cart.OrderID != req.OrderID {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "order not found"})
	}

	cart.ShippingAddressID = req.ShippingAddressID
	cart.BillingAddressID = req.BillingAddressID
	cart.Status = model.OrderAddressed
	return c.NoContent(http.StatusNoContent)
}

func (h *ShopHandler) ListAddresses(c echo.Context) error {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()

	addrs := h.store.addrs[middleware.UserID(c)]
	if len(addrs) == 0 {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "no addresses"})
	}
	return c.JSON(http.StatusOK, addrs)
}

func (h *ShopHandler) AddAddress(c echo.Context) error {
	var req dto.AddressRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "malformed body"})
	}

	h.store.mu.Lock()
	defer h.store.mu.Unlock()

	userID := middleware.UserID(c)
	addr := addressFromRequest(req)
	addr.ID = h.store.id()
	h.store.addrs[userID] = append(h.store.addrs[userID], addr)
	return c.JSON(http.StatusOK, addr)
}

func (h *ShopHandler) UpdateAddress(c echo.Context) error {
	var req dto.AddressRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "malformed body"})
	}

	h.store.mu.Lock()
	defer h.store.mu.Unlock()

	userID := middleware.UserID(c)
	for i, addr := range h.store.addrs[userID] {
		if addr.ID == req.ID {
			updated := addressFromRequest(req)
			updated.ID = addr.ID
			h.store.addrs[userID][i] = updated
			return c.JSON(http.StatusOK, updated)
		}
	}
	return c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "address not found"})
}

func (h *ShopHandler) DeleteAddress(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "bad address id"})
	}

	h.store.mu.Lock()
	defer h.store.mu.Unlock()

	userID := middleware.UserID(c)
	for i, addr := range h.store.addrs[userID] {
		if addr.ID == id {
			h.store.addrs[userID] = append(h.store.addrs[userID][:i], h.store.addrs[userID][i+1:]...)
			return c.NoContent(http.StatusNoContent)
		}
	}
	return c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "address not found"})
}

func addressFromRequest(req dto.AddressRequest) model.Address {
	return model.Address{
		ID:         req.ID,
		Kind:       req.Kind,
		Street:     req.Street,
		Number:     req.Number,
		Complement: req.Complement,
		ZipCode:    req.ZipCode,
		City:       req.City,
		Region:     req.Region,
		Country:    req.Country,
	}
}
