// internal/storetest/server.go

// Package storetest provides an in-process fake of the storefront API
// for tests: the same routes, response envelopes and status codes as the
// real server, backed by in-memory fixtures. Stock is bookkept across
// add-to-cart, checkout and cancel so end-to-end flows behave like the
// real thing.
package storetest

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Product is a catalog fixture
type Product struct {
	ID           int
	Name         string
	Description  string
	Price        float64
	CategoryID   int
	CategoryName string
	Stock        int
	ImageURL     string
}

// Address is an address book fixture
type Address struct {
	ID           int
	UserID       int
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	PostalCode   string
	Country      string
	IsDefault    bool
}

type user struct {
	ID           int
	Email        string
	PasswordHash []byte
	FirstName    string
	LastName     string
	Role         string
}

type cartLine struct {
	ID        int
	ProductID int
	Quantity  int
}

type orderLine struct {
	ID              int
	ProductID       int
	ProductName     string
	Quantity        int
	PriceAtPurchase float64
}

type order struct {
	ID                int
	UserID            int
	Number            string
	TotalAmount       float64
	Status            string
	PaymentStatus     string
	ShippingAddressID int
	Items             []orderLine
	CreatedAt         time.Time
}

// Server is the fake storefront API
type Server struct {
	mu     sync.Mutex
	secret []byte

	users     map[string]*user        // keyed by email
	products  map[int]*Product
	carts     map[int][]*cartLine     // keyed by user ID
	wishlists map[int][]int           // keyed by user ID, ordered product IDs
	addresses map[int][]*Address      // keyed by user ID
	orders    map[int][]*order        // keyed by user ID

	nextID int

	engine *gin.Engine
}

// New creates a fake storefront API with no fixtures seeded
func New() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		secret:    []byte("storetest-secret"),
		users:     make(map[string]*user),
		products:  make(map[int]*Product),
		carts:     make(map[int][]*cartLine),
		wishlists: make(map[int][]int),
		addresses: make(map[int][]*Address),
		orders:    make(map[int][]*order),
		nextID:    1,
	}

	engine := gin.New()
	api := engine.Group("/api")

	api.POST("/auth/login", s.login)
	api.POST("/auth/register", s.register)
	api.POST("/auth/change-password", s.auth(s.changePassword))
	api.GET("/auth/profile", s.auth(s.getProfile))
	api.PUT("/auth/profile", s.auth(s.updateProfile))
	api.GET("/users/profile", s.auth(s.getProfile))
	api.PUT("/users/profile", s.auth(s.updateProfile))
	api.PUT("/users/change-password", s.auth(s.changePassword))

	api.GET("/products/", s.listProducts)
	api.GET("/products/search", s.searchProducts)
	api.GET("/products/:id", s.getProduct)

	api.GET("/cart/", s.auth(s.getCart))
	api.POST("/cart/add", s.auth(s.addToCart))
	api.PUT("/cart/update", s.auth(s.updateCart))
	api.DELETE("/cart/remove/:productId", s.auth(s.removeFromCart))
	api.DELETE("/cart/clear", s.auth(s.clearCart))

	api.GET("/addresses/", s.auth(s.listAddresses))
	api.POST("/addresses/", s.auth(s.createAddress))
	api.PUT("/addresses/:id", s.auth(s.updateAddress))
	api.DELETE("/addresses/:id", s.auth(s.deleteAddress))
	api.POST("/addresses/:id/set-default", s.auth(s.setDefaultAddress))

	api.POST("/orders/checkout", s.auth(s.checkout))
	api.GET("/orders/", s.auth(s.listOrders))
	api.GET("/orders/stats", s.auth(s.orderStats))
	api.GET("/orders/:id", s.auth(s.getOrder))
	api.POST("/orders/:id/cancel", s.auth(s.cancelOrder))

	api.GET("/wishlist/", s.auth(s.getWishlist))
	api.POST("/wishlist/add/:productId", s.auth(s.addToWishlist))
	api.DELETE("/wishlist/remove/:productId", s.auth(s.removeFromWishlist))
	api.DELETE("/wishlist/clear", s.auth(s.clearWishlist))

	s.engine = engine
	return s
}

// Handler returns the HTTP handler, for use with httptest.NewServer
func (s *Server) Handler() http.Handler {
	return s.engine
}

// SeedUser registers a fixture user and returns its ID
func (s *Server) SeedUser(email, password, firstName, lastName, role string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(fmt.Sprintf("storetest: bcrypt failed: %v", err))
	}

	id := s.allocID()
	s.users[email] = &user{
		ID:           id,
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		Role:         role,
	}
	return id
}

// SeedProduct adds a catalog fixture and returns it
func (s *Server) SeedProduct(p Product) *Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == 0 {
		p.ID = s.allocID()
	}
	stored := p
	s.products[stored.ID] = &stored
	return &stored
}

// SeedAddress adds an address fixture for a user and returns it
func (s *Server) SeedAddress(userID int, a Address) *Address {
	s.mu.Lock()
	defer s.mu.Unlock()

	a.ID = s.allocID()
	a.UserID = userID
	stored := a
	s.addresses[userID] = append(s.addresses[userID], &stored)
	return &stored
}

// ProductStock returns the current stock of a seeded product
func (s *Server) ProductStock(productID int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.products[productID]; ok {
		return p.Stock
	}
	return 0
}

func (s *Server) allocID() int {
	id := s.nextID
	s.nextID++
	return id
}

// --- auth ---

func (s *Server) issueToken(userID int, tokenType string, ttl time.Duration) string {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(userID),
		ID:        uuid.New().String(),
		Audience:  jwt.ClaimStrings{tokenType},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		panic(fmt.Sprintf("storetest: token signing failed: %v", err))
	}
	return signed
}

// auth wraps a handler with bearer-token authentication
func (s *Server) auth(handler func(*gin.Context, *user)) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing authorization header"})
			return
		}

		var claims jwt.RegisteredClaims
		_, err := jwt.ParseWithClaims(strings.TrimPrefix(header, "Bearer "), &claims,
			func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return s.secret, nil
			})
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		userID, err := strconv.Atoi(claims.Subject)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token subject"})
			return
		}

		s.mu.Lock()
		var found *user
		for _, u := range s.users {
			if u.ID == userID {
				found = u
				break
			}
		}
		s.mu.Unlock()

		if found == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}
		handler(c, found)
	}
}

func userJSON(u *user) gin.H {
	return gin.H{
		"id":         u.ID,
		"email":      u.Email,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"role":       u.Role,
	}
}

func (s *Server) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	s.mu.Lock()
	u := s.users[req.Email]
	s.mu.Unlock()

	if u == nil || bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Login successful",
		"user":          userJSON(u),
		"access_token":  s.issueToken(u.ID, "access", 24*time.Hour),
		"refresh_token": s.issueToken(u.ID, "refresh", 7*24*time.Hour),
	})
}

func (s *Server) register(c *gin.Context) {
	var req struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}
	if req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	s.mu.Lock()
	if _, exists := s.users[req.Email]; exists {
		s.mu.Unlock()
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	u := &user{
		ID:           s.allocID(),
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         "user",
	}
	s.users[req.Email] = u
	s.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{
		"message":       "User registered successfully",
		"user":          userJSON(u),
		"access_token":  s.issueToken(u.ID, "access", 24*time.Hour),
		"refresh_token": s.issueToken(u.ID, "refresh", 7*24*time.Hour),
	})
}

func (s *Server) changePassword(c *gin.Context, u *user) {
	var req struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(req.OldPassword)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
		return
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.MinCost)
	s.mu.Lock()
	u.PasswordHash = hash
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

func (s *Server) getProfile(c *gin.Context, u *user) {
	c.JSON(http.StatusOK, userJSON(u))
}

func (s *Server) updateProfile(c *gin.Context, u *user) {
	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	s.mu.Lock()
	if req.FirstName != "" {
		u.FirstName = req.FirstName
	}
	if req.LastName != "" {
		u.LastName = req.LastName
	}
	s.mu.Unlock()

	c.JSON(http.StatusOK, userJSON(u))
}

// --- products ---

func productJSON(p *Product) gin.H {
	return gin.H{
		"id":             p.ID,
		"name":           p.Name,
		"description":    p.Description,
		"price":          p.Price,
		"category_id":    p.CategoryID,
		"category_name":  p.CategoryName,
		"stock_quantity": p.Stock,
		"image_url":      p.ImageURL,
	}
}

func (s *Server) sortedProducts() []*Product {
	products := make([]*Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products
}

func (s *Server) listProducts(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	search := strings.ToLower(c.Query("search"))
	category := c.Query("category")

	var out []gin.H
	for _, p := range s.sortedProducts() {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		if category != "" && p.CategoryName != category {
			continue
		}
		out = append(out, productJSON(p))
	}
	if out == nil {
		out = []gin.H{}
	}

	c.JSON(http.StatusOK, gin.H{
		"products": out,
		"pagination": gin.H{
			"page":     1,
			"per_page": len(out),
			"total":    len(out),
			"pages":    1,
		},
	})
}

func (s *Server) getProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	s.mu.Lock()
	p := s.products[id]
	s.mu.Unlock()

	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	body := productJSON(p)
	body["reviews"] = []gin.H{}
	c.JSON(http.StatusOK, body)
}

func (s *Server) searchProducts(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))

	suggestions := []gin.H{}
	if len(query) >= 2 {
		s.mu.Lock()
		for _, p := range s.sortedProducts() {
			if strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) {
				suggestions = append(suggestions, gin.H{"id": p.ID, "name": p.Name, "price": p.Price})
			}
		}
		s.mu.Unlock()
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// --- cart ---

func (s *Server) cartJSON(userID int) gin.H {
	lines := s.carts[userID]

	items := make([]gin.H, 0, len(lines))
	totalItems := 0
	subtotal := 0.0
	for _, line := range lines {
		p := s.products[line.ProductID]
		lineSubtotal := p.Price * float64(line.Quantity)
		items = append(items, gin.H{
			"id":         line.ID,
			"cart_id":    userID,
			"product_id": line.ProductID,
			"product":    productJSON(p),
			"quantity":   line.Quantity,
			"subtotal":   lineSubtotal,
		})
		totalItems += line.Quantity
		subtotal += lineSubtotal
	}

	return gin.H{
		"id":          userID,
		"user_id":     userID,
		"total_items": totalItems,
		"subtotal":    subtotal,
		"items":       items,
	}
}

func (s *Server) getCart(c *gin.Context, u *user) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.cartJSON(u.ID))
}

func (s *Server) addToCart(c *gin.Context, u *user) {
	var req struct {
		ProductID int `json:"product_id"`
		Quantity  int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}
	if req.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be a positive integer"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.products[req.ProductID]
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var line *cartLine
	for _, l := range s.carts[u.ID] {
		if l.ProductID == req.ProductID {
			line = l
			break
		}
	}

	newQuantity := req.Quantity
	if line != nil {
		newQuantity += line.Quantity
	}
	if p.Stock < newQuantity {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient stock", "available": p.Stock})
		return
	}

	if line != nil {
		line.Quantity = newQuantity
	} else {
		s.carts[u.ID] = append(s.carts[u.ID], &cartLine{
			ID:        s.allocID(),
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
		})
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item added to cart", "cart": s.cartJSON(u.ID)})
}

func (s *Server) updateCart(c *gin.Context, u *user) {
	var req struct {
		ProductID int `json:"product_id"`
		Quantity  int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}
	if req.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be a positive integer"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var line *cartLine
	for _, l := range s.carts[u.ID] {
		if l.ProductID == req.ProductID {
			line = l
			break
		}
	}
	if line == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	}

	p := s.products[req.ProductID]
	if p.Stock < req.Quantity {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient stock", "available": p.Stock})
		return
	}

	line.Quantity = req.Quantity
	c.JSON(http.StatusOK, gin.H{"message": "Cart updated", "cart": s.cartJSON(u.ID)})
}

func (s *Server) removeFromCart(c *gin.Context, u *user) {
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[u.ID]
	for i, l := range lines {
		if l.ProductID == productID {
			s.carts[u.ID] = append(lines[:i], lines[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart", "cart": s.cartJSON(u.ID)})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
}

func (s *Server) clearCart(c *gin.Context, u *user) {
	s.mu.Lock()
	s.carts[u.ID] = nil
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}

// --- addresses ---

func addressJSON(a *Address) gin.H {
	return gin.H{
		"id":            a.ID,
		"user_id":       a.UserID,
		"address_line1": a.AddressLine1,
		"address_line2": a.AddressLine2,
		"city":          a.City,
		"state":         a.State,
		"postal_code":   a.PostalCode,
		"country":       a.Country,
		"is_default":    a.IsDefault,
	}
}

func (s *Server) listAddresses(c *gin.Context, u *user) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]gin.H, 0, len(s.addresses[u.ID]))
	for _, a := range s.addresses[u.ID] {
		out = append(out, addressJSON(a))
	}
	c.JSON(http.StatusOK, gin.H{"addresses": out})
}

type addressRequest struct {
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
	IsDefault    bool   `json:"is_default"`
}

func (s *Server) createAddress(c *gin.Context, u *user) {
	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}
	if req.AddressLine1 == "" || req.City == "" || req.Country == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if req.IsDefault {
		for _, a := range s.addresses[u.ID] {
			a.IsDefault = false
		}
	}

	a := &Address{
		ID:           s.allocID(),
		UserID:       u.ID,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
		IsDefault:    req.IsDefault,
	}
	s.addresses[u.ID] = append(s.addresses[u.ID], a)

	c.JSON(http.StatusCreated, gin.H{"message": "Address created successfully", "address": addressJSON(a)})
}

func (s *Server) findAddress(userID, addressID int) *Address {
	for _, a := range s.addresses[userID] {
		if a.ID == addressID {
			return a
		}
	}
	return nil
}

func (s *Server) updateAddress(c *gin.Context, u *user) {
	addressID, _ := strconv.Atoi(c.Param("id"))

	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.findAddress(u.ID, addressID)
	if a == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}

	a.AddressLine1 = req.AddressLine1
	a.AddressLine2 = req.AddressLine2
	a.City = req.City
	a.State = req.State
	a.PostalCode = req.PostalCode
	a.Country = req.Country

	c.JSON(http.StatusOK, gin.H{"message": "Address updated successfully", "address": addressJSON(a)})
}

func (s *Server) deleteAddress(c *gin.Context, u *user) {
	addressID, _ := strconv.Atoi(c.Param("id"))

	s.mu.Lock()
	defer s.mu.Unlock()

	addrs := s.addresses[u.ID]
	for i, a := range addrs {
		if a.ID == addressID {
			s.addresses[u.ID] = append(addrs[:i], addrs[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"message": "Address deleted successfully"})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
}

func (s *Server) setDefaultAddress(c *gin.Context, u *user) {
	addressID, _ := strconv.Atoi(c.Param("id"))

	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.findAddress(u.ID, addressID)
	if target == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}

	for _, a := range s.addresses[u.ID] {
		a.IsDefault = a.ID == addressID
	}
	c.JSON(http.StatusOK, gin.H{"message": "Default address updated", "address": addressJSON(target)})
}

// --- orders ---

func orderJSON(o *order, shippingAddress *Address) gin.H {
	items := make([]gin.H, 0, len(o.Items))
	totalItems := 0
	for _, item := range o.Items {
		items = append(items, gin.H{
			"id":                item.ID,
			"order_id":          o.ID,
			"product_id":        item.ProductID,
			"product_name":      item.ProductName,
			"quantity":          item.Quantity,
			"price_at_purchase": item.PriceAtPurchase,
			"subtotal":          item.PriceAtPurchase * float64(item.Quantity),
		})
		totalItems += item.Quantity
	}

	body := gin.H{
		"id":             o.ID,
		"user_id":        o.UserID,
		"total_amount":   o.TotalAmount,
		"status":         o.Status,
		"payment_status": o.PaymentStatus,
		"total_items":    totalItems,
		"items":          items,
		"created_at":     o.CreatedAt.Format("2006-01-02T15:04:05"),
	}
	if shippingAddress != nil {
		body["shipping_address"] = addressJSON(shippingAddress)
	}
	return body
}

func (s *Server) checkout(c *gin.Context, u *user) {
	var req struct {
		ShippingAddressID int `json:"shipping_address_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ShippingAddressID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Shipping address is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	address := s.findAddress(u.ID, req.ShippingAddressID)
	if address == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shipping address"})
		return
	}

	lines := s.carts[u.ID]
	if len(lines) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		return
	}

	for _, line := range lines {
		p := s.products[line.ProductID]
		if p.Stock < line.Quantity {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     fmt.Sprintf("Insufficient stock for %s", p.Name),
				"requested": line.Quantity,
				"available": p.Stock,
			})
			return
		}
	}

	o := &order{
		ID:                s.allocID(),
		UserID:            u.ID,
		Number:            uuid.New().String(),
		Status:            "pending",
		PaymentStatus:     "pending",
		ShippingAddressID: address.ID,
		CreatedAt:         time.Now().UTC(),
	}
	for _, line := range lines {
		p := s.products[line.ProductID]
		o.Items = append(o.Items, orderLine{
			ID:              s.allocID(),
			ProductID:       p.ID,
			ProductName:     p.Name,
			Quantity:        line.Quantity,
			PriceAtPurchase: p.Price,
		})
		o.TotalAmount += p.Price * float64(line.Quantity)
		p.Stock -= line.Quantity
	}

	s.orders[u.ID] = append(s.orders[u.ID], o)
	s.carts[u.ID] = nil

	c.JSON(http.StatusCreated, gin.H{"message": "Order created successfully", "order": orderJSON(o, address)})
}

func (s *Server) listOrders(c *gin.Context, u *user) {
	status := c.Query("status")

	s.mu.Lock()
	defer s.mu.Unlock()

	out := []gin.H{}
	for i := len(s.orders[u.ID]) - 1; i >= 0; i-- {
		o := s.orders[u.ID][i]
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, orderJSON(o, s.findAddress(u.ID, o.ShippingAddressID)))
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": out,
		"pagination": gin.H{
			"page":     1,
			"per_page": len(out),
			"total":    len(out),
			"pages":    1,
		},
	})
}

func (s *Server) findOrder(userID, orderID int) *order {
	for _, o := range s.orders[userID] {
		if o.ID == orderID {
			return o
		}
	}
	return nil
}

func (s *Server) getOrder(c *gin.Context, u *user) {
	orderID, _ := strconv.Atoi(c.Param("id"))

	s.mu.Lock()
	defer s.mu.Unlock()

	o := s.findOrder(u.ID, orderID)
	if o == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, orderJSON(o, s.findAddress(u.ID, o.ShippingAddressID)))
}

func (s *Server) cancelOrder(c *gin.Context, u *user) {
	orderID, _ := strconv.Atoi(c.Param("id"))

	s.mu.Lock()
	defer s.mu.Unlock()

	o := s.findOrder(u.ID, orderID)
	if o == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if o.Status == "delivered" || o.Status == "cancelled" {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Cannot cancel order with status: %s", o.Status)})
		return
	}

	for _, item := range o.Items {
		if p := s.products[item.ProductID]; p != nil {
			p.Stock += item.Quantity
		}
	}
	o.Status = "cancelled"
	o.PaymentStatus = "failed"

	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "order": orderJSON(o, s.findAddress(u.ID, o.ShippingAddressID))})
}

func (s *Server) orderStats(c *gin.Context, u *user) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := gin.H{}
	counts := map[string]int{}
	totalSpent := 0.0
	for _, o := range s.orders[u.ID] {
		counts[o.Status]++
		if o.Status != "cancelled" {
			totalSpent += o.TotalAmount
		}
	}

	stats["total_orders"] = len(s.orders[u.ID])
	for _, status := range []string{"pending", "processing", "shipped", "delivered", "cancelled"} {
		stats[status] = counts[status]
	}
	stats["total_spent"] = totalSpent

	c.JSON(http.StatusOK, stats)
}

// --- wishlist ---

func (s *Server) getWishlist(c *gin.Context, u *user) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := []gin.H{}
	for i, productID := range s.wishlists[u.ID] {
		entry := gin.H{
			"id":         i + 1,
			"user_id":    u.ID,
			"product_id": productID,
		}
		if p := s.products[productID]; p != nil {
			entry["product"] = productJSON(p)
		}
		items = append(items, entry)
	}

	c.JSON(http.StatusOK, gin.H{"wishlist": items, "count": len(items)})
}

func (s *Server) addToWishlist(c *gin.Context, u *user) {
	productID, _ := strconv.Atoi(c.Param("productId"))

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.products[productID]
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	for _, existing := range s.wishlists[u.ID] {
		if existing == productID {
			c.JSON(http.StatusConflict, gin.H{"error": "Product already in wishlist"})
			return
		}
	}

	s.wishlists[u.ID] = append(s.wishlists[u.ID], productID)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product added to wishlist",
		"wishlist_item": gin.H{
			"id":         len(s.wishlists[u.ID]),
			"user_id":    u.ID,
			"product_id": productID,
			"product":    productJSON(p),
		},
	})
}

func (s *Server) removeFromWishlist(c *gin.Context, u *user) {
	productID, _ := strconv.Atoi(c.Param("productId"))

	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.wishlists[u.ID]
	for i, existing := range ids {
		if existing == productID {
			s.wishlists[u.ID] = append(ids[:i], ids[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"message": "Product removed from wishlist"})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Product not in wishlist"})
}

func (s *Server) clearWishlist(c *gin.Context, u *user) {
	s.mu.Lock()
	s.wishlists[u.ID] = nil
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"message": "Wishlist cleared"})
}
