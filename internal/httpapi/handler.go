package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/shiftclock/internal/app"
	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/alexanderramin/shiftclock/internal/service"
	"github.com/gin-gonic/gin"
)

// recentLimit caps the history returned by GET /api/data.
const recentLimit = 200

type Handler struct {
	svc *app.Services
}

func NewHandler(svc *app.Services) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Health(c *gin.Context) {
	success(c, http.StatusOK, gin.H{"status": "ok"})
}

// Data returns the bootstrap snapshot the storefront loads on start.
func (h *Handler) Data(c *gin.Context) {
	ctx := c.Request.Context()

	users, err := h.svc.Users.List(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	yummy, err := h.svc.Catalog.List(ctx, domain.LocaleYummy)
	if err != nil {
		writeError(c, err)
		return
	}
	uwu, err := h.svc.Catalog.List(ctx, domain.LocaleUwu)
	if err != nil {
		writeError(c, err)
		return
	}
	shifts, err := h.svc.Shifts.List(ctx, domain.ShiftFilter{Limit: recentLimit})
	if err != nil {
		writeError(c, err)
		return
	}
	logs, err := h.svc.TimeLogs.ListRecent(ctx, recentLimit)
	if err != nil {
		writeError(c, err)
		return
	}

	success(c, http.StatusOK, gin.H{
		"users":          toUsers(users),
		"products_yummy": toProducts(yummy),
		"products_uwu":   toProducts(uwu),
		"shifts":         toShifts(shifts),
		"logs":           toTimeLogs(logs),
	})
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidInput, err.Error())
		return
	}
	u, err := h.svc.Users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	success(c, http.StatusOK, toUser(u))
}

// clockRequest accepts either an action name or the event type the older
// front-end sends ("entrada", "pausa", "salida"). An event is resolved
// against the stored session, so entrada while on pause resumes.
type clockRequest struct {
	UserID    string     `json:"userId" binding:"required"`
	Locale    string     `json:"locale" binding:"required"`
	Action    string     `json:"action"`
	Type      string     `json:"type"`
	Timestamp *time.Time `json:"timestamp"`
}

type clockResponse struct {
	Session   sessionJSON `json:"session"`
	Event     string      `json:"event"`
	ShiftLog  *shiftJSON  `json:"shiftLog"`
	ClockSkew bool        `json:"clockSkew,omitempty"`
}

func (h *Handler) Clock(c *gin.Context) {
	var req clockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidInput, err.Error())
		return
	}
	var creq service.ClockRequest
	if req.Action != "" {
		action, err := domain.ParseClockAction(req.Action)
		if err != nil {
			writeError(c, err)
			return
		}
		creq.Action = action
	} else {
		event, err := domain.ParseEventType(req.Type)
		if err != nil {
			writeError(c, err)
			return
		}
		creq.Event = event
	}
	locale, err := domain.ParseLocale(req.Locale)
	if err != nil {
		writeError(c, err)
		return
	}

	ctx := c.Request.Context()
	u, err := h.svc.Users.Resolve(ctx, req.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	creq.UserID = u.ID
	creq.Locale = locale
	if req.Timestamp != nil {
		creq.At = *req.Timestamp
	}

	res, err := h.svc.Clock.Do(ctx, creq)
	if err != nil {
		writeError(c, err)
		return
	}
	out := clockResponse{
		Session:   toSession(res.Session),
		Event:     string(res.Transition.Event),
		ClockSkew: res.Transition.ClockSkew,
	}
	if res.Shift != nil {
		s := toShift(res.Shift)
		out.ShiftLog = &s
	}
	success(c, http.StatusOK, out)
}

func (h *Handler) Session(c *gin.Context) {
	ctx := c.Request.Context()
	u, err := h.svc.Users.Resolve(ctx, c.Param("userId"))
	if err != nil {
		writeError(c, err)
		return
	}
	s, err := h.svc.Clock.Current(ctx, u.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	success(c, http.StatusOK, toSession(s))
}

func (h *Handler) ActiveSessions(c *gin.Context) {
	sessions, err := h.svc.Clock.ListActive(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]sessionJSON, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toSession(s))
	}
	success(c, http.StatusOK, out)
}

func (h *Handler) Products(c *gin.Context) {
	locale, err := domain.ParseLocale(c.Param("locale"))
	if err != nil {
		writeError(c, err)
		return
	}
	products, err := h.svc.Catalog.List(c.Request.Context(), locale)
	if err != nil {
		writeError(c, err)
		return
	}
	success(c, http.StatusOK, toProducts(products))
}

type saleLine struct {
	ProductID string `json:"productId"`
	ID        string `json:"id"`
	Quantity  int    `json:"quantity"`
}

type saleRequest struct {
	UserID    string     `json:"userId" binding:"required"`
	Locale    string     `json:"locale" binding:"required"`
	Items     []saleLine `json:"items"`
	Timestamp *time.Time `json:"timestamp"`
}

// Sale rings up a cart. Only product ids and quantities are read; prices
// come from the catalog.
func (h *Handler) Sale(c *gin.Context) {
	var req saleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidInput, err.Error())
		return
	}
	locale, err := domain.ParseLocale(req.Locale)
	if err != nil {
		writeError(c, err)
		return
	}
	ctx := c.Request.Context()
	u, err := h.svc.Users.Resolve(ctx, req.UserID)
	if err != nil {
		writeError(c, err)
		return
	}

	sreq := service.SaleRequest{UserID: u.ID, Locale: locale}
	for _, l := range req.Items {
		id := l.ProductID
		if id == "" {
			id = l.ID
		}
		qty := l.Quantity
		if qty < 0 {
			fail(c, http.StatusBadRequest, CodeInvalidInput, fmt.Sprintf("quantity of %s must not be negative", id))
			return
		}
		if qty == 0 {
			qty = 1
		}
		sreq.Lines = append(sreq.Lines, service.CheckoutLine{ProductID: id, Quantity: qty})
	}
	if req.Timestamp != nil {
		sreq.At = *req.Timestamp
	}

	sale, err := h.svc.Sales.Checkout(ctx, sreq)
	if err != nil {
		writeError(c, err)
		return
	}
	success(c, http.StatusCreated, toSale(sale))
}

func (h *Handler) Sales(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		return
	}
	sales, err := h.svc.Sales.ListRecent(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	success(c, http.StatusOK, toSales(sales))
}

func (h *Handler) Shifts(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		return
	}
	f := domain.ShiftFilter{UserID: c.Query("userId"), Limit: limit}
	if l := c.Query("locale"); l != "" {
		locale, err := domain.ParseLocale(l)
		if err != nil {
			writeError(c, err)
			return
		}
		f.Locale = locale
	}
	shifts, err := h.svc.Shifts.List(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	success(c, http.StatusOK, toShifts(shifts))
}

func (h *Handler) Logs(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		return
	}
	logs, err := h.svc.TimeLogs.ListRecent(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	success(c, http.StatusOK, toTimeLogs(logs))
}

type saveUserRequest struct {
	ID             string   `json:"id"`
	Username       string   `json:"username" binding:"required"`
	Password       string   `json:"password"`
	Role           string   `json:"role"`
	AllowedLocales []string `json:"allowedLocales"`
}

// SaveUser creates the user or replaces the one with the same id. A blank
// password keeps the stored one.
func (h *Handler) SaveUser(c *gin.Context) {
	var req saveUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidInput, err.Error())
		return
	}
	role := domain.RoleWorker
	if req.Role != "" {
		r, err := domain.ParseRole(req.Role)
		if err != nil {
			writeError(c, err)
			return
		}
		role = r
	}
	u := &domain.User{ID: strings.TrimSpace(req.ID), Username: req.Username, Role: role}
	for _, l := range req.AllowedLocales {
		locale, err := domain.ParseLocale(l)
		if err != nil {
			writeError(c, err)
			return
		}
		u.AllowedLocales = append(u.AllowedLocales, locale)
	}
	if err := h.svc.Users.Save(c.Request.Context(), u, req.Password); err != nil {
		writeError(c, err)
		return
	}
	success(c, http.StatusOK, toUser(u))
}

func (h *Handler) DeleteUser(c *gin.Context) {
	if err := h.svc.Users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"deleted": c.Param("id")})
}

type replaceProductsRequest struct {
	Locale   string        `json:"locale" binding:"required"`
	Products []productJSON `json:"products"`
}

func (h *Handler) ReplaceProducts(c *gin.Context) {
	var req replaceProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidInput, err.Error())
		return
	}
	locale, err := domain.ParseLocale(req.Locale)
	if err != nil {
		writeError(c, err)
		return
	}
	products := make([]*domain.Product, 0, len(req.Products))
	for _, p := range req.Products {
		products = append(products, &domain.Product{
			ID: p.ID, Locale: locale, Name: p.Name, Price: p.Price, Icon: p.Icon, Category: p.Category,
		})
	}
	if err := h.svc.Catalog.Replace(c.Request.Context(), locale, products); err != nil {
		writeError(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"locale": string(locale), "count": len(products)})
}

func (h *Handler) DeleteShift(c *gin.Context) {
	if err := h.svc.Shifts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"deleted": c.Param("id")})
}

type clearHistoryRequest struct {
	UserID string `json:"userId"`
	Locale string `json:"locale"`
	All    bool   `json:"all"`
}

// ClearHistory deletes all shifts, or one user's shifts at one locale.
func (h *Handler) ClearHistory(c *gin.Context) {
	var req clearHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidInput, err.Error())
		return
	}
	ctx := c.Request.Context()

	if req.All {
		n, err := h.svc.Shifts.ClearAll(ctx)
		if err != nil {
			writeError(c, err)
			return
		}
		success(c, http.StatusOK, gin.H{"deleted": n})
		return
	}

	if req.UserID == "" || req.Locale == "" {
		fail(c, http.StatusBadRequest, CodeInvalidInput, "userId and locale are required unless all is set")
		return
	}
	locale, err := domain.ParseLocale(req.Locale)
	if err != nil {
		writeError(c, err)
		return
	}
	u, err := h.svc.Users.Resolve(ctx, req.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	n, err := h.svc.Shifts.ClearUser(ctx, u.ID, locale)
	if err != nil {
		writeError(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"deleted": n})
}

// queryLimit reads ?limit=. A malformed value aborts with 400.
func queryLimit(c *gin.Context) (int, bool) {
	v := c.Query("limit")
	if v == "" {
		return 0, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		fail(c, http.StatusBadRequest, CodeInvalidInput, "limit must be a non-negative integer")
		return 0, false
	}
	return n, true
}
