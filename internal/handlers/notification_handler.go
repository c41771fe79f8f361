package handlers

import (
	"net/http"
	"strconv"

	"github.com/JameNori/jamenori-dev-journal-sub000/internal/apperror"
	"github.com/JameNori/jamenori-dev-journal-sub000/internal/models"
	"github.com/JameNori/jamenori-dev-journal-sub000/internal/query"
	"github.com/JameNori/jamenori-dev-journal-sub000/internal/repositories"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
	defaultLimit           int
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifRepo repositories.NotificationRepository, defaultLimit int) *NotificationHandler {
	return &NotificationHandler{
		notificationRepository: notifRepo,
		defaultLimit:           defaultLimit,
	}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group, access Access) {
	g.GET("/notifications", h.GetNotifications, access.User...)
	g.GET("/notifications/unread-count", h.GetUnreadCount, access.User...)
	g.PATCH("/notifications/read-all", h.MarkAllAsRead, access.User...)
	g.PATCH("/notifications/:id/read", h.MarkAsRead, access.User...)
}

// NotificationListResponse is one page of a user's inbox.
type NotificationListResponse struct {
	Notifications []models.NotificationView `json:"notifications"`
	Total         int64                     `json:"total"`
	TotalPages    int                       `json:"totalPages"`
	CurrentPage   int                       `json:"currentPage"`
	Limit         int                       `json:"limit"`
	NextPage      *int                      `json:"nextPage"`
}

// GetNotifications returns paginated notifications, newest first
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	filter := models.NotificationFilter{UserID: user.ID}
	if raw := c.QueryParam("is_read"); raw != "" {
		isRead, err := strconv.ParseBool(raw)
		if err != nil {
			return ToHTTPError(apperror.Validation("is_read", "is_read must be true or false"))
		}
		filter.IsRead = &isRead
	}
	req := query.ParsePageRequest(c.QueryParam("page"), c.QueryParam("limit"), h.defaultLimit)

	page, err := h.notificationRepository.ListNotifications(c.Request().Context(), filter, req)
	if err != nil {
		return ToHTTPError(err)
	}

	return c.JSON(http.StatusOK, NotificationListResponse{
		Notifications: page.Items,
		Total:         page.Total,
		TotalPages:    page.TotalPages,
		CurrentPage:   page.CurrentPage,
		Limit:         page.Limit,
		NextPage:      page.NextPage,
	})
}

// GetUnreadCount returns the number of unread notifications
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	count, err := h.notificationRepository.CountUnread(c.Request().Context(), user.ID)
	if err != nil {
		return ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"count": count})
}

// MarkAsRead marks one of the current user's notifications as read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	updated, err := h.notificationRepository.MarkAsRead(c.Request().Context(), id, user.ID)
	if err != nil {
		return ToHTTPError(err)
	}
	if !updated {
		return ToHTTPError(apperror.NotFound("notification not found"))
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Notification marked as read"})
}

// MarkAllAsRead marks all of the current user's notifications as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	updated, err := h.notificationRepository.MarkAllAsRead(c.Request().Context(), user.ID)
	if err != nil {
		return ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"updated": updated})
}
