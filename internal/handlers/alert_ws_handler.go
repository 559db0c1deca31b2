package handlers

import (
	"errors"
	"strings"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/dkwarude-cell/smartheal-sub001/internal/models"
	"github.com/dkwarude-cell/smartheal-sub001/internal/services"
	alertws "github.com/dkwarude-cell/smartheal-sub001/internal/websocket"
	"github.com/dkwarude-cell/smartheal-sub001/pkg/utils"
)

// AlertWSHandler upgrades coach connections onto the alert hub and serves
// their refresh requests.
type AlertWSHandler struct {
	service   *services.TeamService
	hub       *alertws.Hub
	jwtSecret string
}

func NewAlertWSHandler(service *services.TeamService, hub *alertws.Hub, jwtSecret string) *AlertWSHandler {
	return &AlertWSHandler{
		service:   service,
		hub:       hub,
		jwtSecret: jwtSecret,
	}
}

func (h *AlertWSHandler) WebSocketAuth(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return c.Status(fiber.StatusUpgradeRequired).JSON(fiber.Map{"error": "WebSocket upgrade required"})
	}

	claims, err := h.parseWSClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}
	if claims.Role != models.RoleCoach {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	c.Locals("user_id", claims.UserID)
	c.Locals("role", claims.Role)
	return c.Next()
}

func (h *AlertWSHandler) HandleWebSocket(conn *websocket.Conn) {
	coachID, _ := conn.Locals("user_id").(string)
	client := alertws.NewClient(h.hub, conn, coachID)

	h.hub.Register(client)
	go client.WritePump()
	client.ReadPump(h.service)
}

func (h *AlertWSHandler) parseWSClaims(c *fiber.Ctx) (*utils.Claims, error) {
	tokenString := strings.TrimSpace(c.Query("token"))
	if tokenString == "" {
		authHeader := strings.TrimSpace(c.Get("Authorization"))
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
	}

	if tokenString == "" {
		return nil, errors.New("missing token")
	}

	return utils.ValidateToken(tokenString, h.jwtSecret)
}
