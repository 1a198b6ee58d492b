package auth

import (
	"strings"

	"kisima-schools/app/models"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	// Public routes
	auth.Get("/login", ShowLoginPage)
	auth.Post("/login", LoginAPI)
	auth.Post("/logout", LogoutAPI)

	// Protected routes
	auth.Use(AuthMiddleware)
	auth.Post("/change-password", ChangePasswordAPI)
}

func ShowLoginPage(c *fiber.Ctx) error {
	// Check if already logged in
	if tokenString := c.Cookies("jwt_token"); tokenString != "" {
		if _, err := ValidateJWT(tokenString); err == nil {
			return c.Redirect("/payments")
		}
	}

	return c.Render("auth/login", fiber.Map{
		"Title": "Login - Kisima Schools",
	}, "")
}

// AuthMiddleware validates JWT and sets user context
func AuthMiddleware(c *fiber.Ctx) error {
	// Get JWT token from cookie or Authorization header
	tokenString := c.Cookies("jwt_token")
	if tokenString == "" {
		auth := c.Get("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			tokenString = strings.TrimPrefix(auth, "Bearer ")
		}
	}

	isAPIRequest := strings.HasPrefix(c.Path(), "/api/")

	if tokenString == "" {
		if isAPIRequest {
			return c.Status(401).JSON(fiber.Map{"error": "No token found"})
		}
		return c.Redirect("/auth/login")
	}

	claims, err := ValidateJWT(tokenString)
	if err != nil {
		if isAPIRequest {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid token"})
		}
		return c.Redirect("/auth/login")
	}

	user := &models.User{
		ID:        claims.UserID,
		Email:     claims.Email,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		IsActive:  true,
	}
	if claims.BranchID != "" {
		user.BranchID = &claims.BranchID
	}

	roles := make([]*models.Role, len(claims.Roles))
	for i, roleName := range claims.Roles {
		roles[i] = &models.Role{Name: roleName}
	}
	user.Roles = roles

	c.Locals("user_id", user.ID)
	c.Locals("user_email", user.Email)
	c.Locals("user_branch_id", claims.BranchID)
	c.Locals("user_roles", roles)
	c.Locals("user", user)

	return c.Next()
}

// RoleMiddleware checks if user has one of the required roles
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userRoles := c.Locals("user_roles").([]*models.Role)

		for _, userRole := range userRoles {
			for _, allowedRole := range allowedRoles {
				if userRole.Name == allowedRole {
					return c.Next()
				}
			}
		}

		if strings.HasPrefix(c.Path(), "/api/") {
			return c.Status(403).JSON(fiber.Map{"error": "Insufficient permissions"})
		}

		return c.Status(403).Render("error", fiber.Map{
			"Title":        "Access Forbidden - Kisima Schools",
			"CurrentPage":  "",
			"ErrorCode":    "403",
			"ErrorTitle":   "Access Forbidden",
			"ErrorMessage": "You don't have permission to access this resource.",
			"user":         c.Locals("user"),
		})
	}
}
