package fees

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"kisima-schools/app/database"
	"kisima-schools/app/models"
)

// GetFeesAPI returns all fees with optional filtering
func GetFeesAPI(c *fiber.Ctx, db *sql.DB) error {
	fees, err := database.ListFees(db, c.Query("student_id"), c.Query("branch_id"), c.Query("status"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fees")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fees,
	})
}

// GetFeeByIDAPI returns a specific fee by ID
func GetFeeByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	fee, err := database.GetFeeByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Fee not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fee,
	})
}

// CreateFeeAPI creates a new fee
func CreateFeeAPI(c *fiber.Ctx, db *sql.DB) error {
	var fee models.Fee
	if err := c.BodyParser(&fee); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	// Validate required fields
	if fee.StudentID == "" || fee.FeeTypeID == "" || fee.BranchID == "" ||
		fee.Title == "" || fee.Amount <= 0 || fee.DueDate.IsZero() {
		return fiber.NewError(fiber.StatusBadRequest, "Missing required fields")
	}

	fee.Paid = false
	if fee.Currency == "" {
		fee.Currency = "UGX"
	}

	if err := database.CreateFee(db, &fee); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create fee")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    fee,
		"message": "Fee created successfully",
	})
}

// MarkFeeAsPaidAPI marks a fee as paid
func MarkFeeAsPaidAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.MarkFeeAsPaid(db, c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Fee not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to mark fee as paid")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Fee marked as paid successfully",
	})
}

// GetFeeTypesAPI returns all active fee types
func GetFeeTypesAPI(c *fiber.Ctx, db *sql.DB) error {
	feeTypes, err := database.ListFeeTypes(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee types")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    feeTypes,
	})
}
