package payments

import (
	"database/sql"
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"kisima-schools/app/database"
	"kisima-schools/app/models"
	"kisima-schools/app/payments"
	"kisima-schools/app/services"
)

var validate = validator.New()

// CreatePaymentRequest is the payment form submission. The acting user
// comes from the session, never from the body.
type CreatePaymentRequest struct {
	StudentID string  `json:"student_id" validate:"required"`
	BranchID  string  `json:"branch_id" validate:"required"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method" validate:"omitempty,max=20"`
	Note      string  `json:"note" validate:"omitempty,max=500"`
	ReceiptID string  `json:"receipt_id" validate:"omitempty,max=36"`
}

func statusForError(err error) int {
	var pErr *payments.Error
	if errors.As(err, &pErr) {
		switch pErr.Kind {
		case payments.KindNotFound:
			return fiber.StatusNotFound
		case payments.KindDuplicateReceipt:
			return fiber.StatusConflict
		default:
			return fiber.StatusBadRequest
		}
	}
	return fiber.StatusInternalServerError
}

// branchScope forces non-admin users onto their own branch.
func branchScope(c *fiber.Ctx) string {
	requested := c.Query("branch_id")
	userBranch, _ := c.Locals("user_branch_id").(string)
	if userBranch == "" || hasRole(c, string(models.RoleAdmin)) {
		return requested
	}
	return userBranch
}

func hasRole(c *fiber.Ctx, name string) bool {
	roles, _ := c.Locals("user_roles").([]*models.Role)
	for _, r := range roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// CreatePaymentAPI validates, sanitizes and persists a fee payment,
// then emails the receipt to the student's parent best-effort.
func CreatePaymentAPI(c *fiber.Ctx, db *sql.DB, mailer *services.Mailer) error {
	var req CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	recordedBy, _ := c.Locals("user_id").(string)

	normalized, err := payments.ValidateAndSanitizeForCreate(c.Context(), database.NewPaymentStore(db), payments.CreateInput{
		StudentID:  req.StudentID,
		BranchID:   req.BranchID,
		RecordedBy: recordedBy,
		Amount:     req.Amount,
		Method:     req.Method,
		Note:       req.Note,
		ReceiptID:  req.ReceiptID,
	})
	if err != nil {
		return fiber.NewError(statusForError(err), err.Error())
	}

	payment := &models.Payment{
		StudentID:  normalized.StudentID,
		BranchID:   normalized.BranchID,
		RecordedBy: normalized.RecordedBy,
		Amount:     normalized.Amount,
		Method:     normalized.Method,
		Note:       normalized.Note,
		ReceiptID:  normalized.ReceiptID,
	}

	if err := database.InsertPayment(c.Context(), db, payment); err != nil {
		return fiber.NewError(statusForError(err), err.Error())
	}

	// Receipt email must never fail the payment itself.
	if student, serr := database.GetStudentByID(db, payment.StudentID); serr == nil {
		if merr := mailer.SendReceiptEmail(student, payment); merr != nil {
			log.Printf("Failed to email receipt %s: %v", payment.ReceiptID, merr)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    payment,
		"message": "Payment recorded successfully",
	})
}

// GetPaymentsAPI returns payments with optional filtering
func GetPaymentsAPI(c *fiber.Ctx, db *sql.DB) error {
	rows, err := database.ListPayments(c.Context(), db, database.PaymentFilters{
		StudentID: c.Query("student_id"),
		BranchID:  branchScope(c),
		Method:    c.Query("method"),
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch payments")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    rows,
	})
}

// GetPaymentByIDAPI returns a specific payment by ID
func GetPaymentByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	payment, err := database.GetPaymentByID(c.Context(), db, c.Params("id"))
	if err != nil {
		return fiber.NewError(statusForError(err), err.Error())
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    payment,
	})
}

// UpdatePaymentAPI amends the amount, method or note of a payment.
// Student, branch, recorder and receipt id are immutable.
func UpdatePaymentAPI(c *fiber.Ctx, db *sql.DB) error {
	var req payments.UpdateInput
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	paymentID := c.Params("id")

	patch, err := payments.ValidateAndSanitizeForUpdate(c.Context(), database.NewPaymentStore(db), paymentID, req)
	if err != nil {
		return fiber.NewError(statusForError(err), err.Error())
	}

	if err := database.UpdatePayment(c.Context(), db, paymentID, patch); err != nil {
		return fiber.NewError(statusForError(err), err.Error())
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Payment updated successfully",
	})
}

// ExportPaymentsAPI streams the payments export as CSV.
func ExportPaymentsAPI(c *fiber.Ctx, db *sql.DB) error {
	rows, err := database.ListPaymentExportRows(c.Context(), db, database.PaymentFilters{
		StudentID: c.Query("student_id"),
		BranchID:  branchScope(c),
		Method:    c.Query("method"),
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to export payments")
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="payments.csv"`)
	return c.SendString(payments.ExportToCSV(rows))
}

// GetPaymentReceiptAPI renders the printable receipt for one payment.
// When the PDF backend is unavailable the placeholder result is returned
// as JSON instead of failing.
func GetPaymentReceiptAPI(c *fiber.Ctx, db *sql.DB, renderer payments.ReceiptRenderer) error {
	payment, err := database.GetPaymentByID(c.Context(), db, c.Params("id"))
	if err != nil {
		return fiber.NewError(statusForError(err), err.Error())
	}

	data := payments.ReceiptData{
		ReceiptID:  payment.ReceiptID,
		StudentID:  payment.StudentID,
		Amount:     payment.Amount,
		Method:     string(payment.Method),
		RecordedBy: payment.RecordedBy,
	}
	if payment.Note != nil {
		data.Note = *payment.Note
	}
	if student, serr := database.GetStudentByID(db, payment.StudentID); serr == nil {
		data.StudentName = student.FullName()
	}

	result := renderer.Render(data)
	if result.OK && len(result.PDF) > 0 {
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="receipt-`+payment.ReceiptID+`.pdf"`)
		return c.Send(result.PDF)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    result,
	})
}

// GetPaymentStatsAPI returns payment totals for the dashboard.
func GetPaymentStatsAPI(c *fiber.Ctx, db *sql.DB) error {
	stats, err := database.GetPaymentStats(c.Context(), db, branchScope(c))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch payment stats")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    stats,
	})
}
