package services

import (
	"database/sql"
	"log"
	"time"

	"kisima-schools/app/database"
)

// StartScheduler starts the background task scheduler
func StartScheduler(db *sql.DB, mailer *Mailer) {
	go func() {
		log.Println("Scheduler started...")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()

			// Trigger at 6:30 PM (18:30)
			if now.Hour() == 18 && now.Minute() == 30 {
				log.Println("Triggering scheduled tasks [18:30]...")

				if err := SendOverdueFeeReminders(db, mailer); err != nil {
					log.Printf("Error sending fee reminders: %v", err)
				}

				if err := database.DeleteExpiredSessions(db); err != nil {
					log.Printf("Error clearing expired sessions: %v", err)
				}
			}
		}
	}()
}

// SendOverdueFeeReminders emails every parent whose student has an
// unpaid fee past its due date.
func SendOverdueFeeReminders(db *sql.DB, mailer *Mailer) error {
	reminders, err := database.ListOverdueFees(db)
	if err != nil {
		return err
	}

	sent := 0
	for _, r := range reminders {
		if err := mailer.SendFeeReminderEmail(r.ParentEmail, r.StudentName, r.FeeTitle, r.Currency, r.Amount); err != nil {
			log.Printf("Failed to send reminder to %s: %v", r.ParentEmail, err)
			continue
		}
		sent++
	}

	log.Printf("Sent %d of %d overdue fee reminders", sent, len(reminders))
	return nil
}
