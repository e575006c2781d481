package handlers

import (
	"github.com/akashpawar6363/sanjay-study-center/jobs"
	"github.com/gofiber/fiber/v2"
)

// The sweeps also run on the in-process cron schedule; these endpoints exist
// for external schedulers and manual triggering.

func RunRenewalReminders(c *fiber.Ctx) error {
	results := jobs.SendRenewalReminders()
	return c.JSON(fiber.Map{
		"message": "Renewal reminders processed",
		"results": results,
	})
}

func RunExpiringAdmissionsReport(c *fiber.Ctx) error {
	result := jobs.SendExpiringAdmissionsReport()
	return c.JSON(fiber.Map{
		"message": "Expiring admissions report processed",
		"result":  result,
	})
}
