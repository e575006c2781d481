package handlers

import (
	"strconv"
	"time"

	"github.com/akashpawar6363/sanjay-study-center/database"
	"github.com/akashpawar6363/sanjay-study-center/models"
	"github.com/akashpawar6363/sanjay-study-center/utils"
	"github.com/gofiber/fiber/v2"
)

type DashboardStatsResponse struct {
	TotalAdmissions   int64               `json:"total_admissions"`
	ActiveAdmissions  int64               `json:"active_admissions"`
	ExpiredAdmissions int64               `json:"expired_admissions"`
	TotalSeats        int                 `json:"total_seats"`
	OccupancyPercent  float64             `json:"occupancy_percent"`
	RevenueThisMonth  float64             `json:"revenue_this_month"`
	ExpiringSoon      []AdmissionResponse `json:"expiring_soon"`
	RecentAdmissions  []AdmissionResponse `json:"recent_admissions"`
}

func GetDashboardStats(c *fiber.Ctx) error {
	var response DashboardStatsResponse

	database.DB.Model(&models.Admission{}).Count(&response.TotalAdmissions)
	database.DB.Model(&models.Admission{}).Where("status = ?", models.AdmissionStatusActive).Count(&response.ActiveAdmissions)
	database.DB.Model(&models.Admission{}).Where("status = ?", models.AdmissionStatusExpired).Count(&response.ExpiredAdmissions)

	var seatSetting models.Setting
	if err := database.DB.Where("key = ?", models.SettingTotalSeats).First(&seatSetting).Error; err == nil {
		response.TotalSeats, _ = strconv.Atoi(seatSetting.Value)
	}
	if response.TotalSeats > 0 {
		response.OccupancyPercent = float64(response.ActiveAdmissions) / float64(response.TotalSeats) * 100
	}

	monthStart := utils.StartOfDay(time.Now()).AddDate(0, 0, 1-time.Now().Day())
	database.DB.Model(&models.Admission{}).
		Where("created_at >= ?", monthStart).
		Select("COALESCE(SUM(fees), 0)").Row().Scan(&response.RevenueThisMonth)

	today := utils.StartOfDay(time.Now())
	windowEnd := today.AddDate(0, 0, utils.ExpiryWarningDays+1)
	var expiring []models.Admission
	database.DB.Preload("Category").
		Where("status = ? AND renewal_date >= ? AND renewal_date < ?", models.AdmissionStatusActive, today, windowEnd).
		Order("renewal_date asc").
		Find(&expiring)
	response.ExpiringSoon = make([]AdmissionResponse, 0, len(expiring))
	for _, admission := range expiring {
		response.ExpiringSoon = append(response.ExpiringSoon, toAdmissionResponse(admission))
	}

	var recent []models.Admission
	database.DB.Preload("Category").Order("created_at desc").Limit(5).Find(&recent)
	response.RecentAdmissions = make([]AdmissionResponse, 0, len(recent))
	for _, admission := range recent {
		response.RecentAdmissions = append(response.RecentAdmissions, toAdmissionResponse(admission))
	}

	return c.JSON(response)
}
