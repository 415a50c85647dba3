package payroll

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/kashiee/HRMS/internal/middleware"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	payroll := r.Group("/payroll")
	{
		payroll.POST("/calculate", handler.Calculate)
		if redisClient != nil {
			payroll.POST("/batch", middleware.RateLimitByActor(0.5, 2), middleware.Idempotency(redisClient), handler.RunBatch)
		} else {
			payroll.POST("/batch", middleware.RateLimitByActor(0.5, 2), handler.RunBatch)
		}
		payroll.GET("/tax-years", handler.GetTaxYears)
		payroll.GET("/tax-years/:year", handler.GetTaxYear)
		payroll.GET("/pension-schemes", handler.GetPensionSchemes)
		payroll.POST("/tax-bands", handler.GetTaxBands)
		payroll.POST("/payslips/render", middleware.RateLimitByActor(2, 5), handler.RenderPayslip)
	}
}
