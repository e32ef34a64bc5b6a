package controllers

import (
	"github.com/ADat1304/Project-cafe/pkg/resp"
	"github.com/ADat1304/Project-cafe/services"
	"github.com/ADat1304/Project-cafe/utils"

	"github.com/gin-gonic/gin"
)

type ReportController struct{ Reports *services.ReportService }

func NewReportController(r *services.ReportService) *ReportController {
	return &ReportController{Reports: r}
}

// GET /reports/dashboard?top=5
func (r *ReportController) Dashboard(c *gin.Context) {
	resp.OK(c, r.Reports.Dashboard(utils.GatewayContext(c), queryInt(c, "top", 5)))
}

// GET /reports/revenue?startDate=&endDate=  or  ?preset=today|week|month
func (r *ReportController) Revenue(c *gin.Context) {
	rep, err := r.Reports.Revenue(utils.GatewayContext(c), c.Query("startDate"), c.Query("endDate"), c.Query("preset"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, rep)
}
