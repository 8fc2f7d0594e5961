package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/review-monitor/core/internal/modules/monitor"
	"github.com/review-monitor/core/internal/modules/product"
	"github.com/review-monitor/core/internal/modules/report"
	"github.com/review-monitor/core/internal/pkg/response"
)

var processStart = time.Now()

func (a *App) registerRoutes() {
	r := a.router

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"uptime": time.Since(processStart).Round(time.Second).String(),
		})
	})
	r.GET("/metrics", gin.WrapH(a.collector.Handler()))

	api := r.Group("/api")

	product.NewHandler(a.store).RegisterRoutes(api)
	report.NewHandler(a.store).RegisterRoutes(api)
	monitor.NewHandler(a.monitorSvc).RegisterRoutes(api)

	api.GET("/cron", a.listCronJobs)
	api.POST("/cron/run/:name", a.runCronJob)
}

func (a *App) listCronJobs(c *gin.Context) {
	response.OK(c, a.sched.List())
}

// runCronJob triggers a job outside the request context, so the run survives
// the response.
func (a *App) runCronJob(c *gin.Context) {
	if err := a.sched.Run(context.Background(), c.Param("name")); err != nil {
		response.NotFoundMsg(c, err.Error())
		return
	}
	response.Done(c)
}
