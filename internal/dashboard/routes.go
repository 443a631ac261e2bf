package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/followup/internal/dates"
	"github.com/zulandar/followup/internal/pipeline"
	"github.com/zulandar/followup/internal/pivot"
)

// registerRoutes sets up all dashboard routes on the Gin router.
func registerRoutes(router *gin.Engine, opts StartOpts) {
	router.GET("/", handleIndex(opts))
	router.GET("/tasks", handleTasks(opts))
	router.GET("/pivots", handlePivots(opts))
}

// taskView is one task row shaped for the template.
type taskView struct {
	ID          uint
	Unit        string
	Title       string
	Owner       string
	Priority    string
	DueDate     string
	StatusFinal string
	SLADueDate  string
	SLABreach   bool
}

func handleIndex(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, ctx, err := loadRows(opts.DB, opts)
		if err != nil {
			c.String(http.StatusInternalServerError, "load tasks: %v", err)
			return
		}
		c.HTML(http.StatusOK, "index.html", gin.H{
			"KPI":    pipeline.Summarize(rows),
			"Status": pivot.ByStatus(rows),
			"SLA":    pivot.BySLA(rows),
			"Today":  ctx.Today.Format("2006-01-02"),
		})
	}
}

func handleTasks(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, ctx, err := loadRows(opts.DB, opts)
		if err != nil {
			c.String(http.StatusInternalServerError, "load tasks: %v", err)
			return
		}

		filter := c.Query("status")
		views := make([]taskView, 0, len(rows))
		for _, r := range rows {
			if filter != "" && r.StatusFinal != filter {
				continue
			}
			views = append(views, taskView{
				ID:          r.Task.ID,
				Unit:        r.Task.Unit,
				Title:       r.Task.Title,
				Owner:       r.Task.Owner,
				Priority:    r.Task.Priority,
				DueDate:     dates.Format(r.Task.DueDate),
				StatusFinal: r.StatusFinal,
				SLADueDate:  dates.Format(r.SLADueDate),
				SLABreach:   r.SLABreach,
			})
		}
		c.HTML(http.StatusOK, "tasks.html", gin.H{
			"Tasks":  views,
			"Filter": filter,
			"Today":  ctx.Today.Format("2006-01-02"),
		})
	}
}

func handlePivots(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, ctx, err := loadRows(opts.DB, opts)
		if err != nil {
			c.String(http.StatusInternalServerError, "load tasks: %v", err)
			return
		}
		c.HTML(http.StatusOK, "pivots.html", gin.H{
			"Status": pivot.ByStatus(rows),
			"SLA":    pivot.BySLA(rows),
			"Tabs": []pivot.CrossTab{
				pivot.ByUnit(rows),
				pivot.ByWeek(rows),
				pivot.ByPriority(rows),
				pivot.ByOwner(rows),
			},
			"Today": ctx.Today.Format("2006-01-02"),
		})
	}
}
