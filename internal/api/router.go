package api

import (
	"net/http"
	"strings"
	"time"

	"go-jobscout/internal/models"
	"go-jobscout/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter serves the latest snapshot. The file is read on every request,
// so a scraper run that replaces it is picked up without a restart.
func NewRouter(snapshotPath string, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "JobScout API is running!",
			"status":  "healthy",
		})
	})

	r.GET("/jobs", func(c *gin.Context) {
		jobs, err := storage.ReadSnapshot(snapshotPath)
		if err != nil {
			logger.Error("❌ Failed to read snapshot", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "snapshot unavailable"})
			return
		}

		jobs = FilterJobs(jobs, c.Query("skill"), c.Query("location"))
		c.JSON(http.StatusOK, gin.H{
			"count": len(jobs),
			"jobs":  jobs,
		})
	})

	return r
}

// FilterJobs keeps postings that list skill (case-insensitive) and whose
// location contains location. Empty filters match everything.
func FilterJobs(jobs []models.JobPosting, skill, location string) []models.JobPosting {
	skill = strings.TrimSpace(skill)
	location = strings.ToLower(strings.TrimSpace(location))

	out := make([]models.JobPosting, 0, len(jobs))
	for _, job := range jobs {
		if skill != "" && !hasSkill(job.Skills, skill) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(job.Location), location) {
			continue
		}
		out = append(out, job)
	}
	return out
}

func hasSkill(skills []string, want string) bool {
	for _, s := range skills {
		if strings.EqualFold(s, want) {
			return true
		}
	}
	return false
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
