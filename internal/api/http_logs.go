package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"micromon/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	defaultLogLimit = 100
	maxLogLimit     = 1000
)

// QueryLogs filters and pages the append-only log table, newest first. The
// date range is inclusive and must be supplied as a pair; the limit is capped
// to keep scans bounded.
func (h *HTTPHandler) QueryLogs(c *gin.Context) {
	query := entity.LogQuery{Limit: defaultLogLimit}
	var fieldErrors []FieldError

	if level := strings.TrimSpace(c.Query("level")); level != "" {
		if !entity.ValidLogLevel(level) {
			fieldErrors = append(fieldErrors, FieldError{Field: "level", Message: "level must be error, warn, info or debug"})
		} else {
			query.Level = level
		}
	}

	startRaw := strings.TrimSpace(c.Query("startDate"))
	endRaw := strings.TrimSpace(c.Query("endDate"))
	switch {
	case startRaw != "" && endRaw != "":
		start, err := parseLogDate(startRaw)
		if err != nil {
			fieldErrors = append(fieldErrors, FieldError{Field: "startDate", Message: "startDate must be an RFC 3339 timestamp or YYYY-MM-DD date"})
		}
		end, err := parseLogDate(endRaw)
		if err != nil {
			fieldErrors = append(fieldErrors, FieldError{Field: "endDate", Message: "endDate must be an RFC 3339 timestamp or YYYY-MM-DD date"})
		}
		if len(fieldErrors) == 0 {
			if end.Before(start) {
				fieldErrors = append(fieldErrors, FieldError{Field: "endDate", Message: "endDate must not precede startDate"})
			} else {
				query.Start = &start
				query.End = &end
			}
		}
	case startRaw != "":
		fieldErrors = append(fieldErrors, FieldError{Field: "endDate", Message: "endDate is required when startDate is supplied"})
	case endRaw != "":
		fieldErrors = append(fieldErrors, FieldError{Field: "startDate", Message: "startDate is required when endDate is supplied"})
	}

	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			fieldErrors = append(fieldErrors, FieldError{Field: "limit", Message: "limit must be a positive integer"})
		} else {
			if parsed > maxLogLimit {
				parsed = maxLogLimit
			}
			query.Limit = parsed
		}
	}

	if len(fieldErrors) > 0 {
		ValidationFailed(c, fieldErrors...)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	logs, err := h.repo.QueryLogs(ctx, query)
	if err != nil {
		logrus.WithError(err).Error("failed to query logs")
		StorageUnavailable(c)
		return
	}
	if logs == nil {
		logs = []entity.DbSystemLog{}
	}
	c.JSON(http.StatusOK, logs)
}

// parseLogDate accepts RFC 3339 timestamps and bare dates.
func parseLogDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
