package report

import (
	"time"

	"campus-events/internal/global/database"
	"campus-events/internal/global/response"
	"campus-events/internal/global/scope"
	"campus-events/internal/model"

	"github.com/gin-gonic/gin"
)

type PopularEventsReq struct {
	Limit    int    `form:"limit,default=10" binding:"min=1,max=1000"`
	Type     string `form:"type" binding:"omitempty,oneof=academic cultural sports technical social other"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
}

func (r *PopularEventsReq) options() (PopularEventsOptions, error) {
	opts := PopularEventsOptions{Type: model.EventType(r.Type), Limit: r.Limit}
	var err error
	if opts.DateFrom, err = parseBound(r.DateFrom, false); err != nil {
		return opts, response.ErrInvalidRequest.WithTips("invalid date_from")
	}
	if opts.DateTo, err = parseBound(r.DateTo, true); err != nil {
		return opts, response.ErrInvalidRequest.WithTips("invalid date_to")
	}
	return opts, nil
}

func PopularEventsHandler(c *gin.Context) {
	tenant, err := scope.FromGin(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	var req PopularEventsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	opts, err := req.options()
	if err != nil {
		response.Fail(c, err)
		return
	}

	result, err := PopularEvents(database.DB.WithContext(c.Request.Context()), tenant, opts)
	if err != nil {
		log.Error("热门活动报表失败", "error", err, "college_id", tenant.CollegeID())
		response.Fail(c, err)
		return
	}
	response.Success(c, result)
}

type StudentReq struct {
	Limit    int    `form:"limit" binding:"min=1,max=1000"`
	SortBy   string `form:"sort_by" binding:"omitempty,oneof=attended participation feedback"`
	Criteria string `form:"criteria" binding:"omitempty,oneof=attended participation feedback"`
}

func StudentParticipationHandler(c *gin.Context) {
	tenant, err := scope.FromGin(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	req := StudentReq{Limit: 10, SortBy: SortAttended}
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	result, err := StudentParticipation(database.DB.WithContext(c.Request.Context()), tenant, req.Limit, req.SortBy)
	if err != nil {
		log.Error("学生参与度报表失败", "error", err, "college_id", tenant.CollegeID())
		response.Fail(c, err)
		return
	}
	response.Success(c, result)
}

func TopStudentsHandler(c *gin.Context) {
	tenant, err := scope.FromGin(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	req := StudentReq{Limit: 3, Criteria: SortAttended}
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	result, err := TopStudents(database.DB.WithContext(c.Request.Context()), tenant, req.Limit, req.Criteria)
	if err != nil {
		log.Error("优秀学生报表失败", "error", err, "college_id", tenant.CollegeID())
		response.Fail(c, err)
		return
	}
	response.Success(c, result)
}

func EventTypeAnalyticsHandler(c *gin.Context) {
	tenant, err := scope.FromGin(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	analytics, err := EventTypeAnalytics(database.DB.WithContext(c.Request.Context()), tenant)
	if err != nil {
		log.Error("活动类型报表失败", "error", err, "college_id", tenant.CollegeID())
		response.Fail(c, err)
		return
	}
	response.Success(c, gin.H{"analytics": analytics})
}

type TrendsReq struct {
	Months int    `form:"months,default=6" binding:"min=1,max=60"`
	AsOf   string `form:"as_of"`
}

func AttendanceTrendsHandler(c *gin.Context) {
	tenant, err := scope.FromGin(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	var req TrendsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	asOf, err := parseAsOf(req.AsOf)
	if err != nil {
		response.Fail(c, err)
		return
	}

	trends, err := AttendanceTrends(database.DB.WithContext(c.Request.Context()), tenant, req.Months, asOf)
	if err != nil {
		log.Error("考勤趋势报表失败", "error", err, "college_id", tenant.CollegeID())
		response.Fail(c, err)
		return
	}
	response.Success(c, gin.H{"trends": trends})
}

func DashboardStatsHandler(c *gin.Context) {
	tenant, err := scope.FromGin(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	asOf, err := parseAsOf(c.Query("as_of"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	stats, err := DashboardStats(database.DB.WithContext(c.Request.Context()), tenant, asOf)
	if err != nil {
		log.Error("总览报表失败", "error", err, "college_id", tenant.CollegeID())
		response.Fail(c, err)
		return
	}
	response.Success(c, stats)
}

// parseBound 解析 date_from/date_to，支持 2006-01-02 与 RFC3339。
// 仅日期的 date_to 包含当天，因此返回次日零点作为开区间上界。
func parseBound(s string, upper bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.ParseInLocation(time.DateOnly, s, time.Local); err == nil {
		if upper {
			t = t.AddDate(0, 0, 1)
		}
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parseAsOf 为空时取当前时间
func parseAsOf(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, time.Local)
	if err != nil {
		return time.Time{}, response.ErrInvalidRequest.WithTips("invalid as_of")
	}
	return t, nil
}
