package attendance

import (
	"campus-events/internal/global/database"
	"campus-events/internal/global/response"
	"campus-events/internal/global/scope"
	"campus-events/internal/model"
	"campus-events/tools"

	"github.com/gin-gonic/gin"
)

type MarkReq struct {
	StudentID uint                     `json:"student_id" binding:"required"`
	EventID   uint                     `json:"event_id" binding:"required"`
	Status    model.RegistrationStatus `json:"status" binding:"required,oneof=attended absent"`
}

// MarkHandler 单个学生考勤
func MarkHandler(c *gin.Context) {
	tenant, err := scope.FromGin(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	var req MarkReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	reg, err := Mark(database.DB.WithContext(c.Request.Context()), tenant, req.StudentID, req.EventID, req.Status)
	if err != nil {
		log.Warn("标记考勤失败", "error", err, "event_id", req.EventID, "student_id", req.StudentID)
		response.Fail(c, err)
		return
	}
	log.Info("标记考勤成功", "event_id", req.EventID, "student_id", req.StudentID, "status", req.Status)
	response.Success(c, gin.H{
		"message":      "Attendance marked successfully",
		"registration": reg,
	})
}

type MarkBulkReq struct {
	EventID    uint       `json:"event_id" binding:"required"`
	Attendance []BulkItem `json:"attendance" binding:"required"`
}

// MarkBulkHandler 批量考勤，单项失败体现在 results 中，整体仍返回成功
func MarkBulkHandler(c *gin.Context) {
	tenant, err := scope.FromGin(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	var req MarkBulkReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	results, err := MarkBulk(database.DB.WithContext(c.Request.Context()), tenant, req.EventID, req.Attendance)
	if err != nil {
		response.Fail(c, err)
		return
	}
	succeeded := 0
	for _, r := range results {
		if r.Success {
			succeeded++
		}
	}
	log.Info("批量考勤完成", "event_id", req.EventID, "total", len(results), "succeeded", succeeded)
	response.Success(c, gin.H{
		"message": "Bulk attendance processed",
		"results": results,
	})
}

func ReportHandler(c *gin.Context) {
	tenant, err := scope.FromGin(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	eventID, err := tools.ParamID(c, "event_id")
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("invalid event id"))
		return
	}

	report, err := Report(database.DB.WithContext(c.Request.Context()), tenant, eventID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, report)
}

func HistoryHandler(c *gin.Context) {
	tenant, err := scope.FromGin(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	studentID, err := tools.ParamID(c, "student_id")
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("invalid student id"))
		return
	}

	history, err := History(database.DB.WithContext(c.Request.Context()), tenant, studentID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, history)
}
